// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of the orders table. The rider reference is stored in
// delivery_id and statuses are stored by name.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number          string     `gorm:"type:varchar(32);uniqueIndex;not null"`
	Status          string     `gorm:"type:varchar(16);index;not null"`
	CustomerName    string     `gorm:"type:varchar(255)"`
	CustomerPhone   string     `gorm:"type:varchar(32)"`
	CustomerAddress string     `gorm:"type:text"`
	DeliveryID      *uuid.UUID `gorm:"type:uuid;index"`
	StoreID         *uuid.UUID `gorm:"type:uuid"`
	TotalCents      int64      `gorm:"not null"`
	Urgent          bool       `gorm:"not null"`
	Notes           string     `gorm:"type:text"`
	CreatedAt       time.Time  `gorm:"index;not null"`
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()

	return OrderDTO{
		ID:              s.ID.Bytes(),
		Number:          s.Number,
		Status:          s.Status.String(),
		CustomerName:    s.Customer.Name,
		CustomerPhone:   s.Customer.Phone,
		CustomerAddress: s.Customer.Address,
		DeliveryID:      optionalUUID(s.RiderID),
		StoreID:         optionalUUID(s.StoreID),
		TotalCents:      s.TotalCents,
		Urgent:          s.Urgent,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		AssignedAt:      s.AssignedAt,
		PickedUpAt:      s.PickedUpAt,
		DeliveredAt:     s.DeliveredAt,
		CancelledAt:     s.CancelledAt,
	}
}

// toDomain converts a database DTO to an order domain aggregate through
// RestoreOrder, so rows that break the order invariants are rejected.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	riderID, err := restoreUUID(dto.DeliveryID)
	if err != nil {
		return nil, err
	}

	storeID, err := restoreUUID(dto.StoreID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:     id,
		Number: dto.Number,
		Status: status,
		Customer: order.Customer{
			Name:    dto.CustomerName,
			Phone:   dto.CustomerPhone,
			Address: dto.CustomerAddress,
		},
		RiderID:     riderID,
		StoreID:     storeID,
		TotalCents:  dto.TotalCents,
		Urgent:      dto.Urgent,
		Notes:       dto.Notes,
		CreatedAt:   dto.CreatedAt,
		AssignedAt:  dto.AssignedAt,
		PickedUpAt:  dto.PickedUpAt,
		DeliveredAt: dto.DeliveredAt,
		CancelledAt: dto.CancelledAt,
	})
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// statusNames converts statuses to their stored names for IN clauses.
func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
