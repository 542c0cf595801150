package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/adapters/out/postgres/dberr"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return dberr.Classify("add order", r.db.WithContext(ctx).Create(&dto).Error)
}

// Update writes every column of the order in one conditional UPDATE guarded by
// status = expected. Zero affected rows means either the order is gone or another
// writer changed its status first; a follow-up existence check tells them apart.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Classify("update order", result.Error)
	}

	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return dberr.Classify("update order", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return errs.NewPreconditionFailedErrorWithCause(
		"order",
		fmt.Sprintf("is no longer %s", expected),
		ports.ErrOrderStatusMismatch,
	)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, dberr.Classify("get order", err)
	}

	return toDomain(dto)
}

// CountActiveByRider counts assigned and in-transit orders of a rider.
func (r *GormOrderRepository) CountActiveByRider(ctx context.Context, riderID kernel.UUID) (int, error) {
	if err := riderID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("delivery_id = ? AND status IN ?", riderID.Bytes(), statusNames(order.ActiveStatuses())).
		Count(&count).Error
	if err != nil {
		return 0, dberr.Classify("count active orders", err)
	}

	return int(count), nil
}
