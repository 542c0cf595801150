// Package riderrepo persists the rider aggregate with GORM.
package riderrepo

import (
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO is the row layout of the riders table. The current location is a pair
// of nullable columns; both are set or both are null.
type RiderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Phone           string    `gorm:"type:varchar(32)"`
	Email           string    `gorm:"type:varchar(255)"`
	Status          string    `gorm:"type:varchar(16);index;not null"`
	IsActive        bool      `gorm:"not null"`
	Vehicle         string    `gorm:"type:varchar(64)"`
	CurrentLat      *float64
	CurrentLng      *float64
	TotalDeliveries int     `gorm:"not null"`
	Rating          float64 `gorm:"type:numeric(3,2);not null"`
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(aggregate *rider.Rider) RiderDTO {
	s := aggregate.Snapshot()

	dto := RiderDTO{
		ID:              s.ID.Bytes(),
		Name:            s.Name,
		Phone:           s.Phone,
		Email:           s.Email,
		Status:          s.Status.String(),
		IsActive:        s.Active,
		Vehicle:         s.Vehicle,
		TotalDeliveries: s.Deliveries,
		Rating:          s.Rating,
	}

	if s.Location != nil {
		lat, lng := s.Location.Lat(), s.Location.Lng()
		dto.CurrentLat = &lat
		dto.CurrentLng = &lng
	}

	return dto
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := rider.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.CurrentLat != nil && dto.CurrentLng != nil {
		loc, locErr := kernel.NewLocation(*dto.CurrentLat, *dto.CurrentLng)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return rider.RestoreRider(rider.Snapshot{
		ID:         id,
		Name:       dto.Name,
		Phone:      dto.Phone,
		Email:      dto.Email,
		Status:     status,
		Active:     dto.IsActive,
		Vehicle:    dto.Vehicle,
		Location:   location,
		Deliveries: dto.TotalDeliveries,
		Rating:     dto.Rating,
	})
}
