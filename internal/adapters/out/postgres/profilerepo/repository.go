// Package profilerepo reads the staff profiles kept by the identity provider.
package profilerepo

import (
	"context"
	"errors"

	"backoffice/internal/adapters/out/postgres/dberr"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/profile"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileDTO is the row layout of the profiles table.
type ProfileDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role     string    `gorm:"type:varchar(16);not null"`
	FullName string    `gorm:"type:varchar(255)"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
}

// TableName specifies the database table name for profiles.
func (ProfileDTO) TableName() string {
	return "profiles"
}

// GormProfileRepository implements ports.ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Add saves a new profile. Profiles are normally created by the identity
// provider; this is used by the migrate seed and by tests.
func (r *GormProfileRepository) Add(ctx context.Context, aggregate *profile.Profile) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := ProfileDTO{
		ID:       aggregate.ID().Bytes(),
		Role:     aggregate.Role().String(),
		FullName: aggregate.FullName(),
		Email:    aggregate.Email(),
	}
	return dberr.Classify("add profile", r.db.WithContext(ctx).Create(&dto).Error)
}

// Get retrieves a profile by the identity's ID. A stored role that is not one of
// the three known roles is rejected rather than mapped to a lower privilege.
func (r *GormProfileRepository) Get(ctx context.Context, id kernel.UUID) (*profile.Profile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("profile", id.String())
		}
		return nil, dberr.Classify("get profile", err)
	}

	restoredID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	staffRole, err := role.Parse(dto.Role)
	if err != nil {
		return nil, err
	}

	return profile.RestoreProfile(restoredID, staffRole, dto.FullName, dto.Email)
}
