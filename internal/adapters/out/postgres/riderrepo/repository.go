package riderrepo

import (
	"context"
	"errors"

	"backoffice/internal/adapters/out/postgres/dberr"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/rider"
	"backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRiderRepository implements ports.RiderRepository using GORM.
type GormRiderRepository struct {
	db *gorm.DB
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB) *GormRiderRepository {
	return &GormRiderRepository{db: db}
}

// Add saves a new rider to the database.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return dberr.Classify("add rider", r.db.WithContext(ctx).Create(&dto).Error)
}

// Update saves every column of an existing rider.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RiderDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return dberr.Classify("update rider", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rider", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves a rider by ID with SELECT ... FOR UPDATE.
func (r *GormRiderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormRiderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", id.String())
		}
		return nil, dberr.Classify("get rider", err)
	}

	return toDomain(dto)
}

// ListIDsByStatus returns the IDs of riders in the given statuses ordered by ID.
func (r *GormRiderRepository) ListIDsByStatus(ctx context.Context, statuses ...rider.Status) ([]kernel.UUID, error) {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&RiderDTO{}).
		Where("status IN ?", names).
		Order("id").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, dberr.Classify("list riders", err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		restored, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, restored)
	}

	return ids, nil
}
