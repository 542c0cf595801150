package ports

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider aggregate to storage.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists the rider's status and profile fields.
	// Returns an ObjectNotFoundError if the rider does not exist.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider aggregate by its unique identifier.
	// Returns an ObjectNotFoundError if no such rider exists.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetForUpdate is Get with a row lock held until the surrounding transaction
	// ends. Concurrent availability recomputes for the same rider are serialized on
	// this lock. Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// ListIDsByStatus returns the IDs of riders in any of the given statuses,
	// ordered by ID.
	ListIDsByStatus(ctx context.Context, statuses ...rider.Status) ([]kernel.UUID, error)
}
