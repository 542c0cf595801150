package queries

import (
	"context"

	"backoffice/internal/core/domain/model/rider"
	"backoffice/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListAvailableRidersQueryHandler lists assignable riders ranked by the
// availability tracker.
//
// Example:
//
//	handler := NewListAvailableRidersQueryHandler(db)
//	riders, err := handler.Handle(ctx, NewListAvailableRidersQuery())
//	if err != nil {
//	    return err
//	}
//	if len(riders) > 0 {
//	    suggested := riders[0] // fewest active orders
//	}
type ListAvailableRidersQueryHandler struct {
	db      *gorm.DB
	tracker services.AvailabilityTracker
}

// NewListAvailableRidersQueryHandler creates a handler for the rider picker.
func NewListAvailableRidersQueryHandler(db *gorm.DB) ListAvailableRidersQueryHandler {
	return ListAvailableRidersQueryHandler{
		db:      db,
		tracker: services.NewAvailabilityTracker(),
	}
}

// Handle returns active, available riders ascending by active orders, then name.
// The list is a snapshot: assignment re-checks the rider when it runs.
func (h ListAvailableRidersQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableRidersQuery,
) ([]RiderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	loads, err := loadRiders(ctx, h.db,
		[]string{"r.is_active", "r.status = ?"},
		[]any{rider.Available.String()},
	)
	if err != nil {
		return nil, err
	}

	candidates := make([]services.RiderLoad, 0, len(loads))
	for _, load := range loads {
		if h.tracker.IsAssignable(load.Rider) {
			candidates = append(candidates, load)
		}
	}

	ranked := h.tracker.Rank(candidates)
	riders := make([]RiderView, 0, len(ranked))
	for _, load := range ranked {
		riders = append(riders, riderViewOf(load))
	}
	return riders, nil
}
