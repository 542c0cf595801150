package services

import (
	"cmp"
	"slices"

	"backoffice/internal/core/domain/model/rider"
)

// RiderLoad pairs a rider with its current number of assigned or in-transit orders.
type RiderLoad struct {
	Rider        *rider.Rider
	ActiveOrders int
}

// AvailabilityTracker derives rider availability from rider state and order load.
//
// It is the single place that decides the busy/available status of a rider:
//   - a rider with at least one active order is busy
//   - a busy rider with no active orders is available again
//   - offline riders are never changed
//
// Example:
//
//	tracker := services.NewAvailabilityTracker()
//	if tracker.Settle(r, activeOrders) {
//	    // persist r.Status()
//	}
type AvailabilityTracker struct{}

// NewAvailabilityTracker creates a new AvailabilityTracker instance.
func NewAvailabilityTracker() AvailabilityTracker {
	return AvailabilityTracker{}
}

// IsAssignable reports whether r is active and available.
func (AvailabilityTracker) IsAssignable(r *rider.Rider) bool {
	return r.IsAssignable()
}

// Rank orders candidates ascending by active orders so new work goes to the least
// loaded riders. Ties are broken by name, then by ID, so the order is stable across
// calls. The input slice is not modified.
func (AvailabilityTracker) Rank(candidates []RiderLoad) []RiderLoad {
	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b RiderLoad) int {
		return cmp.Or(
			cmp.Compare(a.ActiveOrders, b.ActiveOrders),
			cmp.Compare(a.Rider.Name(), b.Rider.Name()),
			cmp.Compare(a.Rider.ID().String(), b.Rider.ID().String()),
		)
	})
	return ranked
}

// Settle brings the rider's status in line with its active order count and reports
// whether the status changed.
func (AvailabilityTracker) Settle(r *rider.Rider, activeOrders int) bool {
	if activeOrders > 0 {
		return r.MarkBusy()
	}
	return r.MarkAvailable()
}
