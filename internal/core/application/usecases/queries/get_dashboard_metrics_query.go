package queries

import (
	"errors"
	"time"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/rider"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	ErrGetDashboardMetricsQueryIsNotConstructed = errors.New(
		"GetDashboardMetricsQuery must be created via NewGetDashboardMetricsQuery constructor",
	)
)

// GetDashboardMetricsQuery retrieves the counters shown on the dashboard home.
// "Today" is the calendar day of now, in now's location.
type GetDashboardMetricsQuery struct {
	now   time.Time
	guard guard.ConstructorGuard
}

// NewGetDashboardMetricsQuery creates the query for the day containing now.
func NewGetDashboardMetricsQuery(now time.Time) (GetDashboardMetricsQuery, error) {
	if now.IsZero() {
		return GetDashboardMetricsQuery{}, errs.NewValueIsRequiredError("now")
	}
	return GetDashboardMetricsQuery{now: now, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardMetricsQueryIsNotConstructed)
}

// Day returns the start of today and the start of tomorrow.
func (q GetDashboardMetricsQuery) Day() (time.Time, time.Time) {
	y, m, d := q.now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, q.now.Location())
	return start, start.AddDate(0, 0, 1)
}

// DashboardMetrics are the dashboard counters. Statuses with no rows are present
// with a zero count.
type DashboardMetrics struct {
	OrdersByStatus     map[order.Status]int
	OrdersToday        int
	DeliveredToday     int
	RevenueTodayCents  int64
	RidersByStatus     map[rider.Status]int
	ActiveRiders       int
	UrgentPendingCount int
}
