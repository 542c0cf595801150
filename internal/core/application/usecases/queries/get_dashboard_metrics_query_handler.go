package queries

import (
	"context"

	"backoffice/internal/adapters/out/postgres/dberr"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/rider"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// GetDashboardMetricsQueryHandler aggregates the dashboard counters. The order and
// rider aggregations are independent and run concurrently.
type GetDashboardMetricsQueryHandler struct {
	db *gorm.DB
}

// NewGetDashboardMetricsQueryHandler creates a handler for the dashboard counters.
func NewGetDashboardMetricsQueryHandler(db *gorm.DB) GetDashboardMetricsQueryHandler {
	return GetDashboardMetricsQueryHandler{db: db}
}

// Handle returns the counters. The first failing aggregation cancels the others.
func (h GetDashboardMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardMetricsQuery,
) (DashboardMetrics, error) {
	if err := query.Validate(); err != nil {
		return DashboardMetrics{}, err
	}

	metrics := DashboardMetrics{
		OrdersByStatus: map[order.Status]int{
			order.Pending:   0,
			order.Assigned:  0,
			order.InTransit: 0,
			order.Delivered: 0,
			order.Cancelled: 0,
		},
		RidersByStatus: map[rider.Status]int{
			rider.Available: 0,
			rider.Busy:      0,
			rider.Offline:   0,
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := h.countByStatus(ctx, "orders")
		if err != nil {
			return err
		}
		for name, n := range counts {
			s, parseErr := order.ParseStatus(name)
			if parseErr != nil {
				return parseErr
			}
			metrics.OrdersByStatus[s] = n
		}
		return nil
	})

	g.Go(func() error {
		counts, err := h.countByStatus(ctx, "riders")
		if err != nil {
			return err
		}
		for name, n := range counts {
			s, parseErr := rider.ParseStatus(name)
			if parseErr != nil {
				return parseErr
			}
			metrics.RidersByStatus[s] = n
		}
		return nil
	})

	g.Go(func() error {
		start, end := query.Day()
		row := h.db.WithContext(ctx).Raw(`
			SELECT
				COUNT(*) FILTER (WHERE created_at >= ? AND created_at < ?),
				COUNT(*) FILTER (WHERE status = ? AND delivered_at >= ? AND delivered_at < ?),
				COALESCE(SUM(total_cents) FILTER (WHERE status = ? AND delivered_at >= ? AND delivered_at < ?), 0),
				COUNT(*) FILTER (WHERE status = ? AND urgent)
			FROM orders
		`,
			start, end,
			order.Delivered.String(), start, end,
			order.Delivered.String(), start, end,
			order.Pending.String(),
		).Row()
		return row.Scan(
			&metrics.OrdersToday,
			&metrics.DeliveredToday,
			&metrics.RevenueTodayCents,
			&metrics.UrgentPendingCount,
		)
	})

	g.Go(func() error {
		return h.db.WithContext(ctx).
			Raw(`SELECT COUNT(*) FROM riders WHERE is_active`).
			Row().
			Scan(&metrics.ActiveRiders)
	})

	if err := g.Wait(); err != nil {
		return DashboardMetrics{}, dberr.Classify("dashboard metrics", err)
	}
	return metrics, nil
}

// countByStatus groups a table by its status column. table is always a constant.
func (h GetDashboardMetricsQueryHandler) countByStatus(ctx context.Context, table string) (map[string]int, error) {
	rows, err := h.db.WithContext(ctx).Raw(`SELECT status, COUNT(*) FROM ` + table + ` GROUP BY status`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err = rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
