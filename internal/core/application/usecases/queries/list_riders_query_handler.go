package queries

import (
	"context"
	"database/sql"
	"strings"

	"backoffice/internal/adapters/out/postgres/dberr"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/rider"
	"backoffice/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListRidersQueryHandler reads riders together with their active order count.
type ListRidersQueryHandler struct {
	db *gorm.DB
}

// NewListRidersQueryHandler creates a handler for the riders list.
func NewListRidersQueryHandler(db *gorm.DB) ListRidersQueryHandler {
	return ListRidersQueryHandler{db: db}
}

// Handle returns the matching riders sorted by name, then ID.
func (h ListRidersQueryHandler) Handle(ctx context.Context, query ListRidersQuery) ([]RiderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any
	if query.Status() != nil {
		conditions = append(conditions, "r.status = ?")
		args = append(args, query.Status().String())
	}
	if query.ActiveOnly() {
		conditions = append(conditions, "r.is_active")
	}

	loads, err := loadRiders(ctx, h.db, conditions, args)
	if err != nil {
		return nil, err
	}

	riders := make([]RiderView, 0, len(loads))
	for _, load := range loads {
		riders = append(riders, riderViewOf(load))
	}
	return riders, nil
}

// loadRiders restores the riders matching conditions, paired with the number of
// their orders in an active status.
func loadRiders(ctx context.Context, db *gorm.DB, conditions []string, args []any) ([]services.RiderLoad, error) {
	where := ""
	if len(conditions) > 0 {
		where = "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}

	active := make([]string, 0, len(order.ActiveStatuses()))
	for _, s := range order.ActiveStatuses() {
		active = append(active, s.String())
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.name,
			r.phone,
			r.email,
			r.status,
			r.is_active,
			r.vehicle,
			r.current_lat,
			r.current_lng,
			r.total_deliveries,
			r.rating,
			(SELECT COUNT(*) FROM orders o WHERE o.delivery_id = r.id AND o.status IN ?)
		FROM riders r`+where+`
		ORDER BY r.name, r.id
	`, append([]any{active}, args...)...).Rows()
	if err != nil {
		return nil, dberr.Classify("list riders", err)
	}
	defer rows.Close()

	loads := make([]services.RiderLoad, 0)
	for rows.Next() {
		var s rider.Snapshot
		var id uuid.UUID
		var status string
		var lat, lng sql.NullFloat64
		var activeOrders int

		err = rows.Scan(
			&id,
			&s.Name,
			&s.Phone,
			&s.Email,
			&status,
			&s.Active,
			&s.Vehicle,
			&lat,
			&lng,
			&s.Deliveries,
			&s.Rating,
			&activeOrders,
		)
		if err != nil {
			return nil, dberr.Classify("list riders", err)
		}

		if s.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if s.Status, err = rider.ParseStatus(status); err != nil {
			return nil, err
		}
		if lat.Valid && lng.Valid {
			location, locErr := kernel.NewLocation(lat.Float64, lng.Float64)
			if locErr != nil {
				return nil, locErr
			}
			s.Location = &location
		}

		r, restoreErr := rider.RestoreRider(s)
		if restoreErr != nil {
			return nil, restoreErr
		}
		loads = append(loads, services.RiderLoad{Rider: r, ActiveOrders: activeOrders})
	}

	if err = rows.Err(); err != nil {
		return nil, dberr.Classify("list riders", err)
	}

	return loads, nil
}
