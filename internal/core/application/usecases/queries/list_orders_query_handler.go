package queries

import (
	"context"
	"strings"

	"backoffice/internal/adapters/out/postgres/dberr"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads pages of the orders table joined with the rider name.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for the orders list.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the requested page, newest orders first. A page past the end is
// empty, with Total still counting every matching order.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	where, args := orderConditions(query.Filter())
	db := h.db.WithContext(ctx)

	response := ListOrdersQueryResponse{
		Orders:   make([]OrderView, 0),
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}

	if err := db.Raw(`SELECT COUNT(*) FROM orders o`+where, args...).Scan(&response.Total).Error; err != nil {
		return ListOrdersQueryResponse{}, dberr.Classify("count orders", err)
	}
	if response.Total == 0 {
		return response, nil
	}

	offset := (query.Page() - 1) * query.PageSize()
	rows, err := db.Raw(`
		SELECT
			o.id,
			o.number,
			o.status,
			o.customer_name,
			o.customer_phone,
			o.customer_address,
			o.delivery_id,
			COALESCE(r.name, ''),
			o.total_cents,
			o.urgent,
			o.notes,
			o.created_at,
			o.assigned_at,
			o.delivered_at,
			o.cancelled_at
		FROM orders o
		LEFT JOIN riders r ON r.id = o.delivery_id`+where+`
		ORDER BY o.created_at DESC, o.id
		LIMIT ? OFFSET ?
	`, append(args, query.PageSize(), offset)...).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, dberr.Classify("list orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var view OrderView
		var id uuid.UUID
		var riderID uuid.NullUUID
		var status string

		err = rows.Scan(
			&id,
			&view.Number,
			&status,
			&view.CustomerName,
			&view.CustomerPhone,
			&view.CustomerAddress,
			&riderID,
			&view.RiderName,
			&view.TotalCents,
			&view.Urgent,
			&view.Notes,
			&view.CreatedAt,
			&view.AssignedAt,
			&view.DeliveredAt,
			&view.CancelledAt,
		)
		if err != nil {
			return ListOrdersQueryResponse{}, dberr.Classify("list orders", err)
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return ListOrdersQueryResponse{}, err
		}
		if view.Status, err = order.ParseStatus(status); err != nil {
			return ListOrdersQueryResponse{}, err
		}
		if view.RiderID, err = optionalUUID(riderID); err != nil {
			return ListOrdersQueryResponse{}, err
		}
		response.Orders = append(response.Orders, view)
	}

	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, dberr.Classify("list orders", err)
	}

	return response, nil
}

func orderConditions(filter OrderFilter) (string, []any) {
	var conditions []string
	var args []any

	if len(filter.Statuses) > 0 {
		names := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			names = append(names, s.String())
		}
		conditions = append(conditions, "o.status IN ?")
		args = append(args, names)
	}
	if filter.RiderID != nil {
		conditions = append(conditions, "o.delivery_id = ?")
		args = append(args, filter.RiderID.Bytes())
	}
	if filter.UrgentOnly {
		conditions = append(conditions, "o.urgent")
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		conditions = append(conditions, "(o.number ILIKE ? OR o.customer_name ILIKE ? OR o.customer_phone ILIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "\n\t\tWHERE " + strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func optionalUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil //nolint:nilnil // absent reference
	}
	u, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &u, nil
}
