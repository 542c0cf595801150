package queries

import (
	"errors"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

const (
	// DefaultPageSize is used when a list query does not ask for a page size.
	DefaultPageSize = 20
	// MaxPageSize is the largest page a list query may ask for.
	MaxPageSize = 100
	// MaxPage is the last page number a list query may ask for. It keeps the row
	// offset far from integer overflow.
	MaxPage = 100_000
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// OrderFilter narrows the orders list. The zero value lists every order.
type OrderFilter struct {
	Statuses   []order.Status
	RiderID    *kernel.UUID
	UrgentOnly bool
	// Search matches the order number, customer name or customer phone, case-insensitively.
	Search string
}

// ListOrdersQuery retrieves one page of orders, newest first.
//
// Example:
//
//	query, err := NewListOrdersQuery(OrderFilter{Statuses: []order.Status{order.Pending}}, 1, 0)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	filter   OrderFilter
	page     int
	pageSize int
	guard    guard.ConstructorGuard
}

// NewListOrdersQuery creates an orders list query. Page numbers start at 1; a zero
// page or page size falls back to the first page and DefaultPageSize.
func NewListOrdersQuery(filter OrderFilter, page, pageSize int) (ListOrdersQuery, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	if page < 1 || page > MaxPage {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, MaxPage)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, MaxPageSize)
	}
	for _, s := range filter.Statuses {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.RiderID != nil {
		if err := filter.RiderID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	filter.Search = strings.TrimSpace(filter.Search)

	return ListOrdersQuery{
		filter:   filter,
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}

func (q ListOrdersQuery) Page() int {
	return q.page
}

func (q ListOrdersQuery) PageSize() int {
	return q.pageSize
}

// OrderView is one row of the orders list. RiderName is empty for orders without
// a rider or whose rider row no longer exists.
type OrderView struct {
	ID              kernel.UUID
	Number          string
	Status          order.Status
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	RiderID         *kernel.UUID
	RiderName       string
	TotalCents      int64
	Urgent          bool
	Notes           string
	CreatedAt       time.Time
	AssignedAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// ListOrdersQueryResponse is a page of orders plus the number of orders matching
// the filter across all pages.
type ListOrdersQueryResponse struct {
	Orders   []OrderView
	Total    int64
	Page     int
	PageSize int
}
