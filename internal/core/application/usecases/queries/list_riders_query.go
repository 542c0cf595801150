package queries

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/rider"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/pkg/guard"
)

var (
	ErrListRidersQueryIsNotConstructed = errors.New(
		"ListRidersQuery must be created via NewListRidersQuery constructor",
	)
)

// ListRidersQuery retrieves riders with their current order load, sorted by name.
// A nil status lists riders in every status.
type ListRidersQuery struct {
	status     *rider.Status
	activeOnly bool
	guard      guard.ConstructorGuard
}

// NewListRidersQuery creates a riders list query.
func NewListRidersQuery(status *rider.Status, activeOnly bool) (ListRidersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListRidersQuery{}, err
		}
	}
	return ListRidersQuery{
		status:     status,
		activeOnly: activeOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListRidersQuery) Validate() error {
	return q.guard.Validate(ErrListRidersQueryIsNotConstructed)
}

func (q ListRidersQuery) Status() *rider.Status {
	return q.status
}

func (q ListRidersQuery) ActiveOnly() bool {
	return q.activeOnly
}

// RiderView is a rider as shown in the back office, with the number of orders it
// currently has assigned or in transit.
type RiderView struct {
	ID           kernel.UUID
	Name         string
	Phone        string
	Email        string
	Vehicle      string
	Status       rider.Status
	Active       bool
	Location     *kernel.Location
	Deliveries   int
	Rating       float64
	ActiveOrders int
}

func riderViewOf(load services.RiderLoad) RiderView {
	s := load.Rider.Snapshot()
	return RiderView{
		ID:           s.ID,
		Name:         s.Name,
		Phone:        s.Phone,
		Email:        s.Email,
		Vehicle:      s.Vehicle,
		Status:       s.Status,
		Active:       s.Active,
		Location:     s.Location,
		Deliveries:   s.Deliveries,
		Rating:       s.Rating,
		ActiveOrders: load.ActiveOrders,
	}
}
