package queries

import (
	"errors"

	"backoffice/internal/pkg/guard"
)

var (
	ErrListAvailableRidersQueryIsNotConstructed = errors.New(
		"ListAvailableRidersQuery must be created via NewListAvailableRidersQuery constructor",
	)
)

// ListAvailableRidersQuery retrieves the riders an order can be assigned to, least
// loaded first. It feeds the rider picker of the assignment dialog.
type ListAvailableRidersQuery struct {
	guard guard.ConstructorGuard
}

// NewListAvailableRidersQuery creates the query. It has no parameters.
func NewListAvailableRidersQuery() ListAvailableRidersQuery {
	return ListAvailableRidersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListAvailableRidersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableRidersQueryIsNotConstructed)
}
