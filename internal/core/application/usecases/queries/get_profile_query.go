package queries

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/pkg/guard"
)

var (
	ErrGetProfileQueryIsNotConstructed = errors.New(
		"GetProfileQuery must be created via NewGetProfileQuery constructor",
	)
)

// GetProfileQuery retrieves the profile of an authenticated identity.
type GetProfileQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

// NewGetProfileQuery creates a query for the profile with the given identity.
func NewGetProfileQuery(id kernel.UUID) (GetProfileQuery, error) {
	if err := id.Validate(); err != nil {
		return GetProfileQuery{}, err
	}
	return GetProfileQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetProfileQueryIsNotConstructed)
}

func (q GetProfileQuery) ID() kernel.UUID {
	return q.id
}

// ProfileView is the caller as the dashboard sees it, with the permission flags the
// UI uses to show or hide actions.
type ProfileView struct {
	ID          kernel.UUID
	Role        role.Role
	FullName    string
	Email       string
	IsAdmin     bool
	IsSubAdmin  bool
	IsSoporte   bool
	CanDispatch bool
}
