package queries

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/profile"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

// ErrProfileNotFound is returned for identities without a profile row.
var ErrProfileNotFound = fmt.Errorf("%w: profile", errs.ErrObjectNotFound)

// GetProfileQueryHandler loads caller profiles. The HTTP adapter resolves every
// request's caller through it.
type GetProfileQueryHandler struct {
	profiles ports.ProfileRepository
}

// NewGetProfileQueryHandler creates a handler reading from profiles.
func NewGetProfileQueryHandler(profiles ports.ProfileRepository) GetProfileQueryHandler {
	return GetProfileQueryHandler{profiles: profiles}
}

// Handle returns ErrProfileNotFound for unknown identities.
func (h GetProfileQueryHandler) Handle(ctx context.Context, query GetProfileQuery) (ProfileView, error) {
	if err := query.Validate(); err != nil {
		return ProfileView{}, err
	}

	p, err := h.profiles.Get(ctx, query.ID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ProfileView{}, fmt.Errorf("%w: %w", ErrProfileNotFound, err)
		}
		return ProfileView{}, err
	}

	return profileViewOf(p), nil
}

func profileViewOf(p *profile.Profile) ProfileView {
	return ProfileView{
		ID:          p.ID(),
		Role:        p.Role(),
		FullName:    p.FullName(),
		Email:       p.Email(),
		IsAdmin:     p.IsAdmin(),
		IsSubAdmin:  p.IsSubAdmin(),
		IsSoporte:   p.IsSoporte(),
		CanDispatch: p.HasPermission(role.SubAdmin),
	}
}
