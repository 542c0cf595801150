// Package profile holds the identity of an authenticated staff member as the back
// office sees it. Authentication itself is done by the external identity provider;
// one Profile exists per authenticated identity.
package profile

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	// ErrProfileIsNotConstructed is returned by Validate for profiles built without RestoreProfile.
	ErrProfileIsNotConstructed = errors.New("Profile must be created via RestoreProfile constructor")
	// ErrEmailIsRequired is returned when a profile has no email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
)

// Profile is a staff member: identifier, role, display name and email.
type Profile struct {
	id       kernel.UUID
	role     role.Role
	fullName string
	email    string
	guard    guard.ConstructorGuard
}

// RestoreProfile rebuilds a profile loaded from storage.
// The role must be one of the three known roles.
func RestoreProfile(id kernel.UUID, r role.Role, fullName, email string) (*Profile, error) {
	p := &Profile{
		fullName: strings.TrimSpace(fullName),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setRole(r),
		p.setEmail(email),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the profile was built through RestoreProfile.
func (p *Profile) Validate() error {
	if p == nil {
		return ErrProfileIsNotConstructed
	}
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

func (p *Profile) ID() kernel.UUID {
	return p.id
}

func (p *Profile) Role() role.Role {
	return p.role
}

func (p *Profile) FullName() string {
	return p.fullName
}

func (p *Profile) Email() string {
	return p.email
}

// HasPermission reports whether the profile's role satisfies required.
// A nil or unconstructed profile has no permissions.
func (p *Profile) HasPermission(required role.Role) bool {
	if p.Validate() != nil {
		return false
	}
	return role.HasPermission(p.role, required)
}

// IsAdmin reports an exact admin role.
func (p *Profile) IsAdmin() bool {
	return p.is(role.Admin)
}

// IsSubAdmin reports an exact sub-admin role.
func (p *Profile) IsSubAdmin() bool {
	return p.is(role.SubAdmin)
}

// IsSoporte reports an exact soporte role.
func (p *Profile) IsSoporte() bool {
	return p.is(role.Soporte)
}

func (p *Profile) is(r role.Role) bool {
	return p.Validate() == nil && p.role == r
}

func (p *Profile) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Profile) setRole(r role.Role) error {
	if err := r.Validate(); err != nil {
		return err
	}
	p.role = r
	return nil
}

func (p *Profile) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailIsRequired
	}
	p.email = email
	return nil
}
