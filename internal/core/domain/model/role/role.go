// Package role implements the staff permission model: a closed set of three roles
// with a total order (admin > sub-admin > soporte). Comparing roles is the only
// access-control mechanism of the back office.
package role

import (
	"fmt"

	"backoffice/internal/pkg/errs"
)

// Role is a staff role. The zero value Unknown stands for an absent or unrecognized
// caller and never satisfies any requirement.
type Role int

const (
	// Unknown is an absent, unauthenticated or unrecognized caller.
	Unknown Role = iota

	// Soporte is customer support, the lowest privilege. Read-only access.
	Soporte

	// SubAdmin can assign and cancel orders.
	SubAdmin

	// Admin has every permission.
	Admin
)

var roleNames = map[Role]string{
	Soporte:  "soporte",
	SubAdmin: "sub-admin",
	Admin:    "admin",
}

// Parse converts the stored role string into a Role.
// Unrecognized strings yield Unknown and a ValueIsInvalidError.
func Parse(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// Validate returns an error for Unknown and out-of-range values.
func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Level is the numeric rank of the role: admin 3, sub-admin 2, soporte 1, otherwise 0.
func (r Role) Level() int {
	if r.Validate() != nil {
		return 0
	}
	return int(r)
}

// Satisfies reports whether r is at least as privileged as required.
// It fails closed: an invalid caller or an invalid requirement yields false.
func (r Role) Satisfies(required Role) bool {
	if r.Validate() != nil || required.Validate() != nil {
		return false
	}
	return r.Level() >= required.Level()
}

// HasPermission is the permission check used by every caller-facing entry point.
func HasPermission(caller, required Role) bool {
	return caller.Satisfies(required)
}
