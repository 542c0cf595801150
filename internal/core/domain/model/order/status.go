package order

import (
	"errors"
	"fmt"

	"backoffice/internal/pkg/errs"
)

// Transition failures. Each is returned wrapped in an errs.PreconditionFailedError,
// so callers can match either the specific cause or the general kind.
var (
	ErrOrderNotPending       = errors.New("order is not pending")
	ErrOrderAlreadyCancelled = errors.New("order is already cancelled")
	ErrOrderAlreadyDelivered = errors.New("order is already delivered")
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Assigned ──> InTransit ──> Delivered
//	   │           │            │
//	   └───────────┴────────────┴─────> Cancelled
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order waits for a rider.
	Pending

	// Assigned means a rider was assigned but has not picked the order up yet.
	Assigned

	// InTransit means the rider picked the order up.
	InTransit

	// Delivered is terminal: the order reached the customer.
	Delivered

	// Cancelled is terminal: the order was cancelled by staff.
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Assigned:  "assigned",
	InTransit: "in_transit",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

// ParseStatus converts the persisted status string into a Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// ActiveStatuses are the statuses in which an order keeps its rider busy.
func ActiveStatuses() []Status {
	return []Status{Assigned, InTransit}
}

// Validate checks if the Status value is one of the five known statuses.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, or "unknown".
func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether an order in this status occupies its rider.
func (s Status) IsActive() bool {
	return s == Assigned || s == InTransit
}

// Assign transitions Pending to Assigned. Any other status has already been
// assigned, completed or cancelled and yields ErrOrderNotPending.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewPreconditionFailedErrorWithCause(
			"order",
			fmt.Sprintf("in status %s cannot be assigned", s),
			ErrOrderNotPending,
		)
	}
	return Assigned, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Pending, Assigned, InTransit:
		return Cancelled, nil
	case Cancelled:
		return Unknown, errs.NewPreconditionFailedErrorWithCause("order", "cannot be cancelled twice", ErrOrderAlreadyCancelled)
	case Delivered:
		return Unknown, errs.NewPreconditionFailedErrorWithCause("order", "was delivered and cannot be cancelled", ErrOrderAlreadyDelivered)
	default:
		return Unknown, s.Validate()
	}
}

// ValidateCanHaveRider checks the consistency between status and rider reference.
// Pending orders never have a rider; assigned, in-transit and delivered orders
// always do. Cancelled orders keep whatever reference they had.
func (s Status) ValidateCanHaveRider(hasRider bool) error {
	if hasRider && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a rider", s),
		)
	}

	if !hasRider && (s == Assigned || s == InTransit || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no rider", s),
		)
	}

	return nil
}
