package rider

import (
	"fmt"

	"backoffice/internal/pkg/errs"
)

// Status is the availability state of a rider.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Available riders can receive new orders (if active).
	Available

	// Busy riders have at least one assigned or in-transit order.
	Busy

	// Offline riders are not working right now.
	Offline
)

var statusNames = map[Status]string{
	Available: "available",
	Busy:      "busy",
	Offline:   "offline",
}

// ParseStatus converts the persisted status string into a Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("rider status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the known statuses.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("rider status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "unknown"
}
