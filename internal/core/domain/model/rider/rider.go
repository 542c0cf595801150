package rider

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

const (
	// RatingMin is the lowest rating a rider can have.
	RatingMin = 0.0
	// RatingMax is the highest rating a rider can have.
	RatingMax = 5.0
)

var (
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider constructor")
	// ErrNameIsRequired is returned when attempting to create a rider without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrRiderInactive is returned when assigning to a deactivated rider, whatever its status.
	ErrRiderInactive = errors.New("rider is inactive")
	// ErrRiderUnavailable is returned when assigning to an active rider that is busy or offline.
	ErrRiderUnavailable = errors.New("rider is not available")
)

// Snapshot is the complete persisted state of a rider.
type Snapshot struct {
	ID         kernel.UUID
	Name       string
	Phone      string
	Email      string
	Status     Status
	Active     bool
	Vehicle    string
	Location   *kernel.Location
	Deliveries int
	Rating     float64
}

// Rider represents a delivery courier managed from the back office.
//
// Example usage:
//
//	r, err := rider.NewRider(kernel.NewUUID(), "Juan Gómez", "+54 11 5555 0000", "moto")
//	if err != nil {
//	    // Handle construction error
//	}
//	r.IsAssignable() // true: new riders start active and available
type Rider struct {
	id         kernel.UUID
	name       string
	phone      string
	email      string
	status     Status
	active     bool
	vehicle    string
	location   *kernel.Location
	deliveries int
	rating     float64
	guard      guard.ConstructorGuard
}

// NewRider creates an active, available rider with no location and no deliveries.
func NewRider(id kernel.UUID, name, phone, vehicle string) (*Rider, error) {
	return RestoreRider(Snapshot{
		ID:      id,
		Name:    name,
		Phone:   phone,
		Status:  Available,
		Active:  true,
		Vehicle: vehicle,
	})
}

// RestoreRider reconstructs a Rider from persistent storage.
func RestoreRider(s Snapshot) (*Rider, error) {
	r := &Rider{
		phone:   strings.TrimSpace(s.Phone),
		email:   strings.TrimSpace(s.Email),
		active:  s.Active,
		vehicle: strings.TrimSpace(s.Vehicle),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(s.ID),
		r.setName(s.Name),
		r.setStatus(s.Status),
		r.setLocation(s.Location),
		r.setDeliveries(s.Deliveries),
		r.setRating(s.Rating),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the rider was properly constructed.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// Snapshot returns a copy of the complete rider state.
func (r *Rider) Snapshot() Snapshot {
	return Snapshot{
		ID:         r.id,
		Name:       r.name,
		Phone:      r.phone,
		Email:      r.email,
		Status:     r.status,
		Active:     r.active,
		Vehicle:    r.vehicle,
		Location:   r.location,
		Deliveries: r.deliveries,
		Rating:     r.rating,
	}
}

// IsEqual compares two riders by identifier.
func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Rider) ID() kernel.UUID {
	return r.id
}

func (r *Rider) Name() string {
	return r.name
}

func (r *Rider) Status() Status {
	return r.status
}

func (r *Rider) IsActive() bool {
	return r.active
}

// Location returns the last reported position, or nil if the rider never reported one.
func (r *Rider) Location() *kernel.Location {
	return r.location
}

// IsAssignable reports whether the rider may receive a new order right now.
func (r *Rider) IsAssignable() bool {
	return r.ValidateAssignable() == nil
}

// ValidateAssignable explains why a rider cannot take a new order.
// The active flag is checked first: an inactive rider is rejected as inactive
// regardless of its status.
func (r *Rider) ValidateAssignable() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !r.active {
		return errs.NewPreconditionFailedErrorWithCause("rider", "is deactivated", ErrRiderInactive)
	}
	if r.status != Available {
		return errs.NewPreconditionFailedErrorWithCause(
			"rider",
			fmt.Sprintf("is %s", r.status),
			ErrRiderUnavailable,
		)
	}
	return nil
}

// MarkBusy moves an available rider to busy. It reports whether the status changed.
// Offline riders stay offline.
func (r *Rider) MarkBusy() bool {
	if r.status != Available {
		return false
	}
	r.status = Busy
	return true
}

// MarkAvailable releases a busy rider. It reports whether the status changed.
// Offline riders stay offline.
func (r *Rider) MarkAvailable() bool {
	if r.status != Busy {
		return false
	}
	r.status = Available
	return true
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Rider) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Rider) setLocation(location *kernel.Location) error {
	if location == nil {
		r.location = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	r.location = &loc
	return nil
}

func (r *Rider) setDeliveries(deliveries int) error {
	if deliveries < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveries", fmt.Errorf("%d is negative", deliveries))
	}
	r.deliveries = deliveries
	return nil
}

func (r *Rider) setRating(rating float64) error {
	if math.IsNaN(rating) || rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}
	r.rating = rating
	return nil
}
