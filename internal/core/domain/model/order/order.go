package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

const (
	// CancellationMarker prefixes the reason appended to the notes of a cancelled order.
	CancellationMarker = "[CANCELADO]"
	// DefaultCancellationReason is used when staff cancel without giving a reason.
	DefaultCancellationReason = "Sin motivo especificado"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrNumberIsRequired is returned for orders without a human-readable number.
	ErrNumberIsRequired = errs.NewValueIsRequiredError("number")
)

// Customer is the contact and delivery address of the person who placed the order.
type Customer struct {
	Name    string
	Phone   string
	Address string
}

// Snapshot is the complete persisted state of an order. Repositories read and write
// orders through it.
type Snapshot struct {
	ID          kernel.UUID
	Number      string
	Status      Status
	Customer    Customer
	RiderID     *kernel.UUID
	StoreID     *kernel.UUID
	TotalCents  int64
	Urgent      bool
	Notes       string
	CreatedAt   time.Time
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// Order is a customer delivery request tracked by the back office.
//
// Order follows these invariants:
//   - Must have a valid identifier and a non-empty order number
//   - A pending order has no rider; assigned, in-transit and delivered orders have one
//   - assigned_at is set once the order leaves pending through assignment
//   - At most one of delivered_at and cancelled_at is set, and never overwritten
type Order struct {
	id          kernel.UUID
	number      string
	status      Status
	customer    Customer
	riderID     *kernel.UUID
	storeID     *kernel.UUID
	totalCents  int64
	urgent      bool
	notes       string
	createdAt   time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	isConstructed bool
}

// NewOrder creates a pending order with no rider.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1042", customer, &storeID, 15990, false, "", time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	number string,
	customer Customer,
	storeID *kernel.UUID,
	totalCents int64,
	urgent bool,
	notes string,
	createdAt time.Time,
) (*Order, error) {
	return RestoreOrder(Snapshot{
		ID:         id,
		Number:     number,
		Status:     Pending,
		Customer:   customer,
		StoreID:    storeID,
		TotalCents: totalCents,
		Urgent:     urgent,
		Notes:      notes,
		CreatedAt:  createdAt,
	})
}

// RestoreOrder rebuilds an order from persisted state, in any of the five statuses,
// and rejects snapshots that break the aggregate invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:      s.Status,
		customer:    s.Customer,
		riderID:     s.RiderID,
		storeID:     s.StoreID,
		urgent:      s.Urgent,
		notes:       s.Notes,
		createdAt:   s.CreatedAt,
		assignedAt:  s.AssignedAt,
		pickedUpAt:  s.PickedUpAt,
		deliveredAt: s.DeliveredAt,
		cancelledAt: s.CancelledAt,

		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setTotal(s.TotalCents),
		s.Status.Validate(),
		s.Status.ValidateCanHaveRider(s.RiderID != nil),
		o.validateMilestones(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// Snapshot returns a copy of the complete order state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:          o.id,
		Number:      o.number,
		Status:      o.status,
		Customer:    o.customer,
		RiderID:     o.riderID,
		StoreID:     o.storeID,
		TotalCents:  o.totalCents,
		Urgent:      o.urgent,
		Notes:       o.notes,
		CreatedAt:   o.createdAt,
		AssignedAt:  o.assignedAt,
		PickedUpAt:  o.pickedUpAt,
		DeliveredAt: o.deliveredAt,
		CancelledAt: o.cancelledAt,
	}
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) Status() Status {
	return o.status
}

// Rider returns the assigned rider's ID, or nil if the order was never assigned.
// Cancelled orders keep the rider they had so it can be released.
func (o *Order) Rider() *kernel.UUID {
	return o.riderID
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// ValidateAssign checks that the order can be assigned without mutating it.
func (o *Order) ValidateAssign() error {
	_, err := o.status.Assign()
	return err
}

// Assign gives a pending order to riderID and stamps assigned_at.
//
// Returns a PreconditionFailedError wrapping ErrOrderNotPending when the order has
// already been assigned, completed or cancelled.
func (o *Order) Assign(riderID kernel.UUID, now time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	at := now
	o.status = newStatus
	o.riderID = &riderID
	o.assignedAt = &at
	return nil
}

// Cancel moves a non-terminal order to Cancelled, stamps cancelled_at and appends
// the cancellation marker and reason to the notes. The rider reference is kept.
//
// Returns a PreconditionFailedError wrapping ErrOrderAlreadyCancelled or
// ErrOrderAlreadyDelivered for terminal orders; cancelled_at is never overwritten.
func (o *Order) Cancel(reason string, now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	at := now
	o.status = newStatus
	o.cancelledAt = &at
	o.notes = appendCancellationNote(o.notes, reason)
	return nil
}

func appendCancellationNote(notes, reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancellationReason
	}
	line := fmt.Sprintf("%s %s", CancellationMarker, reason)
	if strings.TrimSpace(notes) == "" {
		return line
	}
	return notes + "\n" + line
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrNumberIsRequired
	}
	o.number = number
	return nil
}

func (o *Order) setTotal(totalCents int64) error {
	if totalCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%d is negative", totalCents))
	}
	o.totalCents = totalCents
	return nil
}

func (o *Order) validateMilestones() error {
	if o.deliveredAt != nil && o.cancelledAt != nil {
		return inconsistentMilestones(errors.New("an order cannot be both delivered and cancelled"))
	}

	switch o.status {
	case Pending:
		if o.assignedAt != nil {
			return inconsistentMilestones(errors.New("a pending order has no assigned_at"))
		}
	case Assigned, InTransit, Delivered:
		if o.assignedAt == nil {
			return inconsistentMilestones(fmt.Errorf("a %s order needs assigned_at", o.status))
		}
	}

	if o.status == Delivered && o.deliveredAt == nil {
		return inconsistentMilestones(errors.New("a delivered order needs delivered_at"))
	}
	if o.status == Cancelled && o.cancelledAt == nil {
		return inconsistentMilestones(errors.New("a cancelled order needs cancelled_at"))
	}

	return nil
}

func inconsistentMilestones(cause error) error {
	return errs.NewValueIsInvalidErrorWithCause("timestamps", cause)
}
