package ports

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
)

// ErrOrderStatusMismatch is the cause carried by the PreconditionFailedError that
// OrderRepository.Update returns when the stored status no longer matches the
// expected one.
var ErrOrderStatusMismatch = errors.New("stored order status does not match the expected status")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order only if its stored status still equals expected.
	// The write is a single conditional statement, so two callers racing on the same
	// order cannot both succeed.
	//
	// Returns an ObjectNotFoundError if the order does not exist and a
	// PreconditionFailedError wrapping ErrOrderStatusMismatch if it exists in another
	// status.
	//
	// Example:
	//   prev := o.Status()
	//   if err := o.Assign(riderID, now); err != nil {
	//       return err
	//   }
	//   err := repo.Update(ctx, o, prev)
	//   if errors.Is(err, ports.ErrOrderStatusMismatch) {
	//       // somebody else won the race
	//   }
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountActiveByRider counts the orders referencing riderID whose status is
	// assigned or in_transit.
	CountActiveByRider(ctx context.Context, riderID kernel.UUID) (int, error)
}
