package commands

import (
	"context"
	"errors"
	"log/slog"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

// AssignOrderCommandHandler gives a pending order to an assignable rider.
//
// The order write is a compare-and-swap on status=pending, so of two staff members
// racing on the same order exactly one succeeds; the other gets ErrOrderNotPending.
// The rider is moved to busy afterwards through the availability recompute, as a
// best-effort step that never rolls back the order.
//
// Example:
//
//	handler := NewAssignOrderCommandHandler(uowFactory, recompute, publisher, time.Now, logger)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrRiderNotFound), errors.Is(err, ErrOrderNotFound):
//	    // not found
//	case errors.Is(err, errs.ErrPreconditionFailed):
//	    // rider inactive/unavailable or order not pending
//	case err != nil:
//	    // store failure
//	}
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	recompute  RecomputeRiderAvailabilityCommandHandler
	publisher  ports.EventPublisher
	clock      Clock
	logger     *slog.Logger
}

// NewAssignOrderCommandHandler creates a handler for order assignment.
func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	recompute RecomputeRiderAvailabilityCommandHandler,
	publisher ports.EventPublisher,
	clock Clock,
	logger *slog.Logger,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		recompute:  recompute,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "assign_order"),
	}
}

// Handle re-reads the rider and the order, then writes the assignment.
//
// Errors, in the order they are checked:
//   - ErrRiderNotFound
//   - ErrOrderNotFound
//   - order.ErrOrderNotPending (PreconditionFailedError)
//   - rider.ErrRiderInactive, rider.ErrRiderUnavailable (PreconditionFailedError)
//   - order.ErrOrderNotPending again when the conditional write finds the order
//     already taken
func (h AssignOrderCommandHandler) Handle(ctx context.Context, command AssignOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()
	orderRepo := uow.OrderRepository()

	r, err := riderRepo.Get(ctx, command.RiderID())
	if err != nil {
		return notFound(err, ErrRiderNotFound)
	}

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return notFound(err, ErrOrderNotFound)
	}

	// A repeated assign finds the rider already busy with this very order, so the
	// order state is judged before the rider's.
	if err = o.ValidateAssign(); err != nil {
		return err
	}

	if err = r.ValidateAssignable(); err != nil {
		return err
	}

	if err = o.Assign(r.ID(), h.clock()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, order.Pending); err != nil {
		if errors.Is(err, ports.ErrOrderStatusMismatch) {
			return errs.NewPreconditionFailedErrorWithCause("order", "was taken concurrently", order.ErrOrderNotPending)
		}
		return notFound(err, ErrOrderNotFound)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	orderID, riderID := o.ID(), r.ID()
	h.logger.InfoContext(ctx, "Order assigned",
		"order_id", orderID.String(),
		"rider_id", riderID.String(),
	)

	publish(ctx, h.publisher, h.logger, ports.ChangeEvent{
		Type:       ports.EventOrderAssigned,
		OrderID:    &orderID,
		RiderID:    &riderID,
		Status:     o.Status().String(),
		OccurredAt: *o.AssignedAt(),
	})

	settleRider(ctx, h.recompute, h.logger, riderID)
	return nil
}
