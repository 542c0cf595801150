package commands

import (
	"context"
	"errors"
	"log/slog"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order that is not yet delivered or cancelled
// and releases its rider when no other active orders remain.
//
// The write is conditional on the status read just before it. If the order moves in
// between, the handler re-reads it to report AlreadyCancelled/AlreadyDelivered, or
// ErrOrderStateChanged when it merely progressed (e.g. assigned to in_transit).
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	recompute  RecomputeRiderAvailabilityCommandHandler
	publisher  ports.EventPublisher
	clock      Clock
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	recompute RecomputeRiderAvailabilityCommandHandler,
	publisher ports.EventPublisher,
	clock Clock,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		recompute:  recompute,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "cancel_order"),
	}
}

// Handle cancels the order. Calling it twice succeeds once and then fails with
// order.ErrOrderAlreadyCancelled; cancelled_at is never overwritten.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return notFound(err, ErrOrderNotFound)
	}

	previous := o.Status()
	if err = o.Cancel(command.Reason(), h.clock()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, previous); err != nil {
		if errors.Is(err, ports.ErrOrderStatusMismatch) {
			return h.explainLostRace(ctx, orderRepo, command.OrderID())
		}
		return notFound(err, ErrOrderNotFound)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	orderID := o.ID()
	h.logger.InfoContext(ctx, "Order cancelled",
		"order_id", orderID.String(),
		"previous_status", previous.String(),
	)

	publish(ctx, h.publisher, h.logger, ports.ChangeEvent{
		Type:       ports.EventOrderCancelled,
		OrderID:    &orderID,
		RiderID:    o.Rider(),
		Status:     o.Status().String(),
		OccurredAt: *o.CancelledAt(),
	})

	if riderID := o.Rider(); riderID != nil {
		settleRider(ctx, h.recompute, h.logger, *riderID)
	}
	return nil
}

func (h CancelOrderCommandHandler) explainLostRace(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	id kernel.UUID,
) error {
	current, err := orderRepo.Get(ctx, id)
	if err != nil {
		return notFound(err, ErrOrderNotFound)
	}

	if _, err = current.Status().Cancel(); err != nil {
		return err
	}

	return ErrOrderStateChanged
}
