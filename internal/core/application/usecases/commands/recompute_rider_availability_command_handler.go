package commands

import (
	"context"
	"log/slog"

	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
)

// RecomputeRiderAvailabilityCommandHandler is the only writer of the busy/available
// status of a rider. It locks the rider row, counts the rider's assigned and
// in-transit orders and lets AvailabilityTracker settle the status:
//   - count > 0 and available: busy
//   - count == 0 and busy: available
//   - offline: unchanged
//
// Running it repeatedly is harmless; an already settled rider is left as is.
type RecomputeRiderAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	tracker    services.AvailabilityTracker
	publisher  ports.EventPublisher
	clock      Clock
	logger     *slog.Logger
}

// NewRecomputeRiderAvailabilityCommandHandler creates the recompute handler.
func NewRecomputeRiderAvailabilityCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
	logger *slog.Logger,
) RecomputeRiderAvailabilityCommandHandler {
	return RecomputeRiderAvailabilityCommandHandler{
		uowFactory: uowFactory,
		tracker:    services.NewAvailabilityTracker(),
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "rider_availability"),
	}
}

// Handle reports whether the rider's status changed.
func (h RecomputeRiderAvailabilityCommandHandler) Handle(
	ctx context.Context,
	command RecomputeRiderAvailabilityCommand,
) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()
	orderRepo := uow.OrderRepository()

	r, err := riderRepo.GetForUpdate(ctx, command.RiderID())
	if err != nil {
		return false, notFound(err, ErrRiderNotFound)
	}

	active, err := orderRepo.CountActiveByRider(ctx, command.RiderID())
	if err != nil {
		return false, err
	}

	previous := r.Status()
	changed := h.tracker.Settle(r, active)
	if changed {
		if err = riderRepo.Update(ctx, r); err != nil {
			return false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	if !changed {
		return false, nil
	}

	riderID := r.ID()
	h.logger.InfoContext(ctx, "Rider status changed",
		"rider_id", riderID.String(),
		"from", previous.String(),
		"to", r.Status().String(),
		"active_orders", active,
	)

	publish(ctx, h.publisher, h.logger, ports.ChangeEvent{
		Type:       ports.EventRiderStatusChanged,
		RiderID:    &riderID,
		Status:     r.Status().String(),
		OccurredAt: h.clock(),
	})

	return true, nil
}
