package commands

import (
	"context"
	"log/slog"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/ports"
)

// publish sends event and only logs a failure. Change events are hints for the
// read side; the record they point at is already committed.
func publish(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, event ports.ChangeEvent) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Change event not published",
			"event", string(event.Type),
			"error", err,
		)
	}
}

// settleRider runs the availability recompute for riderID after an order
// transition. A failure is logged and left to the reconciliation job; it never
// changes the outcome of the order transition.
func settleRider(
	ctx context.Context,
	recompute RecomputeRiderAvailabilityCommandHandler,
	logger *slog.Logger,
	riderID kernel.UUID,
) {
	cmd, err := NewRecomputeRiderAvailabilityCommand(riderID)
	if err == nil {
		_, err = recompute.Handle(ctx, cmd)
	}
	if err != nil {
		logger.ErrorContext(ctx, "Rider availability not recomputed",
			"rider_id", riderID.String(),
			"error", err,
		)
	}
}
