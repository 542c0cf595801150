package commands

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/rider"
)

// ReconcileRidersCommandHandler restores the rider availability invariant for every
// busy or available rider, one recompute per rider. It heals riders left behind by
// failed best-effort writes and by deliveries completed outside the back office.
type ReconcileRidersCommandHandler struct {
	uowFactory UoWFactory
	recompute  RecomputeRiderAvailabilityCommandHandler
}

// NewReconcileRidersCommandHandler creates the reconciliation handler.
func NewReconcileRidersCommandHandler(
	uowFactory UoWFactory,
	recompute RecomputeRiderAvailabilityCommandHandler,
) ReconcileRidersCommandHandler {
	return ReconcileRidersCommandHandler{
		uowFactory: uowFactory,
		recompute:  recompute,
	}
}

// Handle returns how many riders changed status. A failing rider does not stop the
// run; all failures are joined into the returned error.
func (h ReconcileRidersCommandHandler) Handle(ctx context.Context, command ReconcileRidersCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.uowFactory.Create().RiderRepository().ListIDsByStatus(ctx, rider.Busy, rider.Available)
	if err != nil {
		return 0, err
	}

	changed := 0
	var failures []error
	for _, id := range ids {
		if ctxErr := ctx.Err(); ctxErr != nil {
			failures = append(failures, ctxErr)
			break
		}

		cmd, cmdErr := NewRecomputeRiderAvailabilityCommand(id)
		if cmdErr != nil {
			failures = append(failures, cmdErr)
			continue
		}

		ok, recomputeErr := h.recompute.Handle(ctx, cmd)
		if recomputeErr != nil {
			failures = append(failures, fmt.Errorf("rider %s: %w", id, recomputeErr))
			continue
		}
		if ok {
			changed++
		}
	}

	return changed, errors.Join(failures...)
}
