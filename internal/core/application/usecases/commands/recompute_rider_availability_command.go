package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"
)

var ErrRecomputeRiderAvailabilityCommandIsNotConstructed = errors.New(
	"RecomputeRiderAvailabilityCommand must be created via NewRecomputeRiderAvailabilityCommand constructor",
)

// RecomputeRiderAvailabilityCommand settles one rider's busy/available status from
// its current count of assigned and in-transit orders. It is internal: assign,
// cancel and the reconciliation job issue it, never a staff member directly.
type RecomputeRiderAvailabilityCommand struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRecomputeRiderAvailabilityCommand(riderID kernel.UUID) (RecomputeRiderAvailabilityCommand, error) {
	if err := riderID.Validate(); err != nil {
		return RecomputeRiderAvailabilityCommand{}, err
	}

	return RecomputeRiderAvailabilityCommand{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecomputeRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeRiderAvailabilityCommandIsNotConstructed)
}

func (c RecomputeRiderAvailabilityCommand) RiderID() kernel.UUID {
	return c.riderID
}
