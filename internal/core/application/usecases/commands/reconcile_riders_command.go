package commands

import (
	"errors"

	"backoffice/internal/pkg/guard"
)

var ErrReconcileRidersCommandIsNotConstructed = errors.New(
	"ReconcileRidersCommand must be created via NewReconcileRidersCommand constructor",
)

// ReconcileRidersCommand recomputes the availability of every busy or available
// rider. Offline riders are skipped.
type ReconcileRidersCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileRidersCommand creates a parameterless reconciliation command.
func NewReconcileRidersCommand() ReconcileRidersCommand {
	return ReconcileRidersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReconcileRidersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileRidersCommandIsNotConstructed)
}
