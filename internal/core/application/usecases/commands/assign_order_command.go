package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand asks for a pending order to be given to a rider.
// Only callers with at least the sub-admin role can build one.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(orderID, riderID, caller.Role())
//	if err != nil {
//	    return err // ErrUnauthorized or an invalid id
//	}
//	err = handler.Handle(ctx, cmd)
type AssignOrderCommand struct {
	orderID kernel.UUID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand checks the caller's role before anything else, then the
// identifiers. Returns ErrUnauthorized for callers below sub-admin.
func NewAssignOrderCommand(orderID, riderID kernel.UUID, caller role.Role) (AssignOrderCommand, error) {
	if !role.HasPermission(caller, role.SubAdmin) {
		return AssignOrderCommand{}, ErrUnauthorized
	}

	if err := errors.Join(orderID.Validate(), riderID.Validate()); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID: orderID,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignOrderCommand) RiderID() kernel.UUID {
	return c.riderID
}
