package commands

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand asks for a non-terminal order to be cancelled with an optional
// free-text reason. Only callers with at least the sub-admin role can build one.
type CancelOrderCommand struct {
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand returns ErrUnauthorized for callers below sub-admin.
// A blank reason is allowed; the order then records the default cancellation note.
func NewCancelOrderCommand(orderID kernel.UUID, caller role.Role, reason string) (CancelOrderCommand, error) {
	if !role.HasPermission(caller, role.SubAdmin) {
		return CancelOrderCommand{}, ErrUnauthorized
	}

	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}
