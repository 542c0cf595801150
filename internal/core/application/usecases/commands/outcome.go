package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/rider"
)

// Messages shown to back-office staff.
const (
	MsgOrderNotPending       = "Pedido ya fue asignado o completado"
	MsgOrderNotFound         = "Pedido no encontrado"
	MsgRiderNotFound         = "Repartidor no encontrado"
	MsgRiderInactive         = "Repartidor inactivo"
	MsgRiderUnavailable      = "Repartidor no disponible"
	MsgOrderAlreadyCancelled = "El pedido ya está cancelado"
	MsgOrderAlreadyDelivered = "No se puede cancelar un pedido entregado"
	MsgOrderStateChanged     = "El pedido cambió de estado, vuelve a intentarlo"
	MsgUnauthorized          = "No tienes permisos para realizar esta acción"
	MsgAssignFailed          = "Error al asignar pedido"
	MsgCancelFailed          = "Error al cancelar pedido"
)

// Outcome is the result handed to the presentation layer for assign and cancel.
// Expected failures never escape as errors; they become Success=false with a
// readable message.
type Outcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// OutcomeOf maps a handler error to an Outcome. Errors without a specific message,
// transient store failures included, get fallback.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	return c.JSON(http.StatusOK, commands.OutcomeOf(err, commands.MsgAssignFailed))
func OutcomeOf(err error, fallback string) Outcome {
	if err == nil {
		return Outcome{Success: true}
	}
	return Outcome{Error: messageOf(err, fallback)}
}

func messageOf(err error, fallback string) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return MsgUnauthorized
	case errors.Is(err, ErrRiderNotFound):
		return MsgRiderNotFound
	case errors.Is(err, ErrOrderNotFound):
		return MsgOrderNotFound
	case errors.Is(err, rider.ErrRiderInactive):
		return MsgRiderInactive
	case errors.Is(err, rider.ErrRiderUnavailable):
		return MsgRiderUnavailable
	case errors.Is(err, order.ErrOrderNotPending):
		return MsgOrderNotPending
	case errors.Is(err, order.ErrOrderAlreadyCancelled):
		return MsgOrderAlreadyCancelled
	case errors.Is(err, order.ErrOrderAlreadyDelivered):
		return MsgOrderAlreadyDelivered
	case errors.Is(err, ErrOrderStateChanged):
		return MsgOrderStateChanged
	default:
		return fallback
	}
}
