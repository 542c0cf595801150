package rabbitmq

import (
	"time"

	"backoffice/internal/core/ports"
)

// EventMessage is the JSON body of a published change event.
type EventMessage struct {
	Type       string    `json:"type"`
	OrderID    *string   `json:"order_id,omitempty"`
	RiderID    *string   `json:"rider_id,omitempty"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func messageOf(event ports.ChangeEvent) EventMessage {
	msg := EventMessage{
		Type:       string(event.Type),
		Status:     event.Status,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.OrderID != nil {
		id := event.OrderID.String()
		msg.OrderID = &id
	}
	if event.RiderID != nil {
		id := event.RiderID.String()
		msg.RiderID = &id
	}
	return msg
}
