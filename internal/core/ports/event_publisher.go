package ports

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/kernel"
)

// EventType names a change event. The value doubles as the routing key.
type EventType string

const (
	EventOrderAssigned      EventType = "order.assigned"
	EventOrderCancelled     EventType = "order.cancelled"
	EventRiderStatusChanged EventType = "rider.status_changed"
)

// ChangeEvent tells read-side consumers which record changed so they can re-fetch it.
type ChangeEvent struct {
	Type       EventType
	OrderID    *kernel.UUID
	RiderID    *kernel.UUID
	Status     string
	OccurredAt time.Time
}

// EventPublisher delivers change events to the pub/sub feed.
// Callers treat publication as best-effort: a returned error is logged, never
// propagated to the workflow outcome.
type EventPublisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}
