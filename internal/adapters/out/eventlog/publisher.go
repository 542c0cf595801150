// Package eventlog is the change-event publisher used when no message broker is
// configured. It writes every event to the log.
package eventlog

import (
	"context"
	"log/slog"

	"backoffice/internal/core/ports"
)

// Publisher implements ports.EventPublisher by logging events at INFO.
type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With("component", "events")}
}

// Publish never fails.
func (p *Publisher) Publish(ctx context.Context, event ports.ChangeEvent) error {
	attrs := []any{
		"type", string(event.Type),
		"status", event.Status,
		"occurred_at", event.OccurredAt,
	}
	if event.OrderID != nil {
		attrs = append(attrs, "order_id", event.OrderID.String())
	}
	if event.RiderID != nil {
		attrs = append(attrs, "rider_id", event.RiderID.String())
	}
	p.logger.InfoContext(ctx, "change event", attrs...)
	return nil
}
