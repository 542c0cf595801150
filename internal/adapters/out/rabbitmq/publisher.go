// Package rabbitmq publishes back-office change events to a durable topic exchange.
// The routing key of every message is its event type, so consumers bind with
// patterns such as "order.*" or "rider.status_changed".
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"backoffice/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPublishNacked is returned when the broker refuses a message.
var ErrPublishNacked = errors.New("publish NACK from broker")

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	GetNextPublishSeqNo() uint64
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// EventPublisher implements ports.EventPublisher over an AMQP channel in confirm
// mode. Every publish waits for the confirmation carrying its own delivery tag;
// confirmations nobody waits for any more are dropped.
type EventPublisher struct {
	ch       Channel
	exchange string
	confirm  bool

	// mu orders sequence number lookups with the publishes they belong to.
	mu sync.Mutex

	pendingMu sync.Mutex
	pending   map[uint64]chan amqp.Confirmation
	closed    bool
}

// NewEventPublisher creates a publisher on an already configured channel. acks is
// the channel registered with NotifyPublish and is drained by the publisher from
// then on; a nil acks publishes without waiting for confirmations.
func NewEventPublisher(ch Channel, acks <-chan amqp.Confirmation, exchange string) *EventPublisher {
	p := &EventPublisher{
		ch:       ch,
		exchange: exchange,
		confirm:  acks != nil,
		pending:  make(map[uint64]chan amqp.Confirmation),
	}
	if acks != nil {
		go p.dispatch(acks)
	}
	return p
}

// Publish sends event as a persistent JSON message routed by its type.
func (p *EventPublisher) Publish(ctx context.Context, event ports.ChangeEvent) error {
	body, err := json.Marshal(messageOf(event))
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	p.mu.Lock()
	var (
		tag  uint64
		wait <-chan amqp.Confirmation
	)
	if p.confirm {
		tag = p.ch.GetNextPublishSeqNo()
		wait = p.register(tag)
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		Headers: amqp.Table{
			"x-source": "backoffice",
		},
		Body: body,
	})
	p.mu.Unlock()

	if err != nil {
		p.forget(tag)
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}

	if !p.confirm {
		return nil
	}

	select {
	case conf, ok := <-wait:
		if !ok {
			return amqp.ErrClosed
		}
		if !conf.Ack {
			return ErrPublishNacked
		}
		return nil
	case <-ctx.Done():
		p.forget(tag)
		return ctx.Err()
	}
}

func (p *EventPublisher) register(tag uint64) <-chan amqp.Confirmation {
	wait := make(chan amqp.Confirmation, 1)

	p.pendingMu.Lock()
	defer p.pendingMu.Unlock()

	if p.closed {
		close(wait)
		return wait
	}
	p.pending[tag] = wait
	return wait
}

func (p *EventPublisher) forget(tag uint64) {
	p.pendingMu.Lock()
	delete(p.pending, tag)
	p.pendingMu.Unlock()
}

// dispatch hands each confirmation to the publish waiting for its tag until acks
// is closed, then fails every remaining wait.
func (p *EventPublisher) dispatch(acks <-chan amqp.Confirmation) {
	for conf := range acks {
		p.pendingMu.Lock()
		wait, ok := p.pending[conf.DeliveryTag]
		delete(p.pending, conf.DeliveryTag)
		p.pendingMu.Unlock()

		if ok {
			wait <- conf
		}
	}

	p.pendingMu.Lock()
	defer p.pendingMu.Unlock()

	p.closed = true
	for tag, wait := range p.pending {
		close(wait)
		delete(p.pending, tag)
	}
}
