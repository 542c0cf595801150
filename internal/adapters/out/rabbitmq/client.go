package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client owns the AMQP connection and the confirm-mode channel events are
// published on.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	acks <-chan amqp.Confirmation
}

// Dial connects to url, declares exchange as a durable topic exchange and puts the
// channel in confirm mode.
func Dial(url, exchange string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 16))

	return &Client{conn: conn, ch: ch, acks: acks}, nil
}

// Publisher returns an EventPublisher bound to the client's channel.
func (c *Client) Publisher(exchange string) *EventPublisher {
	return NewEventPublisher(c.ch, c.acks, exchange)
}

// Close closes the channel, then the connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	var chErr error
	if c.ch != nil {
		chErr = c.ch.Close()
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return err
		}
	}
	return chErr
}
