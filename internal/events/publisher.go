// Package events publishes settlement notifications to a message broker.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/mmynk/settleup/internal/models"
)

// DefaultPublishTimeout bounds one publish when no timeout is configured.
const DefaultPublishTimeout = 500 * time.Millisecond

// Publisher sends settlement events.
type Publisher interface {
	PublishSettlement(ctx context.Context, receipt *models.Receipt) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishSettlement(context.Context, *models.Receipt) error { return nil }
func (NopPublisher) Close() error                                            { return nil }

// channel is the subset of *amqp091.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher publishes JSON events to a durable topic exchange.
type AMQPPublisher struct {
	conn       *amqp091.Connection
	channel    channel
	exchange   string
	routingKey string
	timeout    time.Duration
	now        func() time.Time
}

// NewAMQPPublisher dials url and declares the exchange. Each publish waits at
// most timeout; zero means DefaultPublishTimeout.
func NewAMQPPublisher(url, exchange, routingKey string, timeout time.Duration) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, exchange, routingKey)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn
	if timeout > 0 {
		p.timeout = timeout
	}
	return p, nil
}

func newPublisher(ch channel, exchange, routingKey string) (*AMQPPublisher, error) {
	err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{
		channel:    ch,
		exchange:   exchange,
		routingKey: routingKey,
		timeout:    DefaultPublishTimeout,
		now:        time.Now,
	}, nil
}

// PublishSettlement publishes a SettlementComputed event for receipt.
func (p *AMQPPublisher) PublishSettlement(ctx context.Context, receipt *models.Receipt) error {
	msg := NewSettlementComputed(receipt, p.now())
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.DebugContext(ctx, "Published settlement event",
		"receipt_id", receipt.ID,
		"transfers", len(receipt.Transfers),
		"exchange", p.exchange,
		"routing_key", p.routingKey,
	)
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
