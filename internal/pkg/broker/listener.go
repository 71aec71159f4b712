package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Routing keys published by the marketplace backend when a professional's
// schedule or package catalog changes, e.g. schedule.weekly.changed.
var BindingKeys = []string{"schedule.*.changed", "package.*.changed"}

// Invalidator drops cached data for a professional
type Invalidator interface {
	Invalidate(ctx context.Context, professionalID string) error
}

// ChangeEvent is the message body of a schedule or package change
type ChangeEvent struct {
	ProfessionalID string `json:"professional_id"`
}

var errMalformedEvent = errors.New("malformed change event")

// Listener consumes change events and invalidates the availability cache
type Listener struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	inv      Invalidator
}

// NewListener dials RabbitMQ and opens a channel. Every listener consumes
// from its own queue named after queuePrefix, so each replica sees every event.
func NewListener(url, exchange, queuePrefix string, inv Invalidator) (*Listener, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	return &Listener{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		queue:    instanceQueueName(queuePrefix),
		inv:      inv,
	}, nil
}

// Start declares the topology and consumes in the background until ctx is done
func (l *Listener) Start(ctx context.Context) error {
	if err := retry(ctx, 3, func() error {
		return l.channel.ExchangeDeclare(l.exchange, "topic", true, false, false, false, nil)
	}); err != nil {
		return fmt.Errorf("declare exchange %s: %w", l.exchange, err)
	}

	// exclusive and auto-deleted: the queue lives as long as this connection
	queue, err := l.channel.QueueDeclare(l.queue, false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", l.queue, err)
	}

	for _, key := range BindingKeys {
		if err := l.channel.QueueBind(queue.Name, key, l.exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", queue.Name, key, err)
		}
	}

	if err := l.channel.Qos(10, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	msgs, err := l.channel.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue.Name, err)
	}

	log.Info().
		Str("exchange", l.exchange).
		Str("queue", queue.Name).
		Strs("bindings", BindingKeys).
		Msg("Schedule change listener started")

	go l.consume(ctx, msgs)
	return nil
}

func (l *Listener) consume(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Warn().Msg("Schedule change delivery channel closed")
				return
			}
			l.handle(ctx, msg)
		}
	}
}

// handle acks processed events, requeues transient failures and drops malformed ones
func (l *Listener) handle(ctx context.Context, msg amqp.Delivery) {
	event, err := decodeEvent(msg.Body)
	if err != nil {
		log.Warn().Err(err).Str("routing_key", msg.RoutingKey).Msg("Dropping change event")
		_ = msg.Nack(false, false)
		return
	}

	if err := l.inv.Invalidate(ctx, event.ProfessionalID); err != nil {
		log.Error().Err(err).
			Str("routing_key", msg.RoutingKey).
			Str("professional_id", event.ProfessionalID).
			Msg("Failed to invalidate availability cache")
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}

	log.Debug().
		Str("routing_key", msg.RoutingKey).
		Str("professional_id", event.ProfessionalID).
		Msg("Availability cache invalidated")
	_ = msg.Ack(false)
}

func instanceQueueName(prefix string) string {
	return strings.TrimSuffix(prefix, ".") + "." + uuid.New().String()
}

func decodeEvent(body []byte) (ChangeEvent, error) {
	var event ChangeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return ChangeEvent{}, fmt.Errorf("%w: %v", errMalformedEvent, err)
	}
	event.ProfessionalID = strings.TrimSpace(event.ProfessionalID)
	if event.ProfessionalID == "" {
		return ChangeEvent{}, fmt.Errorf("%w: professional_id is empty", errMalformedEvent)
	}
	return event, nil
}

// Stop closes the channel and the connection
func (l *Listener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}
	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func retry(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("RabbitMQ setup failed, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
	return err
}
