// Package amqp forwards customer-care events to a durable RabbitMQ queue for
// the care team's tooling.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"medshop/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue receives care events when no queue is configured.
const DefaultQueue = "customer_care.events"

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type CarePublisher struct {
	conn  *amqp.Connection
	ch    channel
	queue string

	mu sync.Mutex
}

// Dial connects to url and declares queue.
func Dial(url, queue string) (*CarePublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := newCarePublisher(ch, queue)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newCarePublisher(ch channel, queue string) (*CarePublisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return &CarePublisher{ch: ch, queue: queue}, nil
}

// Publish sends event as a persistent JSON message. amqp channels are not
// safe for concurrent publishing, so calls are serialized.
func (p *CarePublisher) Publish(ctx context.Context, event ports.CareEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode care event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(event.Kind),
		MessageId:    event.OrderID + ":" + string(event.Kind) + ":" + fmt.Sprint(event.At.UnixNano()),
		Timestamp:    event.At,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s for order %s: %w", event.Kind, event.OrderNumber, err)
	}
	return nil
}

func (p *CarePublisher) Close() error {
	var err error
	if p.ch != nil {
		err = p.ch.Close()
	}
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
