// Package queue_publisher provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the console session.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/cinema-hall-console/internal/queue"
)

// Publisher sends hall events somewhere.  Implementations must not
// block the caller for long and must tolerate a missing broker.
type Publisher interface {
	PublishHallEvent(ctx context.Context, event q.HallEvent) error
}

// Nop discards every event.
type Nop struct{}

// PublishHallEvent implements Publisher.
func (Nop) PublishHallEvent(context.Context, q.HallEvent) error { return nil }

// New returns an AMQP publisher for url, or Nop when url is empty.
func New(url, queueName string, logger *log.Logger) Publisher {
	if url == "" {
		return Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &AMQPPublisher{URL: url, Queue: queueName, Log: logger}
}

// AMQPPublisher publishes each event on its own short-lived connection.
type AMQPPublisher struct {
	URL   string
	Queue string
	Log   *log.Logger
}

// PublishHallEvent publishes event to the configured queue.  The
// function never panics; any error is logged and returned so the
// caller can choose to ignore it.  Messages are marked as persistent.
func (p *AMQPPublisher) PublishHallEvent(ctx context.Context, event q.HallEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(2 * time.Second)})
	if err != nil {
		p.Log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.Log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	if event.OccurredAt == "" {
		event.Stamp(time.Now())
	}
	body, err := json.Marshal(event)
	if err != nil {
		p.Log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Type:         event.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.Log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
