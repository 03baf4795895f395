package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"eventhub/internal/domain"
)

// DefaultQueue is the durable queue event notification tasks are published to.
const DefaultQueue = "event-notifications"

// Channel is the subset of *amqp.Channel used by the publisher and worker.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Close() error
}

// Dial connects to RabbitMQ, retrying a few times while the broker starts.
func Dial(url string, logger *slog.Logger) (*amqp.Connection, *amqp.Channel, error) {
	const attempts = 5
	var conn *amqp.Connection
	var err error
	for i := 1; i <= attempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		logger.Warn("failed to connect to RabbitMQ, retrying", "attempt", i, "of", attempts, "err", err)
		if i < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	return conn, ch, nil
}

func declareQueue(ch Channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %q: %w", queue, err)
	}
	return nil
}

// Publisher is a NotificationDispatcher that publishes one persistent JSON task per notification.
type Publisher struct {
	ch     Channel
	queue  string
	logger *slog.Logger
}

var _ domain.NotificationDispatcher = (*Publisher)(nil)

// NewPublisher declares the queue and returns a publisher bound to it.
func NewPublisher(ch Channel, queue string, logger *slog.Logger) (*Publisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	if err := declareQueue(ch, queue); err != nil {
		return nil, err
	}
	return &Publisher{ch: ch, queue: queue, logger: logger}, nil
}

// Dispatch publishes every notification. A failed publish does not stop the rest;
// all failures are returned joined.
func (p *Publisher) Dispatch(ctx context.Context, notifications []domain.EventNotification) error {
	var errs []error
	for _, n := range notifications {
		body, err := json.Marshal(n)
		if err != nil {
			errs = append(errs, fmt.Errorf("marshal notification: %w", err))
			continue
		}
		err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("publish notification for %s: %w", n.RecipientEmail, err))
			continue
		}
	}
	p.logger.DebugContext(ctx, "notification tasks published", "queue", p.queue, "count", len(notifications)-len(errs))
	return errors.Join(errs...)
}

// Worker consumes notification tasks and sends them through the email service.
type Worker struct {
	ch     Channel
	queue  string
	email  domain.EmailService
	logger *slog.Logger
}

// NewWorker declares the queue and sets a prefetch of one task.
func NewWorker(ch Channel, queue string, email domain.EmailService, logger *slog.Logger) (*Worker, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	if err := declareQueue(ch, queue); err != nil {
		return nil, err
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}
	return &Worker{ch: ch, queue: queue, email: email, logger: logger}, nil
}

// Run consumes until ctx is done or the delivery channel closes.
func (w *Worker) Run(ctx context.Context) error {
	deliveries, err := w.ch.Consume(w.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}
	w.logger.InfoContext(ctx, "notifier consuming", "queue", w.queue)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

// handle sends one task. Malformed tasks are dropped; send failures are logged and acked.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var n domain.EventNotification
	if err := json.Unmarshal(d.Body, &n); err != nil {
		w.logger.ErrorContext(ctx, "malformed notification task", "message_id", d.MessageId, "err", err)
		if err := d.Nack(false, false); err != nil {
			w.logger.ErrorContext(ctx, "nack task", "err", err)
		}
		return
	}
	if err := w.email.SendEventNotification(ctx, &n); err != nil {
		w.logger.ErrorContext(ctx, "send event notification", "message_id", d.MessageId, "event_id", n.EventID, "to", n.RecipientEmail, "err", err)
	}
	if err := d.Ack(false); err != nil {
		w.logger.ErrorContext(ctx, "ack task", "err", err)
	}
}
