package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Deliverer sends a notification for real (SMTP, file).
type Deliverer interface {
	Notify(ctx context.Context, to, subject, body string) error
}

type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel   Consumer
	Deliverer Deliverer
	Logger    *slog.Logger
}

func NewWorker(ch Consumer, deliverer Deliverer, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		Channel:   ch,
		Deliverer: deliverer,
		Logger:    logger,
	}
}

// Start consumes queueName until ctx is done or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	w.Logger.Info("notification worker started", slog.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("notification worker stopped", slog.String("queue", queueName))
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel for %s closed", queueName)
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks delivered notifications and dead-letters everything else.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	log := w.Logger.With(slog.String("message_id", d.MessageId))

	var payload NotificationPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		log.Error("invalid notification payload", slog.Any("error", err))
		d.Nack(false, false)
		return
	}

	if err := w.Deliverer.Notify(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		log.Warn("notification delivery failed", slog.String("to", payload.To), slog.Any("error", err))
		d.Nack(false, false)
		return
	}

	log.Info("notification delivered", slog.String("to", payload.To))
	d.Ack(false)
}
