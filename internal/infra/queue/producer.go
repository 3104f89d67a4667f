package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationPayload is the message body on QueueName.
type NotificationPayload struct {
	To          string    `json:"to"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	RequestedAt time.Time `json:"requested_at"`
}

// Publisher is the subset of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type NotificationProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *NotificationProducer {
	return &NotificationProducer{Ch: ch}
}

// Notify enqueues the notification. Delivery happens in the Worker.
func (p *NotificationProducer) Notify(ctx context.Context, to, subject, body string) error {
	payload := NotificationPayload{
		To:          to,
		Subject:     subject,
		Body:        body,
		RequestedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Timestamp:    payload.RequestedAt,
			Body:         data,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish notification to RabbitMQ: %w", err)
	}

	return nil
}
