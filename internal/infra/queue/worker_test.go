package queue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeAcknowledger records how each delivery was settled.
type fakeAcknowledger struct {
	mu      sync.Mutex
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked = append(a.nacked, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

// MockDeliverer
type MockDeliverer struct {
	mock.Mock
}

func (m *MockDeliverer) Notify(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type fakeConsumer struct {
	msgs chan amqp.Delivery
	err  error
}

func (c *fakeConsumer) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	return c.msgs, c.err
}

// fakePublisher captures published messages.
type fakePublisher struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (p *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	p.exchange, p.key, p.msg = exchange, key, msg
	return p.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func delivery(t *testing.T, ack amqp.Acknowledger, tag uint64, payload any) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, Body: body}
}

func TestWorkerAcksDeliveredNotification(t *testing.T) {
	ack := &fakeAcknowledger{}
	deliverer := new(MockDeliverer)
	deliverer.On("Notify", mock.Anything, "sales@test.com", "Lead Accepted", "Lead 2 has been accepted.").Return(nil)

	w := NewWorker(nil, deliverer, quietLogger())
	w.handle(context.Background(), delivery(t, ack, 1, NotificationPayload{
		To: "sales@test.com", Subject: "Lead Accepted", Body: "Lead 2 has been accepted.",
	}))

	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Empty(t, ack.nacked)
	deliverer.AssertExpectations(t)
}

func TestWorkerDeadLettersFailedDelivery(t *testing.T) {
	ack := &fakeAcknowledger{}
	deliverer := new(MockDeliverer)
	deliverer.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	w := NewWorker(nil, deliverer, quietLogger())
	w.handle(context.Background(), delivery(t, ack, 7, NotificationPayload{To: "sales@test.com"}))

	assert.Empty(t, ack.acked)
	assert.Equal(t, []uint64{7}, ack.nacked)
	assert.Equal(t, []bool{false}, ack.requeue)
}

func TestWorkerRejectsMalformedPayload(t *testing.T) {
	ack := &fakeAcknowledger{}
	deliverer := new(MockDeliverer)

	w := NewWorker(nil, deliverer, quietLogger())
	w.handle(context.Background(), amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: []byte("{not json")})

	assert.Equal(t, []uint64{3}, ack.nacked)
	deliverer.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkerStartStopsOnContextCancel(t *testing.T) {
	ack := &fakeAcknowledger{}
	deliverer := new(MockDeliverer)
	delivered := make(chan struct{})
	deliverer.On("Notify", mock.Anything, "sales@test.com", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(delivered) }).
		Return(nil)

	consumer := &fakeConsumer{msgs: make(chan amqp.Delivery, 1)}
	consumer.msgs <- delivery(t, ack, 1, NotificationPayload{To: "sales@test.com"})

	w := NewWorker(consumer, deliverer, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx, QueueName) }()

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorkerStartReportsClosedChannel(t *testing.T) {
	consumer := &fakeConsumer{msgs: make(chan amqp.Delivery)}
	close(consumer.msgs)

	err := NewWorker(consumer, new(MockDeliverer), quietLogger()).Start(context.Background(), QueueName)
	assert.Error(t, err)
}

func TestWorkerStartReportsConsumeError(t *testing.T) {
	consumer := &fakeConsumer{err: errors.New("channel closed")}

	err := NewWorker(consumer, new(MockDeliverer), quietLogger()).Start(context.Background(), QueueName)
	assert.ErrorContains(t, err, "channel closed")
}

func TestProducerPublishesPersistentJSON(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProducer(pub)

	err := p.Notify(context.Background(), "sales@test.com", "Lead Accepted", "Lead 2 has been accepted.")
	require.NoError(t, err)

	assert.Equal(t, ExchangeName, pub.exchange)
	assert.Equal(t, RoutingKey, pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.NotEmpty(t, pub.msg.MessageId)

	var payload NotificationPayload
	require.NoError(t, json.Unmarshal(pub.msg.Body, &payload))
	assert.Equal(t, "sales@test.com", payload.To)
	assert.Equal(t, "Lead Accepted", payload.Subject)
	assert.Equal(t, "Lead 2 has been accepted.", payload.Body)
}

func TestProducerReportsPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection closed")}

	err := NewProducer(pub).Notify(context.Background(), "a@b.c", "s", "b")
	assert.ErrorContains(t, err, "connection closed")
}
