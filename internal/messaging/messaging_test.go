package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-site/internal/logger"
	"restaurant-site/internal/models"
)

type sent struct {
	exchange   string
	routingKey string
	msg        amqp091.Publishing
}

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) Publish(_ context.Context, exchange, routingKey string, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{exchange: exchange, routingKey: routingKey, msg: msg})
	return nil
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter("test", &bytes.Buffer{})
}

func TestPublisher_OrderCreated(t *testing.T) {
	sender := &fakeSender{}
	p := NewPublisher(sender, testLogger())

	order := models.Order{
		ID:      3,
		Name:    "A",
		Address: "12 Nile St",
		Items:   []models.OrderItem{{ID: 1, Name: "Mezze", Price: 165, Quantity: 2}},
		Total:   330,
	}
	require.NoError(t, p.OrderCreated(context.Background(), order))

	require.Len(t, sender.sent, 1)
	got := sender.sent[0]
	assert.Equal(t, EventsExchange, got.exchange)
	assert.Equal(t, "order.created", got.routingKey)
	assert.Equal(t, amqp091.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "application/json", got.msg.ContentType)

	var body models.OrderMessage
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, 3, body.OrderID)
	assert.Equal(t, 330, body.Total)
}

func TestPublisher_ReservationCreated(t *testing.T) {
	sender := &fakeSender{}
	p := NewPublisher(sender, testLogger())

	require.NoError(t, p.ReservationCreated(context.Background(), models.Reservation{ID: 1, Name: "A", Guests: "2"}))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "reservation.created", sender.sent[0].routingKey)
}

func TestPublisher_StatusChanged(t *testing.T) {
	sender := &fakeSender{}
	p := NewPublisher(sender, testLogger())

	msg := models.NewStatusUpdateMessage(models.EntityReservation, 1, "confirmed", "cancelled", "web")
	require.NoError(t, p.StatusChanged(context.Background(), msg))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, NotificationsExchange, sender.sent[0].exchange)
	assert.Equal(t, "", sender.sent[0].routingKey)
	assert.Equal(t, amqp091.Transient, sender.sent[0].msg.DeliveryMode)
}

func TestPublisher_SendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("channel closed")}
	p := NewPublisher(sender, testLogger())

	err := p.OrderCreated(context.Background(), models.Order{ID: 1})
	assert.Error(t, err)
}

type fakeAck struct {
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (f *fakeAck) Ack(tag uint64, _ bool) error {
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeAck) Nack(tag uint64, _ bool, requeue bool) error {
	f.nacked = append(f.nacked, tag)
	f.requeue = append(f.requeue, requeue)
	return nil
}

func (f *fakeAck) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func TestConsumer_ProcessMessage(t *testing.T) {
	c := &Consumer{logger: testLogger(), queueName: NotificationsQueue}
	ack := &fakeAck{}

	ok := func(context.Context, []byte) error { return nil }
	fail := func(context.Context, []byte) error { return errors.New("bad message") }

	c.processMessage(context.Background(), amqp091.Delivery{Acknowledger: ack, DeliveryTag: 1}, ok)
	c.processMessage(context.Background(), amqp091.Delivery{Acknowledger: ack, DeliveryTag: 2}, fail)
	c.processMessage(context.Background(), amqp091.Delivery{Acknowledger: ack, DeliveryTag: 3, Redelivered: true}, fail)

	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2, 3}, ack.nacked)
	assert.Equal(t, []bool{true, false}, ack.requeue)
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = NopNotifier{}
	assert.NoError(t, n.OrderCreated(context.Background(), models.Order{}))
	assert.NoError(t, n.ReservationCreated(context.Background(), models.Reservation{}))
	assert.NoError(t, n.StatusChanged(context.Background(), nil))
}
