package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"restaurant-site/internal/logger"
	"restaurant-site/internal/models"
)

// Notifier announces reservation and order events to the rest of the restaurant
type Notifier interface {
	ReservationCreated(ctx context.Context, reservation models.Reservation) error
	OrderCreated(ctx context.Context, order models.Order) error
	StatusChanged(ctx context.Context, msg *models.StatusUpdateMessage) error
}

// Sender delivers a single AMQP publishing. *Connection implements it.
type Sender interface {
	Publish(ctx context.Context, exchange, routingKey string, msg amqp091.Publishing) error
}

// Publisher handles message publishing to RabbitMQ
type Publisher struct {
	sender  Sender
	logger  *logger.Logger
	timeout time.Duration
}

var _ Notifier = (*Publisher)(nil)

// NewPublisher creates a new message publisher
func NewPublisher(sender Sender, log *logger.Logger) *Publisher {
	return &Publisher{
		sender:  sender,
		logger:  log,
		timeout: 10 * time.Second,
	}
}

// ReservationCreated publishes a new booking for the host stand
func (p *Publisher) ReservationCreated(ctx context.Context, reservation models.Reservation) error {
	msg := models.NewReservationMessage(reservation)
	return p.publishMessage(ctx, EventsExchange, models.CreatedRoutingKey(models.EntityReservation), msg, true)
}

// OrderCreated publishes a new delivery order for the kitchen
func (p *Publisher) OrderCreated(ctx context.Context, order models.Order) error {
	msg := models.NewOrderMessage(order)
	return p.publishMessage(ctx, EventsExchange, models.CreatedRoutingKey(models.EntityOrder), msg, true)
}

// StatusChanged publishes a status update to the notifications fanout exchange
func (p *Publisher) StatusChanged(ctx context.Context, msg *models.StatusUpdateMessage) error {
	return p.publishMessage(ctx, NotificationsExchange, "", msg, false)
}

func (p *Publisher) publishMessage(ctx context.Context, exchange, routingKey string, message interface{}, persistent bool) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	deliveryMode := amqp091.Transient
	if persistent {
		deliveryMode = amqp091.Persistent
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: deliveryMode,
		Timestamp:    time.Now().UTC(),
		Headers: amqp091.Table{
			"x-source": "restaurant-site",
		},
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.sender.Publish(ctx, exchange, routingKey, publishing); err != nil {
		p.logger.Error("message_publish_failed",
			fmt.Sprintf("Failed to publish message to exchange %s", exchange),
			"", err, map[string]interface{}{
				"exchange":    exchange,
				"routing_key": routingKey,
			})
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("message_published",
		fmt.Sprintf("Published message to exchange %s", exchange),
		"", map[string]interface{}{
			"exchange":     exchange,
			"routing_key":  routingKey,
			"message_size": len(body),
		})

	return nil
}

// NopNotifier drops every event; used when RabbitMQ is not configured
type NopNotifier struct{}

var _ Notifier = NopNotifier{}

func (NopNotifier) ReservationCreated(context.Context, models.Reservation) error { return nil }

func (NopNotifier) OrderCreated(context.Context, models.Order) error { return nil }

func (NopNotifier) StatusChanged(context.Context, *models.StatusUpdateMessage) error { return nil }
