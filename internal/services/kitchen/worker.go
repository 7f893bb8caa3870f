package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant-site/internal/logger"
	"restaurant-site/internal/messaging"
	"restaurant-site/internal/models"
)

// Order statuses set by the kitchen
const (
	StatusCooking = "cooking"
	StatusReady   = "ready"
)

// StatusUpdater changes an order's status. *order.Service implements it and
// publishes the matching notification.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id int, status, changedBy string) (models.Order, error)
}

// Consumer delivers message bodies to a handler until ctx is cancelled
type Consumer interface {
	StartConsuming(ctx context.Context, handler messaging.MessageHandler) error
	Close() error
}

// Worker takes new orders off the kitchen queue and moves them through
// cooking to ready
type Worker struct {
	name        string
	cookingTime time.Duration
	consumer    Consumer
	orders      StatusUpdater
	logger      *logger.Logger
}

// NewWorker creates a new kitchen worker
func NewWorker(name string, cookingTime time.Duration, consumer Consumer, orders StatusUpdater, log *logger.Logger) *Worker {
	return &Worker{
		name:        name,
		cookingTime: cookingTime,
		consumer:    consumer,
		orders:      orders,
		logger:      log,
	}
}

// Start consumes orders until ctx is cancelled, then closes the consumer
func (w *Worker) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	w.logger.Info("worker_started", fmt.Sprintf("Kitchen worker %s started", w.name), requestID, map[string]interface{}{
		"worker_name":  w.name,
		"cooking_time": w.cookingTime.String(),
	})

	err := w.consumer.StartConsuming(ctx, w.handleMessage)

	w.logger.Info("graceful_shutdown", fmt.Sprintf("Kitchen worker %s stopping", w.name), requestID, nil)
	if closeErr := w.consumer.Close(); closeErr != nil {
		w.logger.Error("consumer_close_failed", "Failed to close consumer", requestID, closeErr, nil)
	}

	if ctx.Err() != nil {
		return nil
	}
	return err
}

// handleMessage processes one order.created message
func (w *Worker) handleMessage(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()
	ctx = logger.WithRequestID(ctx, requestID)

	var msg models.OrderMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		w.logger.Error("message_parsing_failed", "Failed to parse order message", requestID, err, nil)
		return fmt.Errorf("failed to parse message: %w", err)
	}

	w.logger.Debug("order_processing_started", fmt.Sprintf("Processing order %d", msg.OrderID), requestID, map[string]interface{}{
		"order_id":   msg.OrderID,
		"items":      len(msg.Items),
		"total":      msg.Total,
		"priority":   msg.Priority,
		"deliver_at": msg.DeliveryTime,
	})

	return w.processOrder(ctx, &msg, requestID)
}

// processOrder moves an order to cooking, waits the cooking time and marks it ready
func (w *Worker) processOrder(ctx context.Context, msg *models.OrderMessage, requestID string) error {
	if _, err := w.orders.UpdateStatus(ctx, msg.OrderID, StatusCooking, w.name); err != nil {
		return fmt.Errorf("failed to update order status to cooking: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(w.cookingTime):
	}

	if _, err := w.orders.UpdateStatus(ctx, msg.OrderID, StatusReady, w.name); err != nil {
		return fmt.Errorf("failed to update order status to ready: %w", err)
	}

	w.logger.Debug("order_completed", fmt.Sprintf("Order %d is ready", msg.OrderID), requestID, map[string]interface{}{
		"order_id":     msg.OrderID,
		"processed_by": w.name,
	})
	return nil
}
