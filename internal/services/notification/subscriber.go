package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"restaurant-site/internal/logger"
	"restaurant-site/internal/messaging"
	"restaurant-site/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// Consumer delivers message bodies to a handler until ctx is cancelled.
// *messaging.Consumer implements it.
type Consumer interface {
	StartConsuming(ctx context.Context, handler messaging.MessageHandler) error
	Close() error
}

// Subscriber prints reservation and order status changes as they happen
type Subscriber struct {
	consumer Consumer
	logger   *logger.Logger
	out      io.Writer
}

// NewSubscriber creates a new notification subscriber writing to out
func NewSubscriber(consumer Consumer, log *logger.Logger, out io.Writer) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		out:      out,
	}
}

// Start consumes notifications until ctx is cancelled, then closes the consumer
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	err := s.consumer.StartConsuming(ctx, s.handleNotification)

	s.logger.Info("graceful_shutdown", "Stopping notification subscriber", requestID, nil)
	if closeErr := s.consumer.Close(); closeErr != nil {
		s.logger.Error("consumer_close_failed", "Failed to close consumer", requestID, closeErr, nil)
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleNotification processes one status update message
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var update models.StatusUpdateMessage
	if err := json.Unmarshal(body, &update); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	s.logger.Debug("notification_received", "Received status update notification", requestID, map[string]interface{}{
		"entity":     update.Entity,
		"id":         update.ID,
		"new_status": update.NewStatus,
		"changed_by": update.ChangedBy,
	})

	if _, err := fmt.Fprintln(s.out, formatNotification(&update)); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}

	s.logger.Info("notification_displayed", "Notification displayed to user", requestID, map[string]interface{}{
		"entity":     update.Entity,
		"id":         update.ID,
		"old_status": update.OldStatus,
		"new_status": update.NewStatus,
		"timestamp":  update.Timestamp.Format(timestampLayout),
	})
	return nil
}

// formatNotification creates a human readable line for a status update
func formatNotification(update *models.StatusUpdateMessage) string {
	timestamp := update.Timestamp.Format(timestampLayout)
	subject := fmt.Sprintf("%s #%d", entityLabel(update.Entity), update.ID)

	switch update.Entity {
	case models.EntityReservation:
		switch update.NewStatus {
		case "cancelled":
			return fmt.Sprintf("❌ [%s] %s has been cancelled.", timestamp, subject)
		case "seated":
			return fmt.Sprintf("🍽️ [%s] %s has been seated. Enjoy your meal!", timestamp, subject)
		case "completed":
			return fmt.Sprintf("🎉 [%s] %s is complete. Thank you for dining with us.", timestamp, subject)
		}
	case models.EntityOrder:
		switch update.NewStatus {
		case "cooking", "preparing":
			return fmt.Sprintf("🍳 [%s] %s is now being prepared.", timestamp, subject)
		case "ready":
			return fmt.Sprintf("✅ [%s] %s is ready for delivery!", timestamp, subject)
		case "delivering", "out_for_delivery":
			return fmt.Sprintf("🛵 [%s] %s is on its way.", timestamp, subject)
		case "delivered", "completed":
			return fmt.Sprintf("🎉 [%s] %s has been delivered! Thank you for your order.", timestamp, subject)
		case "cancelled":
			return fmt.Sprintf("❌ [%s] %s has been cancelled.", timestamp, subject)
		}
	}

	return fmt.Sprintf("📋 [%s] %s status changed from '%s' to '%s' by %s.",
		timestamp, subject, update.OldStatus, update.NewStatus, update.ChangedBy)
}

func entityLabel(entity string) string {
	if entity == "" {
		return "Item"
	}
	return strings.ToUpper(entity[:1]) + entity[1:]
}
