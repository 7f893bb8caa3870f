package hoststand

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"restaurant-site/internal/logger"
	"restaurant-site/internal/messaging"
	"restaurant-site/internal/models"
)

// ErrMissingID rejects reservation events that do not name a reservation
var ErrMissingID = errors.New("reservation message has no id")

// Consumer delivers message bodies to a handler until ctx is cancelled.
// *messaging.Consumer implements it.
type Consumer interface {
	StartConsuming(ctx context.Context, handler messaging.MessageHandler) error
	Close() error
}

// Listener prints a seating ticket for every new reservation
type Listener struct {
	consumer Consumer
	logger   *logger.Logger
	out      io.Writer
}

// NewListener creates a host stand listener writing tickets to out
func NewListener(consumer Consumer, log *logger.Logger, out io.Writer) *Listener {
	return &Listener{
		consumer: consumer,
		logger:   log,
		out:      out,
	}
}

// Start consumes reservation events until ctx is cancelled, then closes the consumer
func (l *Listener) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	l.logger.Info("service_started", "Host stand listener started", requestID, nil)

	err := l.consumer.StartConsuming(ctx, l.handleReservation)

	l.logger.Info("graceful_shutdown", "Stopping host stand listener", requestID, nil)
	if closeErr := l.consumer.Close(); closeErr != nil {
		l.logger.Error("consumer_close_failed", "Failed to close consumer", requestID, closeErr, nil)
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (l *Listener) handleReservation(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var msg models.ReservationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		l.logger.Error("message_parsing_failed", "Failed to parse reservation message", requestID, err, nil)
		return fmt.Errorf("failed to parse reservation: %w", err)
	}
	if msg.ReservationID <= 0 {
		l.logger.Error("message_invalid", "Reservation message without id", requestID, ErrMissingID, nil)
		return ErrMissingID
	}

	if _, err := fmt.Fprintln(l.out, formatTicket(&msg)); err != nil {
		return fmt.Errorf("failed to write ticket: %w", err)
	}

	l.logger.Info("reservation_ticket_printed", "Seating ticket printed", requestID, map[string]interface{}{
		"reservation_id": msg.ReservationID,
		"guests":         msg.Guests,
		"date":           msg.Date,
		"time":           msg.Time,
	})
	return nil
}

// formatTicket renders one reservation as a line for the host stand
func formatTicket(msg *models.ReservationMessage) string {
	name := msg.Name
	if name == "" {
		name = "Guest"
	}
	return fmt.Sprintf("🪑 Reservation #%d: %s, party of %s, %s at %s",
		msg.ReservationID, name, msg.Guests, msg.Date, msg.Time)
}
