package reservation

import (
	"context"
	"fmt"

	"restaurant-site/internal/logger"
	"restaurant-site/internal/messaging"
	"restaurant-site/internal/models"
	"restaurant-site/internal/storage"
	"restaurant-site/internal/validation"
)

// Service implements the reservation use cases on top of a ReservationStore
type Service struct {
	store    storage.ReservationStore
	notifier messaging.Notifier
	logger   *logger.Logger
}

// NewService creates a reservation service
func NewService(store storage.ReservationStore, notifier messaging.Notifier, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   log,
	}
}

func (s *Service) List(ctx context.Context) ([]models.Reservation, error) {
	return s.store.GetReservations(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (models.Reservation, error) {
	return s.store.GetReservation(ctx, id)
}

// Create validates in and stores a confirmed reservation. Validation
// failures are returned as *validation.ValidationError.
func (s *Service) Create(ctx context.Context, in models.InsertReservation) (models.Reservation, error) {
	if err := validation.Validate(in); err != nil {
		return models.Reservation{}, err
	}

	created, err := s.store.CreateReservation(ctx, in)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("failed to store reservation: %w", err)
	}

	requestID := logger.RequestID(ctx)
	s.logger.Info("reservation_created", "Reservation created", requestID, map[string]interface{}{
		"reservation_id": created.ID,
		"date":           created.Date,
		"time":           created.Time,
		"guests":         created.Guests,
	})

	if err := s.notifier.ReservationCreated(ctx, created); err != nil {
		s.logger.Error("reservation_publish_failed", "Failed to publish reservation event", requestID, err, map[string]interface{}{
			"reservation_id": created.ID,
		})
	}

	return created, nil
}

// UpdateStatus sets the status of an existing reservation. An unknown id
// yields storage.ErrNotFound and changes nothing.
func (s *Service) UpdateStatus(ctx context.Context, id int, status string) (models.Reservation, error) {
	current, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return models.Reservation{}, err
	}

	updated, err := s.store.UpdateReservationStatus(ctx, id, status)
	if err != nil {
		return models.Reservation{}, err
	}

	requestID := logger.RequestID(ctx)
	s.logger.Info("reservation_status_updated", "Reservation status updated", requestID, map[string]interface{}{
		"reservation_id": id,
		"old_status":     current.Status,
		"new_status":     updated.Status,
	})

	msg := models.NewStatusUpdateMessage(models.EntityReservation, id, current.Status, updated.Status, models.ChangedByWeb)
	if err := s.notifier.StatusChanged(ctx, msg); err != nil {
		s.logger.Error("status_publish_failed", "Failed to publish status update", requestID, err, map[string]interface{}{
			"reservation_id": id,
		})
	}

	return updated, nil
}
