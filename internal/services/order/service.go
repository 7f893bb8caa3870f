package order

import (
	"context"
	"fmt"
	"time"

	"restaurant-site/internal/logger"
	"restaurant-site/internal/messaging"
	"restaurant-site/internal/models"
	"restaurant-site/internal/storage"
	"restaurant-site/internal/validation"
)

// Service implements the order use cases on top of an OrderStore
type Service struct {
	store    storage.OrderStore
	notifier messaging.Notifier
	logger   *logger.Logger
	now      func() time.Time
}

// NewService creates an order service
func NewService(store storage.OrderStore, notifier messaging.Notifier, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	return s.store.GetOrders(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (models.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// Prepare validates the submitted items, computes the total and order date,
// and validates the assembled order. Item issues are reported on their own.
func (s *Service) Prepare(req models.CreateOrderRequest) (models.InsertOrder, error) {
	if err := validation.Validate(models.OrderItems{Items: req.Items}); err != nil {
		return models.InsertOrder{}, err
	}

	in := req.ToInsertOrder(models.ToItems(*req.Items), s.now())
	if err := validation.Validate(in); err != nil {
		return models.InsertOrder{}, err
	}
	return in, nil
}

// Create stores a received order from an insert value built by Prepare.
// Client supplied totals are never used.
func (s *Service) Create(ctx context.Context, in models.InsertOrder) (models.Order, error) {
	if err := validation.Validate(in); err != nil {
		return models.Order{}, err
	}

	created, err := s.store.CreateOrder(ctx, in)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to store order: %w", err)
	}

	requestID := logger.RequestID(ctx)
	s.logger.Info("order_created", "Order created", requestID, map[string]interface{}{
		"order_id":    created.ID,
		"item_count":  len(created.Items),
		"total":       created.Total,
		"order_date":  created.OrderDate,
		"customer":    created.Name,
		"delivery_at": created.DeliveryTime,
	})

	if err := s.notifier.OrderCreated(ctx, created); err != nil {
		s.logger.Error("order_publish_failed", "Failed to publish order event", requestID, err, map[string]interface{}{
			"order_id": created.ID,
		})
	}

	return created, nil
}

// UpdateStatus sets the status of an existing order on behalf of changedBy.
// An unknown id yields storage.ErrNotFound and changes nothing.
func (s *Service) UpdateStatus(ctx context.Context, id int, status, changedBy string) (models.Order, error) {
	current, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	updated, err := s.store.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return models.Order{}, err
	}

	requestID := logger.RequestID(ctx)
	s.logger.Info("order_status_updated", "Order status updated", requestID, map[string]interface{}{
		"order_id":   id,
		"old_status": current.Status,
		"new_status": updated.Status,
		"changed_by": changedBy,
	})

	msg := models.NewStatusUpdateMessage(models.EntityOrder, id, current.Status, updated.Status, changedBy)
	if err := s.notifier.StatusChanged(ctx, msg); err != nil {
		s.logger.Error("status_publish_failed", "Failed to publish status update", requestID, err, map[string]interface{}{
			"order_id": id,
		})
	}

	return updated, nil
}
