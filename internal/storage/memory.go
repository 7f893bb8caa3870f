package storage

import (
	"context"
	"fmt"
	"sync"

	"restaurant-site/internal/models"
)

// MemStorage keeps every entity in process memory. Nothing survives a restart.
// A single mutex serializes writers so identifiers stay unique and increasing
// while handlers run on parallel goroutines.
type MemStorage struct {
	mu sync.RWMutex

	users      map[int]models.User
	userIDs    []int
	nextUserID int

	reservations      map[int]models.Reservation
	reservationIDs    []int
	nextReservationID int

	orders      map[int]models.Order
	orderIDs    []int
	nextOrderID int
}

var _ Storage = (*MemStorage)(nil)

// NewMemStorage creates an empty in-memory store
func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:             make(map[int]models.User),
		nextUserID:        1,
		reservations:      make(map[int]models.Reservation),
		nextReservationID: 1,
		orders:            make(map[int]models.Order),
		nextOrderID:       1,
	}
}

func (s *MemStorage) GetUser(_ context.Context, id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}

func (s *MemStorage) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userIDs {
		if user := s.users[id]; user.Username == username {
			return user, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

func (s *MemStorage) CreateUser(_ context.Context, in models.InsertUser) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextUserID
	s.nextUserID++

	user := models.NewUser(id, in)
	s.users[id] = user
	s.userIDs = append(s.userIDs, id)
	return user, nil
}

func (s *MemStorage) GetReservations(_ context.Context) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Reservation, 0, len(s.reservationIDs))
	for _, id := range s.reservationIDs {
		out = append(out, s.reservations[id])
	}
	return out, nil
}

func (s *MemStorage) GetReservation(_ context.Context, id int) (models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return models.Reservation{}, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	return reservation, nil
}

func (s *MemStorage) CreateReservation(_ context.Context, in models.InsertReservation) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextReservationID
	s.nextReservationID++

	reservation := models.NewReservation(id, in)
	s.reservations[id] = reservation
	s.reservationIDs = append(s.reservationIDs, id)
	return reservation, nil
}

func (s *MemStorage) UpdateReservationStatus(_ context.Context, id int, status string) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return models.Reservation{}, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}

	reservation.Status = status
	s.reservations[id] = reservation
	return reservation, nil
}

func (s *MemStorage) GetOrders(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		out = append(out, s.orders[id].Clone())
	}
	return out, nil
}

func (s *MemStorage) GetOrder(_ context.Context, id int) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return order.Clone(), nil
}

func (s *MemStorage) CreateOrder(_ context.Context, in models.InsertOrder) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextOrderID
	s.nextOrderID++

	order := models.NewOrder(id, in)
	s.orders[id] = order
	s.orderIDs = append(s.orderIDs, id)
	return order.Clone(), nil
}

func (s *MemStorage) UpdateOrderStatus(_ context.Context, id int, status string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}

	order.Status = status
	s.orders[id] = order
	return order.Clone(), nil
}
