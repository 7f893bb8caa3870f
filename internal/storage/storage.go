package storage

import (
	"context"
	"errors"

	"restaurant-site/internal/models"
)

// ErrNotFound is returned when no entity has the requested identifier
var ErrNotFound = errors.New("not found")

// UserStore holds accounts
type UserStore interface {
	GetUser(ctx context.Context, id int) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, in models.InsertUser) (models.User, error)
}

// ReservationStore holds table reservations
type ReservationStore interface {
	GetReservations(ctx context.Context) ([]models.Reservation, error)
	GetReservation(ctx context.Context, id int) (models.Reservation, error)
	CreateReservation(ctx context.Context, in models.InsertReservation) (models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int, status string) (models.Reservation, error)
}

// OrderStore holds delivery orders
type OrderStore interface {
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int) (models.Order, error)
	CreateOrder(ctx context.Context, in models.InsertOrder) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status string) (models.Order, error)
}

// Storage is the full repository contract the API layer depends on
type Storage interface {
	UserStore
	ReservationStore
	OrderStore
}
