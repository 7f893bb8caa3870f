package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"restaurant-site/internal/models"
)

// PostgresStorage implements Storage on top of a PostgreSQL database
type PostgresStorage struct {
	db *sql.DB
}

var _ Storage = (*PostgresStorage)(nil)

// NewPostgresStorage creates a store over db. The schema comes from the migrations directory.
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *PostgresStorage) GetUser(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, getUserByIDSQL, id).Scan(&user.ID, &user.Username, &user.Password)
	if err != nil {
		return models.User{}, notFound(err, "user %d", id)
	}
	return user, nil
}

func (s *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, getUserByUsernameSQL, username).Scan(&user.ID, &user.Username, &user.Password)
	if err != nil {
		return models.User{}, notFound(err, "user %q", username)
	}
	return user, nil
}

func (s *PostgresStorage) CreateUser(ctx context.Context, in models.InsertUser) (models.User, error) {
	user := models.NewUser(0, in)
	if err := s.db.QueryRowContext(ctx, insertUserSQL, user.Username, user.Password).Scan(&user.ID); err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *PostgresStorage) GetReservations(ctx context.Context) ([]models.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, getReservationsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	reservations := make([]models.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservations: %w", err)
	}
	return reservations, nil
}

func (s *PostgresStorage) GetReservation(ctx context.Context, id int) (models.Reservation, error) {
	reservation, err := scanReservation(s.db.QueryRowContext(ctx, getReservationSQL, id))
	if err != nil {
		return models.Reservation{}, notFound(err, "reservation %d", id)
	}
	return reservation, nil
}

func (s *PostgresStorage) CreateReservation(ctx context.Context, in models.InsertReservation) (models.Reservation, error) {
	reservation := models.NewReservation(0, in)
	err := s.db.QueryRowContext(ctx, insertReservationSQL,
		reservation.Name,
		reservation.Email,
		reservation.Phone,
		reservation.Guests,
		reservation.Date,
		reservation.Time,
		reservation.SpecialRequests,
		reservation.Status,
	).Scan(&reservation.ID)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("failed to insert reservation: %w", err)
	}
	return reservation, nil
}

func (s *PostgresStorage) UpdateReservationStatus(ctx context.Context, id int, status string) (models.Reservation, error) {
	reservation, err := scanReservation(s.db.QueryRowContext(ctx, updateReservationStatusSQL, status, id))
	if err != nil {
		return models.Reservation{}, notFound(err, "reservation %d", id)
	}
	return reservation, nil
}

func (s *PostgresStorage) GetOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, getOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

func (s *PostgresStorage) GetOrder(ctx context.Context, id int) (models.Order, error) {
	order, err := scanOrder(s.db.QueryRowContext(ctx, getOrderSQL, id))
	if err != nil {
		return models.Order{}, notFound(err, "order %d", id)
	}
	return order, nil
}

func (s *PostgresStorage) CreateOrder(ctx context.Context, in models.InsertOrder) (models.Order, error) {
	order := models.NewOrder(0, in)

	items, err := json.Marshal(order.Items)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to marshal order items: %w", err)
	}

	err = s.db.QueryRowContext(ctx, insertOrderSQL,
		order.Name,
		order.Email,
		order.Phone,
		order.Address,
		items,
		order.Total,
		order.DeliveryTime,
		order.SpecialInstructions,
		order.Status,
		order.OrderDate,
	).Scan(&order.ID)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}
	return order, nil
}

func (s *PostgresStorage) UpdateOrderStatus(ctx context.Context, id int, status string) (models.Order, error) {
	order, err := scanOrder(s.db.QueryRowContext(ctx, updateOrderStatusSQL, status, id))
	if err != nil {
		return models.Order{}, notFound(err, "order %d", id)
	}
	return order, nil
}

func scanReservation(row rowScanner) (models.Reservation, error) {
	var r models.Reservation
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Email,
		&r.Phone,
		&r.Guests,
		&r.Date,
		&r.Time,
		&r.SpecialRequests,
		&r.Status,
	)
	return r, err
}

func scanOrder(row rowScanner) (models.Order, error) {
	var (
		o     models.Order
		items []byte
	)
	err := row.Scan(
		&o.ID,
		&o.Name,
		&o.Email,
		&o.Phone,
		&o.Address,
		&items,
		&o.Total,
		&o.DeliveryTime,
		&o.SpecialInstructions,
		&o.Status,
		&o.OrderDate,
	)
	if err != nil {
		return models.Order{}, err
	}

	o.Items = []models.OrderItem{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return models.Order{}, fmt.Errorf("failed to unmarshal order items: %w", err)
		}
	}
	return o, nil
}

// notFound maps sql.ErrNoRows to ErrNotFound and wraps anything else
func notFound(err error, format string, args ...interface{}) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
