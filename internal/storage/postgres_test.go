package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-site/internal/models"
)

var (
	reservationCols = []string{"id", "name", "email", "phone", "guests", "date", "time", "special_requests", "status"}
	orderCols       = []string{"id", "name", "email", "phone", "address", "items", "total", "delivery_time", "special_instructions", "status", "order_date"}
)

func setupPostgres(t *testing.T) (sqlmock.Sqlmock, *PostgresStorage) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return mock, NewPostgresStorage(db)
}

func TestPostgresStorage_CreateReservation(t *testing.T) {
	mock, s := setupPostgres(t)

	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs("A", "a@b.com", "123", "2", "2024-01-01", "19:00", "", models.ReservationStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	got, err := s.CreateReservation(context.Background(), sampleReservation("A"))
	require.NoError(t, err)

	assert.Equal(t, 1, got.ID)
	assert.Equal(t, models.ReservationStatusConfirmed, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_GetReservations(t *testing.T) {
	mock, s := setupPostgres(t)

	rows := sqlmock.NewRows(reservationCols).
		AddRow(1, "A", "a@b.com", "123", "2", "2024-01-01", "19:00", "", "confirmed").
		AddRow(2, "B", "b@b.com", "456", "4", "2024-01-02", "20:00", "window", "cancelled")
	mock.ExpectQuery("SELECT (.+) FROM reservations").WillReturnRows(rows)

	got, err := s.GetReservations(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "window", got[1].SpecialRequests)
	assert.Equal(t, "cancelled", got[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_GetReservationsEmpty(t *testing.T) {
	mock, s := setupPostgres(t)

	mock.ExpectQuery("SELECT (.+) FROM reservations").WillReturnRows(sqlmock.NewRows(reservationCols))

	got, err := s.GetReservations(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgresStorage_UpdateReservationStatusNotFound(t *testing.T) {
	mock, s := setupPostgres(t)

	mock.ExpectQuery("UPDATE reservations SET status").
		WithArgs("cancelled", 9).
		WillReturnRows(sqlmock.NewRows(reservationCols))

	_, err := s.UpdateReservationStatus(context.Background(), 9, "cancelled")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_GetReservationDatabaseError(t *testing.T) {
	mock, s := setupPostgres(t)

	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
		WithArgs(3).
		WillReturnError(errors.New("connection reset"))

	_, err := s.GetReservation(context.Background(), 3)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestPostgresStorage_CreateOrder(t *testing.T) {
	mock, s := setupPostgres(t)

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("A", "a@b.com", "123", "12 Nile St", sqlmock.AnyArg(), 330, "asap", "", models.OrderStatusReceived, "2024-01-01").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	got, err := s.CreateOrder(context.Background(), sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, 5, got.ID)
	assert.Equal(t, 330, got.Total)
	assert.Equal(t, models.OrderStatusReceived, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_GetOrder(t *testing.T) {
	mock, s := setupPostgres(t)

	items := []byte(`[{"id":1,"name":"Mezze","price":165,"quantity":2,"notes":""}]`)
	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(5, "A", "a@b.com", "123", "12 Nile St", items, 330, "asap", "", "received", "2024-01-01"))

	got, err := s.GetOrder(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Mezze", got.Items[0].Name)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_UpdateOrderStatus(t *testing.T) {
	mock, s := setupPostgres(t)

	mock.ExpectQuery("UPDATE orders SET status").
		WithArgs("delivered", 5).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(5, "A", "a@b.com", "123", "12 Nile St", []byte(`[]`), 0, "asap", "", "delivered", "2024-01-01"))

	got, err := s.UpdateOrderStatus(context.Background(), 5, "delivered")
	require.NoError(t, err)
	assert.Equal(t, "delivered", got.Status)
	assert.Empty(t, got.Items)

	mock.ExpectQuery("UPDATE orders SET status").
		WithArgs("delivered", 6).
		WillReturnRows(sqlmock.NewRows(orderCols))

	_, err = s.UpdateOrderStatus(context.Background(), 6, "delivered")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPostgresStorage_Users(t *testing.T) {
	mock, s := setupPostgres(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("chef", "secret").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("chef").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}).AddRow(1, "chef", "secret"))

	user, err := s.CreateUser(context.Background(), models.InsertUser{Username: strPtr("chef"), Password: strPtr("secret")})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	found, err := s.GetUserByUsername(context.Background(), "chef")
	require.NoError(t, err)
	assert.Equal(t, user, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}
