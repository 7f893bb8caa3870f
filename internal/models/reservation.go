package models

// ReservationStatusConfirmed is assigned to every new reservation
const ReservationStatusConfirmed = "confirmed"

// Reservation represents a table booking
type Reservation struct {
	ID              int    `json:"id" db:"id"`
	Name            string `json:"name" db:"name"`
	Email           string `json:"email" db:"email"`
	Phone           string `json:"phone" db:"phone"`
	Guests          string `json:"guests" db:"guests"`
	Date            string `json:"date" db:"date"`
	Time            string `json:"time" db:"time"`
	SpecialRequests string `json:"specialRequests" db:"special_requests"`
	Status          string `json:"status" db:"status"`
}

// InsertReservation is the creation payload. id and status are not part of it,
// so any such keys in a request body are dropped while decoding.
type InsertReservation struct {
	Name            *string `json:"name" validate:"required"`
	Email           *string `json:"email" validate:"required"`
	Phone           *string `json:"phone" validate:"required"`
	Guests          *string `json:"guests" validate:"required"`
	Date            *string `json:"date" validate:"required"`
	Time            *string `json:"time" validate:"required"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// NewReservation builds a confirmed Reservation from a validated insert value
func NewReservation(id int, in InsertReservation) Reservation {
	return Reservation{
		ID:              id,
		Name:            deref(in.Name),
		Email:           deref(in.Email),
		Phone:           deref(in.Phone),
		Guests:          deref(in.Guests),
		Date:            deref(in.Date),
		Time:            deref(in.Time),
		SpecialRequests: deref(in.SpecialRequests),
		Status:          ReservationStatusConfirmed,
	}
}
