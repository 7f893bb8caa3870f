package models

import (
	"fmt"
	"time"
)

// ChangedByWeb marks status changes made through the HTTP API.
const ChangedByWeb = "web"

// Entity names used in events and routing keys
const (
	EntityReservation = "reservation"
	EntityOrder       = "order"
)

// OrderMessage is published when a new delivery order is received
type OrderMessage struct {
	OrderID      int         `json:"order_id"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Items        []OrderItem `json:"items"`
	Total        int         `json:"total"`
	DeliveryTime string      `json:"delivery_time"`
	OrderDate    string      `json:"order_date"`
	Priority     int         `json:"priority"`
}

// ReservationMessage is published when a table is booked
type ReservationMessage struct {
	ReservationID int    `json:"reservation_id"`
	Name          string `json:"name"`
	Guests        string `json:"guests"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// StatusUpdateMessage represents a status change notification
type StatusUpdateMessage struct {
	Entity    string    `json:"entity"`
	ID        int       `json:"id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderMessage creates an OrderMessage from a stored order
func NewOrderMessage(o Order) *OrderMessage {
	return &OrderMessage{
		OrderID:      o.ID,
		Name:         o.Name,
		Phone:        o.Phone,
		Address:      o.Address,
		Items:        CloneItems(o.Items),
		Total:        o.Total,
		DeliveryTime: o.DeliveryTime,
		OrderDate:    o.OrderDate,
		Priority:     OrderPriority(o.Total),
	}
}

// NewReservationMessage creates a ReservationMessage from a stored reservation
func NewReservationMessage(r Reservation) *ReservationMessage {
	return &ReservationMessage{
		ReservationID: r.ID,
		Name:          r.Name,
		Guests:        r.Guests,
		Date:          r.Date,
		Time:          r.Time,
	}
}

// NewStatusUpdateMessage creates a StatusUpdateMessage stamped with the current time
func NewStatusUpdateMessage(entity string, id int, oldStatus, newStatus, changedBy string) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		Entity:    entity,
		ID:        id,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Timestamp: time.Now().UTC(),
	}
}

// CreatedRoutingKey returns the routing key for a newly created entity
func CreatedRoutingKey(entity string) string {
	return fmt.Sprintf("%s.created", entity)
}
