package models

import (
	"math"
	"time"
)

// OrderStatusReceived is assigned to every new order
const OrderStatusReceived = "received"

// OrderDateLayout is the calendar date format stamped on new orders
const OrderDateLayout = "2006-01-02"

// OrderItem represents a menu item in an order
type OrderItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity" validate:"min=1"`
	Notes    string  `json:"notes"`
}

// OrderItemInput is an item as submitted by a client; required fields are
// pointers so a missing key is told apart from a zero value.
type OrderItemInput struct {
	ID       *int     `json:"id" validate:"required"`
	Name     *string  `json:"name" validate:"required"`
	Price    *float64 `json:"price" validate:"required"`
	Quantity *int     `json:"quantity" validate:"required,min=1"`
	Notes    *string  `json:"notes,omitempty"`
}

// Order represents a delivery order
type Order struct {
	ID                  int         `json:"id" db:"id"`
	Name                string      `json:"name" db:"name"`
	Email               string      `json:"email" db:"email"`
	Phone               string      `json:"phone" db:"phone"`
	Address             string      `json:"address" db:"address"`
	Items               []OrderItem `json:"items" db:"items"`
	Total               int         `json:"total" db:"total"`
	DeliveryTime        string      `json:"deliveryTime" db:"delivery_time"`
	SpecialInstructions string      `json:"specialInstructions" db:"special_instructions"`
	Status              string      `json:"status" db:"status"`
	OrderDate           string      `json:"orderDate" db:"order_date"`
}

// CreateOrderRequest is the body accepted by POST /api/orders.
// A client supplied total, orderDate, id or status is never decoded.
type CreateOrderRequest struct {
	Name                *string           `json:"name"`
	Email               *string           `json:"email"`
	Phone               *string           `json:"phone"`
	Address             *string           `json:"address"`
	Items               *[]OrderItemInput `json:"items"`
	DeliveryTime        *string           `json:"deliveryTime"`
	SpecialInstructions *string           `json:"specialInstructions,omitempty"`
}

// OrderItems wraps the submitted items so they can be validated on their own
type OrderItems struct {
	Items *[]OrderItemInput `json:"items" validate:"required,dive"`
}

// InsertOrder is the creation value handed to storage, with the server
// computed total and orderDate already filled in.
type InsertOrder struct {
	Name                *string     `json:"name" validate:"required"`
	Email               *string     `json:"email" validate:"required"`
	Phone               *string     `json:"phone" validate:"required"`
	Address             *string     `json:"address" validate:"required"`
	Items               []OrderItem `json:"items" validate:"required,dive"`
	Total               float64     `json:"total" validate:"whole"`
	DeliveryTime        *string     `json:"deliveryTime" validate:"required"`
	SpecialInstructions *string     `json:"specialInstructions,omitempty"`
	OrderDate           string      `json:"orderDate" validate:"required,datetime=2006-01-02"`
}

// ToItem converts a validated input item
func (in OrderItemInput) ToItem() OrderItem {
	item := OrderItem{Notes: deref(in.Notes)}
	if in.ID != nil {
		item.ID = *in.ID
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	return item
}

// ToItems converts validated input items
func ToItems(inputs []OrderItemInput) []OrderItem {
	items := make([]OrderItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, in.ToItem())
	}
	return items
}

// OrderTotal sums price * quantity over the items
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// OrderDate formats t as an order date in UTC
func OrderDate(t time.Time) string {
	return t.UTC().Format(OrderDateLayout)
}

// ToInsertOrder assembles the insert value from the request and its validated items
func (r CreateOrderRequest) ToInsertOrder(items []OrderItem, now time.Time) InsertOrder {
	return InsertOrder{
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		Address:             r.Address,
		Items:               items,
		Total:               OrderTotal(items),
		DeliveryTime:        r.DeliveryTime,
		SpecialInstructions: r.SpecialInstructions,
		OrderDate:           OrderDate(now),
	}
}

// NewOrder builds a received Order from a validated insert value
func NewOrder(id int, in InsertOrder) Order {
	return Order{
		ID:                  id,
		Name:                deref(in.Name),
		Email:               deref(in.Email),
		Phone:               deref(in.Phone),
		Address:             deref(in.Address),
		Items:               CloneItems(in.Items),
		Total:               int(math.Round(in.Total)),
		DeliveryTime:        deref(in.DeliveryTime),
		SpecialInstructions: deref(in.SpecialInstructions),
		Status:              OrderStatusReceived,
		OrderDate:           in.OrderDate,
	}
}

// CloneItems copies items so stored orders never share a backing array with callers
func CloneItems(items []OrderItem) []OrderItem {
	out := make([]OrderItem, len(items))
	copy(out, items)
	return out
}

// Clone returns a copy of the order
func (o Order) Clone() Order {
	o.Items = CloneItems(o.Items)
	return o
}

// OrderPriority ranks an order for the kitchen by its total
func OrderPriority(total int) int {
	switch {
	case total > 1000:
		return 10
	case total > 500:
		return 5
	default:
		return 1
	}
}
