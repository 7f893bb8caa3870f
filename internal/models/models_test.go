package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
		want  float64
	}{
		{name: "empty", items: []OrderItem{}, want: 0},
		{name: "single", items: []OrderItem{{Price: 165, Quantity: 2}}, want: 330},
		{
			name: "several",
			items: []OrderItem{
				{Price: 165, Quantity: 1},
				{Price: 360, Quantity: 2},
				{Price: 45, Quantity: 3},
			},
			want: 1020,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderTotal(tt.items))
		})
	}
}

func TestToInsertOrder_ComputesTotalAndDate(t *testing.T) {
	req := CreateOrderRequest{
		Name:    strPtr("A"),
		Address: strPtr("12 Nile St"),
	}
	items := ToItems([]OrderItemInput{
		{ID: intPtr(1), Name: strPtr("Mezze"), Price: floatPtr(165), Quantity: intPtr(2)},
		{ID: intPtr(3), Name: strPtr("Lamb"), Price: floatPtr(360), Quantity: intPtr(1), Notes: strPtr("medium")},
	})

	now := time.Date(2024, 1, 1, 23, 30, 0, 0, time.FixedZone("EET", 2*3600))
	in := req.ToInsertOrder(items, now)

	assert.Equal(t, 690.0, in.Total)
	assert.Equal(t, "2024-01-01", in.OrderDate)
	assert.Equal(t, "", items[0].Notes)
	assert.Equal(t, "medium", items[1].Notes)
}

func TestNewOrder_DefaultsAndCopies(t *testing.T) {
	items := []OrderItem{{ID: 1, Name: "Mezze", Price: 165, Quantity: 1}}
	in := InsertOrder{
		Name:      strPtr("A"),
		Items:     items,
		Total:     165,
		OrderDate: "2024-01-01",
	}

	order := NewOrder(4, in)
	items[0].Quantity = 9

	assert.Equal(t, 4, order.ID)
	assert.Equal(t, OrderStatusReceived, order.Status)
	assert.Equal(t, 165, order.Total)
	assert.Equal(t, "", order.SpecialInstructions)
	assert.Equal(t, 1, order.Items[0].Quantity)
}

func TestNewReservation_Confirmed(t *testing.T) {
	r := NewReservation(1, InsertReservation{
		Name:   strPtr("A"),
		Email:  strPtr("a@b.com"),
		Phone:  strPtr("123"),
		Guests: strPtr("2"),
		Date:   strPtr("2024-01-01"),
		Time:   strPtr("19:00"),
	})

	assert.Equal(t, ReservationStatusConfirmed, r.Status)
	assert.Equal(t, "", r.SpecialRequests)
	assert.Equal(t, "19:00", r.Time)
}

func TestCreatedRoutingKey(t *testing.T) {
	assert.Equal(t, "order.created", CreatedRoutingKey(EntityOrder))
	assert.Equal(t, "reservation.created", CreatedRoutingKey(EntityReservation))
}

func TestOrderPriority(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 1},
		{500, 1},
		{501, 5},
		{1000, 5},
		{1001, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OrderPriority(tt.total), "total %d", tt.total)
	}
}
