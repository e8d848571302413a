package domain

import "time"

// OrderType distinguishes how the customer receives the order.
type OrderType string

const (
	OrderDineIn   OrderType = "dine-in"
	OrderTakeAway OrderType = "take-away"
)

// PaymentMethod is the tender selected at checkout. No charge is actually
// processed; the value is recorded for the receipt only.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// OrderStatus represents the lifecycle state of a placed order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a placed order. Immutable once created except for Status.
//
// Total is always the pre-tax subtotal. Tax is applied at presentation time
// only and never stored, so persisted orders round-trip without drift.
type Order struct {
	ID            string        `json:"id"`
	Items         []CartItem    `json:"items"`
	Total         float64       `json:"total"`
	OrderType     OrderType     `json:"orderType"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	SelectedTime  time.Time     `json:"selectedTime"`
	Status        OrderStatus   `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UserEmail     string        `json:"userEmail"`
}
