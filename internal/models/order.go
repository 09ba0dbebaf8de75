package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Order statuses. Transitions only move forward through the fulfilment
// chain; cancellation is allowed from any non-terminal status.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

var orderTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderDelivered, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionOrder reports whether an order may move from one status to
// another.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a placed order owned by one user.
type Order struct {
	BaseModel
	UserID        uuid.UUID   `gorm:"type:uuid;index" json:"user_id"`
	User          *User       `json:"user,omitempty"`
	OrderNumber   string      `gorm:"uniqueIndex" json:"order_number"`
	Status        string      `json:"status"`
	PlacedAt      time.Time   `json:"placed_at"`
	DeliveredAt   *time.Time  `json:"delivered_at"`
	Subtotal      float64     `json:"subtotal"`
	ShippingFee   float64     `json:"shipping_fee"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentMethod string      `json:"payment_method"`
	Notes         string      `json:"notes"`
	Items         []OrderItem `json:"items,omitempty"`
}

// OrderItem is one ordered line.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Category    string     `json:"category"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	LineTotal   float64    `json:"line_total"`
}

// NewOrderNumber builds a human-readable order reference.
func NewOrderNumber(at time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", at.Format("20060102"), uuid.New().String()[:8])
}
