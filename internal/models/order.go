package models

import (
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order accepted, awaiting assembly
	OrderStatusProcessing OrderStatus = "processing" // Being picked/packed
	OrderStatusShipped    OrderStatus = "shipped"    // Handed to courier
	OrderStatusDelivered  OrderStatus = "delivered"  // Successfully delivered
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before delivery
)

// Order owns a snapshot of the cart at time of purchase. It is created
// exactly once per completed checkout; the client never mutates its status.
type Order struct {
	ID              string      `json:"id"`
	Items           []CartItem  `json:"items"`
	Status          OrderStatus `json:"status"`
	Total           float64     `json:"total"`
	CreatedAt       time.Time   `json:"createdAt"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty"`
	TrackingNumber  string      `json:"trackingNumber,omitempty"`
}

// NewOrderID creates a time-based order token.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d", now.UnixMilli())
}
