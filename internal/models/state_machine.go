package models

import "fmt"

// ValidOrderTransitions defines valid state transitions for OrderStatus
// Flow: pending → processing → shipped → delivered
// cancelled can be reached from any non-terminal state
var ValidOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {}, // Terminal state
	OrderStatusCancelled:  {}, // Terminal state
}

// CanTransitionOrderStatus checks if a transition from one order status to another is valid
func CanTransitionOrderStatus(from, to OrderStatus) bool {
	validTransitions, exists := ValidOrderTransitions[from]
	if !exists {
		return false
	}
	for _, validTo := range validTransitions {
		if validTo == to {
			return true
		}
	}
	return false
}

// ValidateOrderStatusTransition returns an error if the transition is invalid
func ValidateOrderStatusTransition(from, to OrderStatus) error {
	if !CanTransitionOrderStatus(from, to) {
		return fmt.Errorf("invalid order status transition from %s to %s", from, to)
	}
	return nil
}

// IsTerminalOrderStatus checks if the order status is a terminal state
func IsTerminalOrderStatus(status OrderStatus) bool {
	return len(ValidOrderTransitions[status]) == 0
}

// DisplayName returns a human-readable name for the order status
func (s OrderStatus) DisplayName() string {
	switch s {
	case OrderStatusPending:
		return "Принят"
	case OrderStatusProcessing:
		return "Собираем"
	case OrderStatusShipped:
		return "В пути"
	case OrderStatusDelivered:
		return "Доставлен"
	case OrderStatusCancelled:
		return "Отменён"
	default:
		return string(s)
	}
}
