package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

type OrdersHandler struct {
	store *store.Store
}

func NewOrdersHandler(st *store.Store) *OrdersHandler {
	return &OrdersHandler{store: st}
}

// ListOrders handles GET /api/v1/orders
// Orders are returned newest first.
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	orders := h.store.Orders()
	views := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": views, "total": len(orders)})
}

// GetOrder handles GET /api/v1/orders/:id
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	order, ok := h.store.OrderByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Order not found"},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": orderView(order)})
}

// orderView decorates an order with its status display name and the
// progress timeline for the status screen.
func orderView(o models.Order) gin.H {
	timeline := []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	}
	reached := 0
	if o.Status != models.OrderStatusCancelled {
		for i, s := range timeline {
			if s == o.Status {
				reached = i
				break
			}
		}
	}

	return gin.H{
		"id":              o.ID,
		"items":           o.Items,
		"status":          o.Status,
		"statusName":      o.Status.DisplayName(),
		"terminal":        models.IsTerminalOrderStatus(o.Status),
		"timelineStep":    reached,
		"total":           o.Total,
		"createdAt":       o.CreatedAt,
		"deliveryAddress": o.DeliveryAddress,
		"trackingNumber":  o.TrackingNumber,
	}
}
