package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/checkout"
	"storefront-service/internal/models"
)

type CheckoutHandler struct {
	service *checkout.Service
}

func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Begin handles POST /api/v1/checkout
func (h *CheckoutHandler) Begin(c *gin.Context) {
	session, err := h.service.Begin()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "quote": h.service.Quote()})
}

// GetSession handles GET /api/v1/checkout
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session": h.service.Session(), "quote": h.service.Quote()})
}

type contactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SubmitContact handles POST /api/v1/checkout/contact
func (h *CheckoutHandler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	session, err := h.service.SubmitContact(req.Name, req.Phone)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

type deliveryRequest struct {
	Method        checkout.DeliveryMethod `json:"method" binding:"required"`
	Address       string                  `json:"address"`
	PickupPointID string                  `json:"pickupPointId"`
}

// SubmitDelivery handles POST /api/v1/checkout/delivery
func (h *CheckoutHandler) SubmitDelivery(c *gin.Context) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	session, err := h.service.SubmitDelivery(req.Method, req.Address, req.PickupPointID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "quote": h.service.Quote()})
}

// Back handles POST /api/v1/checkout/back
func (h *CheckoutHandler) Back(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session": h.service.Back()})
}

type submitRequest struct {
	PaymentMethod checkout.PaymentMethod `json:"paymentMethod"`
}

// Submit handles POST /api/v1/checkout/submit
// Blocks for the simulated processing delay, then returns the new order.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	order, err := h.service.Submit(c.Request.Context(), req.PaymentMethod)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (h *CheckoutHandler) writeError(c *gin.Context, err error) {
	status := http.StatusUnprocessableEntity
	code := "CHECKOUT_ERROR"

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		code = "EMPTY_CART"
	case errors.Is(err, checkout.ErrInvalidContact), errors.Is(err, checkout.ErrInvalidAddress),
		errors.Is(err, checkout.ErrNoPickupPoint), errors.Is(err, checkout.ErrUnknownPickupPoint):
		code = "VALIDATION_ERROR"
	case errors.Is(err, checkout.ErrWrongStep):
		status = http.StatusConflict
		code = "WRONG_STEP"
	case errors.Is(err, checkout.ErrAlreadyProcessing):
		status = http.StatusConflict
		code = "ALREADY_PROCESSING"
	}

	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error:   models.Error{Code: code, Message: err.Error()},
	})
}
