package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/catalog"
	"storefront-service/internal/checkout"
	"storefront-service/internal/config"
	"storefront-service/internal/events"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

type CartHandler struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	store     *store.Store
	publisher *events.Publisher
	log       *logrus.Logger
}

func NewCartHandler(cfg *config.Config, cat *catalog.Catalog, st *store.Store, publisher *events.Publisher, log *logrus.Logger) *CartHandler {
	return &CartHandler{cfg: cfg, catalog: cat, store: st, publisher: publisher, log: log}
}

// GetCart handles GET /api/v1/cart
// The spend_bonuses flag previews paying part of the total with bonus
// points, capped at ten percent of the subtotal.
func (h *CartHandler) GetCart(c *gin.Context) {
	spendBonuses, _ := strconv.ParseBool(c.Query("spend_bonuses"))

	var bonusPoints float64
	if user := h.store.User(); user != nil {
		bonusPoints = user.BonusPoints
	}

	items := h.store.Cart()
	quote := checkout.ComputeCartQuote(h.cfg, items, h.store.PromoCode() != "", spendBonuses, bonusPoints)

	c.JSON(http.StatusOK, gin.H{
		"items":     items,
		"count":     h.store.CartCount(),
		"promoCode": h.store.PromoCode(),
		"quote":     quote,
	})
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// AddToCart handles POST /api/v1/cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	product, ok := h.catalog.ProductByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Product not found"},
		})
		return
	}

	h.store.AddToCart(product)
	c.JSON(http.StatusOK, gin.H{
		"items": h.store.Cart(),
		"count": h.store.CartCount(),
	})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity handles PUT /api/v1/cart/items/:id
// A zero quantity removes the line.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	h.store.UpdateQuantity(c.Param("id"), req.Quantity)
	c.JSON(http.StatusOK, gin.H{
		"items": h.store.Cart(),
		"count": h.store.CartCount(),
	})
}

// RemoveFromCart handles DELETE /api/v1/cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	h.store.RemoveFromCart(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"items": h.store.Cart(),
		"count": h.store.CartCount(),
	})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.store.ClearCart()
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Cart cleared"})
}

type promoRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyPromo handles POST /api/v1/cart/promo
func (h *CartHandler) ApplyPromo(c *gin.Context) {
	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	if !h.store.ApplyPromoCode(req.Code) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_PROMO", Message: "Promo code is not valid", Field: "code"},
		})
		return
	}

	code := h.store.PromoCode()
	if h.publisher != nil {
		if err := h.publisher.PublishPromoApplied(c.Request.Context(), code); err != nil {
			h.log.WithError(err).Warn("Failed to publish promo applied event")
		}
	}

	c.JSON(http.StatusOK, gin.H{"promoCode": code})
}

// RemovePromo handles DELETE /api/v1/cart/promo
func (h *CartHandler) RemovePromo(c *gin.Context) {
	h.store.ClearPromoCode()
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Promo code removed"})
}
