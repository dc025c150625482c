package handlers

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

type CallbackHandler struct {
	log *logrus.Logger
}

func NewCallbackHandler(log *logrus.Logger) *CallbackHandler {
	return &CallbackHandler{log: log}
}

type callbackRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// RequestCallback handles POST /api/v1/callback
// The form needs a non-empty name and a phone with at least 11 digits.
// No operator is dialed; the request is only logged and acknowledged.
func (h *CallbackHandler) RequestCallback(c *gin.Context) {
	var req callbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "Name is required", Field: "name"},
		})
		return
	}
	if digitCount(req.Phone) < 11 {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "Phone must contain at least 11 digits", Field: "phone"},
		})
		return
	}

	requestID := uuid.New().String()
	h.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"name":       req.Name,
	}).Info("Callback requested")

	c.JSON(http.StatusCreated, gin.H{
		"requestId": requestID,
		"message":   "Мы перезвоним вам в течение 15 минут",
	})
}

func digitCount(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}
