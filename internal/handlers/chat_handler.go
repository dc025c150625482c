package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/chat"
	"storefront-service/internal/models"
)

type ChatHandler struct {
	service *chat.Service
}

func NewChatHandler(service *chat.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// GetChat handles GET /api/v1/chat
func (h *ChatHandler) GetChat(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"messages":     h.service.Messages(),
		"typing":       h.service.Typing(),
		"quickReplies": h.service.QuickReplies(),
	})
}

type chatMessageRequest struct {
	Text      string `json:"text" binding:"required"`
	ProductID string `json:"productId"`
}

// SendMessage handles POST /api/v1/chat/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "Message text is empty", Field: "text"},
		})
		return
	}

	msg := h.service.Send(req.Text, req.ProductID)
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
