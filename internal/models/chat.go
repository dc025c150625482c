package models

import "time"

// ChatSender identifies the author of a chat message
type ChatSender string

const (
	ChatSenderUser    ChatSender = "user"
	ChatSenderSupport ChatSender = "support"
)

// ChatDeliveryStatus tracks the simulated delivery progression of a user
// message: sent → delivered → read.
type ChatDeliveryStatus string

const (
	ChatStatusSent      ChatDeliveryStatus = "sent"
	ChatStatusDelivered ChatDeliveryStatus = "delivered"
	ChatStatusRead      ChatDeliveryStatus = "read"
)

// ChatMessage represents one message in the support chat
type ChatMessage struct {
	ID        string             `json:"id"`
	Text      string             `json:"text"`
	Sender    ChatSender         `json:"sender"`
	Timestamp time.Time          `json:"timestamp"`
	Status    ChatDeliveryStatus `json:"status,omitempty"`
	ProductID string             `json:"productId,omitempty"`
}
