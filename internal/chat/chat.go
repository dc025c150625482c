package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

// Canned support replies, cycled per incoming user message.
var supportReplies = []string{
	"Здравствуйте! Сейчас уточню информацию по вашему вопросу.",
	"Ваш заказ передан в службу доставки, курьер свяжется с вами заранее.",
	"Да, на все товары действует официальная гарантия производителя.",
	"Могу предложить похожий товар из наличия, хотите посмотреть?",
	"Спасибо за обращение! Могу ещё чем-то помочь?",
}

var quickReplies = []string{
	"Где мой заказ?",
	"Условия доставки",
	"Вопрос по гарантии",
	"Связаться с оператором",
}

// Delays drives the simulated message progression: the user message is
// marked delivered, then read, then the support reply arrives.
type Delays struct {
	Delivered time.Duration
	Read      time.Duration
	Reply     time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Delivered: 500 * time.Millisecond,
		Read:      time.Second,
		Reply:     2 * time.Second,
	}
}

// Service simulates a support chat. There is no real operator behind it;
// replies are canned and arrive on timers.
type Service struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	replyIdx int
	typing   bool
	timers   []*time.Timer
	closed   bool

	delays Delays
	log    *logrus.Logger
}

func NewService(delays Delays, log *logrus.Logger) *Service {
	s := &Service{delays: delays, log: log}
	s.messages = append(s.messages, models.ChatMessage{
		ID:        uuid.New().String(),
		Text:      "Здравствуйте! Это поддержка TechZone. Чем можем помочь?",
		Sender:    models.ChatSenderSupport,
		Timestamp: time.Now(),
	})
	return s
}

// Messages returns the conversation so far, oldest first.
func (s *Service) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.messages...)
}

// Typing reports whether the simulated operator is composing a reply.
func (s *Service) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

// QuickReplies returns the suggested question chips.
func (s *Service) QuickReplies() []string {
	return append([]string(nil), quickReplies...)
}

// Send appends a user message and schedules its delivery progression and
// the canned support reply. An optional product id attaches the message
// to a product card.
func (s *Service) Send(text, productID string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    models.ChatSenderUser,
		Timestamp: time.Now(),
		Status:    models.ChatStatusSent,
		ProductID: productID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return msg
	}
	s.messages = append(s.messages, msg)
	s.typing = true

	s.schedule(s.delays.Delivered, func() {
		s.setStatus(msg.ID, models.ChatStatusDelivered)
	})
	s.schedule(s.delays.Read, func() {
		s.setStatus(msg.ID, models.ChatStatusRead)
	})
	s.schedule(s.delays.Reply, func() {
		s.appendReply()
	})
	return msg
}

// Close stops all pending timers. Safe to call more than once.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.typing = false
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

// schedule registers a timer. Callers must hold the lock.
func (s *Service) schedule(d time.Duration, fn func()) {
	s.timers = append(s.timers, time.AfterFunc(d, fn))
}

func (s *Service) setStatus(messageID string, status models.ChatDeliveryStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := range s.messages {
		if s.messages[i].ID == messageID {
			s.messages[i].Status = status
			return
		}
	}
}

func (s *Service) appendReply() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	reply := supportReplies[s.replyIdx%len(supportReplies)]
	s.replyIdx++
	s.typing = false
	s.messages = append(s.messages, models.ChatMessage{
		ID:        uuid.New().String(),
		Text:      reply,
		Sender:    models.ChatSenderSupport,
		Timestamp: time.Now(),
	})
}
