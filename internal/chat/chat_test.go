package chat

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

func fastDelays() Delays {
	return Delays{
		Delivered: time.Millisecond,
		Read:      2 * time.Millisecond,
		Reply:     5 * time.Millisecond,
	}
}

func TestNewServiceGreets(t *testing.T) {
	s := NewService(fastDelays(), logrus.New())
	defer s.Close()

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.ChatSenderSupport, msgs[0].Sender)
	assert.NotEmpty(t, msgs[0].Text)
}

func TestSendProgressesAndGetsReply(t *testing.T) {
	s := NewService(fastDelays(), logrus.New())
	defer s.Close()

	msg := s.Send("Где мой заказ?", "")
	assert.Equal(t, models.ChatStatusSent, msg.Status)
	assert.True(t, s.Typing())

	// the message is read and the canned reply arrives
	assert.Eventually(t, func() bool {
		msgs := s.Messages()
		return len(msgs) == 3 && msgs[1].Status == models.ChatStatusRead
	}, time.Second, time.Millisecond)

	msgs := s.Messages()
	assert.Equal(t, models.ChatSenderSupport, msgs[2].Sender)
	assert.Equal(t, supportReplies[0], msgs[2].Text)
	assert.False(t, s.Typing())
}

func TestRepliesCycle(t *testing.T) {
	s := NewService(fastDelays(), logrus.New())
	defer s.Close()

	for i := 0; i < len(supportReplies)+1; i++ {
		s.Send("вопрос", "")
		want := 1 + (i+1)*2 // greeting + pairs of question/answer
		require.Eventually(t, func() bool {
			return len(s.Messages()) == want
		}, time.Second, time.Millisecond)
	}

	msgs := s.Messages()
	// the sixth reply wraps around to the first canned text
	assert.Equal(t, supportReplies[0], msgs[len(msgs)-1].Text)
}

func TestSendAttachesProduct(t *testing.T) {
	s := NewService(fastDelays(), logrus.New())
	defer s.Close()

	msg := s.Send("Есть в наличии?", "pc-1")
	assert.Equal(t, "pc-1", msg.ProductID)
}

func TestCloseStopsTimers(t *testing.T) {
	s := NewService(fastDelays(), logrus.New())
	s.Send("вопрос", "")
	s.Close()

	before := len(s.Messages())
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, s.Messages(), before, "no reply after Close")
	assert.False(t, s.Typing())

	// Close is idempotent
	s.Close()
}

func TestQuickReplies(t *testing.T) {
	s := NewService(fastDelays(), logrus.New())
	defer s.Close()

	qr := s.QuickReplies()
	assert.NotEmpty(t, qr)
	assert.Contains(t, qr, "Где мой заказ?")
}
