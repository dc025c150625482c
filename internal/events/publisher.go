// Package events publishes storefront events to NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

const (
	streamName          = "STOREFRONT"
	subjectOrderCreated = "order.created"
	subjectPromoApplied = "promo.applied"
)

// OrderCreatedEvent is emitted after a checkout completes.
type OrderCreatedEvent struct {
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
	OrderID   string    `json:"orderId"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"itemCount"`
	Address   string    `json:"address,omitempty"`
}

// PromoAppliedEvent is emitted when a promo code is accepted.
type PromoAppliedEvent struct {
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
	Code      string    `json:"code"`
}

// Publisher sends storefront events. Delivery is best-effort and
// asynchronous so the checkout flow never blocks on the broker.
type Publisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the storefront stream exists.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("storefront-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.WithError(err).Warn("NATS disconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"order.>", "promo.>"},
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to ensure storefront stream (may already exist)")
	}

	return &Publisher{
		nc:     nc,
		js:     js,
		logger: logger.WithField("component", "storefront-events"),
	}, nil
}

// Close drains the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

// PublishOrderCreated publishes an order.created event.
func (p *Publisher) PublishOrderCreated(ctx context.Context, order models.Order) error {
	event := OrderCreatedEvent{
		EventType: subjectOrderCreated,
		Timestamp: time.Now(),
		OrderID:   order.ID,
		Total:     order.Total,
		ItemCount: len(order.Items),
		Address:   order.DeliveryAddress,
	}
	return p.publish(subjectOrderCreated, event, logrus.Fields{"order_id": order.ID})
}

// PublishPromoApplied publishes a promo.applied event.
func (p *Publisher) PublishPromoApplied(ctx context.Context, code string) error {
	event := PromoAppliedEvent{
		EventType: subjectPromoApplied,
		Timestamp: time.Now(),
		Code:      code,
	}
	return p.publish(subjectPromoApplied, event, logrus.Fields{"code": code})
}

// publish serializes the event and sends it in the background.
func (p *Publisher) publish(subject string, event interface{}, fields logrus.Fields) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := p.js.Publish(pubCtx, subject, data); err != nil {
			p.logger.WithFields(fields).WithField("subject", subject).WithError(err).Error("Failed to publish event")
		} else {
			p.logger.WithFields(fields).WithField("subject", subject).Info("Event published")
		}
	}()
	return nil
}
