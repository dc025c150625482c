package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/catalog"
	"storefront-service/internal/config"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

// Step identifies the checkout wizard position
type Step string

const (
	StepContact   Step = "contact"
	StepDelivery  Step = "delivery"
	StepPayment   Step = "payment"
	StepCompleted Step = "completed"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidContact     = errors.New("name must be at least 2 characters and phone at least 12")
	ErrInvalidAddress     = errors.New("delivery address must be longer than 5 characters")
	ErrNoPickupPoint      = errors.New("pickup point is not selected")
	ErrUnknownPickupPoint = errors.New("unknown pickup point")
	ErrWrongStep          = errors.New("operation not valid for the current checkout step")
	ErrAlreadyProcessing  = errors.New("order is already being processed")
)

// EventPublisher notifies downstream consumers about completed checkouts.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order models.Order) error
}

// Session is a snapshot of the checkout wizard state.
type Session struct {
	Step           Step           `json:"step"`
	ContactName    string         `json:"contactName"`
	ContactPhone   string         `json:"contactPhone"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	Address        string         `json:"address"`
	PickupPointID  string         `json:"pickupPointId"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	Processing     bool           `json:"processing"`
	OrderID        string         `json:"orderId,omitempty"`
}

// Service drives the three step checkout wizard. Steps only advance when
// their validation guard passes; Submit snapshots the cart into an order
// after a simulated processing delay.
type Service struct {
	mu      sync.Mutex
	session Session

	cfg       *config.Config
	store     *store.Store
	catalog   *catalog.Catalog
	publisher EventPublisher
	log       *logrus.Logger
}

func NewService(cfg *config.Config, st *store.Store, cat *catalog.Catalog, publisher EventPublisher, log *logrus.Logger) *Service {
	s := &Service{
		cfg:       cfg,
		store:     st,
		catalog:   cat,
		publisher: publisher,
		log:       log,
	}
	s.session = newSession()
	return s
}

func newSession() Session {
	return Session{
		Step:           StepContact,
		DeliveryMethod: DeliveryCourier,
		PaymentMethod:  PaymentCard,
	}
}

// Begin resets the wizard to the contact step. The cart must not be empty.
func (s *Service) Begin() (Session, error) {
	if len(s.store.Cart()) == 0 {
		return Session{}, ErrEmptyCart
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Processing {
		return Session{}, ErrAlreadyProcessing
	}
	s.session = newSession()
	return s.session, nil
}

// Session returns the current wizard state.
func (s *Service) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// SubmitContact validates the contact form and advances to the delivery
// step. The name needs at least 2 characters, the phone at least 12.
func (s *Service) SubmitContact(name, phone string) (Session, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Step != StepContact {
		return s.session, ErrWrongStep
	}
	if utf8.RuneCountInString(name) < 2 || utf8.RuneCountInString(phone) < 12 {
		return s.session, ErrInvalidContact
	}
	s.session.ContactName = name
	s.session.ContactPhone = phone
	s.session.Step = StepDelivery
	return s.session, nil
}

// SubmitDelivery validates the delivery choice and advances to the
// payment step. Courier delivery needs an address longer than 5
// characters; pickup needs a known pickup point.
func (s *Service) SubmitDelivery(method DeliveryMethod, address, pickupPointID string) (Session, error) {
	address = strings.TrimSpace(address)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Step != StepDelivery {
		return s.session, ErrWrongStep
	}

	switch method {
	case DeliveryCourier:
		if utf8.RuneCountInString(address) <= 5 {
			return s.session, ErrInvalidAddress
		}
		s.session.Address = address
		s.session.PickupPointID = ""
	case DeliveryPickup:
		if pickupPointID == "" {
			return s.session, ErrNoPickupPoint
		}
		if _, ok := s.catalog.DeliveryPointByID(pickupPointID); !ok {
			return s.session, ErrUnknownPickupPoint
		}
		s.session.PickupPointID = pickupPointID
		s.session.Address = ""
	default:
		return s.session, fmt.Errorf("unknown delivery method %q", method)
	}

	s.session.DeliveryMethod = method
	s.session.Step = StepPayment
	return s.session, nil
}

// Back moves the wizard one step backwards. Completed and contact are
// floors; Back from them is a no-op.
func (s *Service) Back() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.session.Step {
	case StepDelivery:
		s.session.Step = StepContact
	case StepPayment:
		s.session.Step = StepDelivery
	}
	return s.session
}

// Quote computes the price breakdown for the current cart and delivery
// choice.
func (s *Service) Quote() Quote {
	s.mu.Lock()
	method := s.session.DeliveryMethod
	s.mu.Unlock()
	return ComputeQuote(s.cfg, s.store.Cart(), s.store.PromoCode() != "", method)
}

// Submit places the order after a simulated processing delay. The cart is
// snapshotted into the order, then cleared; an applied promo code stays.
func (s *Service) Submit(ctx context.Context, method PaymentMethod) (models.Order, error) {
	s.mu.Lock()
	if s.session.Step != StepPayment {
		s.mu.Unlock()
		return models.Order{}, ErrWrongStep
	}
	if s.session.Processing {
		s.mu.Unlock()
		return models.Order{}, ErrAlreadyProcessing
	}
	items := s.store.Cart()
	if len(items) == 0 {
		s.mu.Unlock()
		return models.Order{}, ErrEmptyCart
	}
	if method != "" {
		s.session.PaymentMethod = method
	}
	s.session.Processing = true
	session := s.session
	s.mu.Unlock()

	quote := ComputeQuote(s.cfg, items, s.store.PromoCode() != "", session.DeliveryMethod)

	select {
	case <-time.After(s.cfg.ProcessingDelay):
	case <-ctx.Done():
		s.mu.Lock()
		s.session.Processing = false
		s.mu.Unlock()
		return models.Order{}, ctx.Err()
	}

	now := time.Now()
	order := models.Order{
		ID:              models.NewOrderID(now),
		Items:           items,
		Status:          models.OrderStatusPending,
		Total:           quote.Total,
		CreatedAt:       now,
		DeliveryAddress: s.resolveAddress(session),
	}

	s.store.AddOrder(order)
	s.store.ClearCart()

	s.mu.Lock()
	s.session.Processing = false
	s.session.Step = StepCompleted
	s.session.OrderID = order.ID
	s.mu.Unlock()

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			s.log.WithError(err).Warn("Failed to publish order created event")
		}
	}
	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total,
		"items":    len(order.Items),
	}).Info("Order placed")

	return order, nil
}

func (s *Service) resolveAddress(session Session) string {
	if session.DeliveryMethod == DeliveryPickup {
		if dp, ok := s.catalog.DeliveryPointByID(session.PickupPointID); ok {
			return fmt.Sprintf("%s, %s", dp.Name, dp.Address)
		}
		return ""
	}
	return session.Address
}
