package checkout

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/catalog"
	"storefront-service/internal/config"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

type recordingPublisher struct {
	mu     sync.Mutex
	orders []models.Order
}

func (p *recordingPublisher) PublishOrderCreated(ctx context.Context, order models.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, order)
	return nil
}

func (p *recordingPublisher) published() []models.Order {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Order(nil), p.orders...)
}

func testService(t *testing.T) (*Service, *store.Store, *recordingPublisher) {
	t.Helper()
	cfg := &config.Config{
		PromoCodes:            []string{"TECHZONE10"},
		PromoDiscountRate:     0.10,
		FreeDeliveryThreshold: 10000,
		DeliveryCost:          500,
		BonusEarnRate:         0.05,
		ProcessingDelay:       time.Millisecond,
		CompareLimit:          3,
		RecentlyViewedLimit:   20,
	}
	cat, err := catalog.Load()
	require.NoError(t, err)
	st := store.NewStore(cfg, nil)
	pub := &recordingPublisher{}
	log := logrus.New()
	return NewService(cfg, st, cat, pub, log), st, pub
}

func fillCart(st *store.Store, price float64) {
	st.AddToCart(models.Product{ID: "pc-1", Name: "Игровой ПК", Price: price})
}

func TestBeginRequiresNonEmptyCart(t *testing.T) {
	svc, st, _ := testService(t)

	_, err := svc.Begin()
	assert.ErrorIs(t, err, ErrEmptyCart)

	fillCart(st, 1000)
	session, err := svc.Begin()
	require.NoError(t, err)
	assert.Equal(t, StepContact, session.Step)
	assert.Equal(t, DeliveryCourier, session.DeliveryMethod)
	assert.Equal(t, PaymentCard, session.PaymentMethod)
}

func TestSubmitContactGuards(t *testing.T) {
	svc, st, _ := testService(t)
	fillCart(st, 1000)
	_, err := svc.Begin()
	require.NoError(t, err)

	// too short name
	_, err = svc.SubmitContact("И", "+79991234567")
	assert.ErrorIs(t, err, ErrInvalidContact)

	// too short phone
	_, err = svc.SubmitContact("Иван", "12345")
	assert.ErrorIs(t, err, ErrInvalidContact)

	session, err := svc.SubmitContact("Иван", "+79991234567")
	require.NoError(t, err)
	assert.Equal(t, StepDelivery, session.Step)
	assert.Equal(t, "Иван", session.ContactName)
}

func TestSubmitDeliveryGuards(t *testing.T) {
	svc, st, _ := testService(t)
	fillCart(st, 1000)
	_, err := svc.Begin()
	require.NoError(t, err)
	_, err = svc.SubmitContact("Иван", "+79991234567")
	require.NoError(t, err)

	// address too short for courier delivery
	_, err = svc.SubmitDelivery(DeliveryCourier, "кв. 5", "")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	// pickup without a selected point
	_, err = svc.SubmitDelivery(DeliveryPickup, "", "")
	assert.ErrorIs(t, err, ErrNoPickupPoint)

	// pickup point must exist in the catalog
	_, err = svc.SubmitDelivery(DeliveryPickup, "", "dp-missing")
	assert.ErrorIs(t, err, ErrUnknownPickupPoint)

	session, err := svc.SubmitDelivery(DeliveryCourier, "Москва, ул. Ленина, 1, кв. 5", "")
	require.NoError(t, err)
	assert.Equal(t, StepPayment, session.Step)
}

func TestStepOrderIsEnforced(t *testing.T) {
	svc, st, _ := testService(t)
	fillCart(st, 1000)
	_, err := svc.Begin()
	require.NoError(t, err)

	_, err = svc.SubmitDelivery(DeliveryCourier, "Москва, ул. Ленина, 1", "")
	assert.ErrorIs(t, err, ErrWrongStep)

	_, err = svc.Submit(context.Background(), PaymentCard)
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestBack(t *testing.T) {
	svc, st, _ := testService(t)
	fillCart(st, 1000)
	_, err := svc.Begin()
	require.NoError(t, err)

	// contact is the floor
	assert.Equal(t, StepContact, svc.Back().Step)

	_, err = svc.SubmitContact("Иван", "+79991234567")
	require.NoError(t, err)
	assert.Equal(t, StepContact, svc.Back().Step)
}

func TestSubmitPlacesOrderAndClearsCart(t *testing.T) {
	svc, st, pub := testService(t)
	fillCart(st, 15000)
	require.True(t, st.ApplyPromoCode("TECHZONE10"))

	_, err := svc.Begin()
	require.NoError(t, err)
	_, err = svc.SubmitContact("Иван", "+79991234567")
	require.NoError(t, err)
	_, err = svc.SubmitDelivery(DeliveryCourier, "Москва, ул. Ленина, 1, кв. 5", "")
	require.NoError(t, err)

	order, err := svc.Submit(context.Background(), PaymentSBP)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "ORD-"))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 13500.0, order.Total, "promo discount applied, delivery free above threshold")
	assert.Equal(t, "Москва, ул. Ленина, 1, кв. 5", order.DeliveryAddress)
	require.Len(t, order.Items, 1)

	// cart is gone, the promo code survives, the order is recorded newest first
	assert.Empty(t, st.Cart())
	assert.Equal(t, "TECHZONE10", st.PromoCode())
	require.Len(t, st.Orders(), 1)
	assert.Equal(t, order.ID, st.Orders()[0].ID)

	session := svc.Session()
	assert.Equal(t, StepCompleted, session.Step)
	assert.Equal(t, order.ID, session.OrderID)
	assert.False(t, session.Processing)

	published := pub.published()
	require.Len(t, published, 1)
	assert.Equal(t, order.ID, published[0].ID)
}

func TestSubmitResolvesPickupAddress(t *testing.T) {
	svc, st, _ := testService(t)
	fillCart(st, 5000)

	_, err := svc.Begin()
	require.NoError(t, err)
	_, err = svc.SubmitContact("Анна", "+79991234567")
	require.NoError(t, err)
	_, err = svc.SubmitDelivery(DeliveryPickup, "", "dp-1")
	require.NoError(t, err)

	order, err := svc.Submit(context.Background(), PaymentCard)
	require.NoError(t, err)

	assert.Contains(t, order.DeliveryAddress, "TechZone на Тверской")
	assert.Equal(t, 5000.0, order.Total, "pickup has no delivery cost")
}

func TestSubmitHonorsContextCancellation(t *testing.T) {
	svc, st, _ := testService(t)
	fillCart(st, 1000)

	_, err := svc.Begin()
	require.NoError(t, err)
	_, err = svc.SubmitContact("Иван", "+79991234567")
	require.NoError(t, err)
	_, err = svc.SubmitDelivery(DeliveryPickup, "", "dp-1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Submit(ctx, PaymentCard)
	assert.ErrorIs(t, err, context.Canceled)

	// the wizard stays on the payment step and the cart is untouched
	assert.Equal(t, StepPayment, svc.Session().Step)
	assert.False(t, svc.Session().Processing)
	assert.NotEmpty(t, st.Cart())
}

func TestQuoteFollowsDeliveryMethod(t *testing.T) {
	svc, st, _ := testService(t)
	fillCart(st, 5000)

	_, err := svc.Begin()
	require.NoError(t, err)
	assert.Equal(t, 500.0, svc.Quote().DeliveryCost)

	_, err = svc.SubmitContact("Иван", "+79991234567")
	require.NoError(t, err)
	_, err = svc.SubmitDelivery(DeliveryPickup, "", "dp-2")
	require.NoError(t, err)
	assert.Equal(t, 0.0, svc.Quote().DeliveryCost)
}
