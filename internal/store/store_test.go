package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/config"
	"storefront-service/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		PromoCodes:          []string{"TECHZONE10", "FIRST20", "GAMER15"},
		CompareLimit:        3,
		RecentlyViewedLimit: 20,
	}
}

func testProduct(id string, price float64) models.Product {
	return models.Product{ID: id, Name: "Товар " + id, Price: price, InStock: true}
}

func TestAddToCartMergesLines(t *testing.T) {
	s := NewStore(testConfig(), nil)
	p := testProduct("pc-1", 1000)

	s.AddToCart(p)
	s.AddToCart(p)
	s.AddToCart(testProduct("pc-2", 500))

	cart := s.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, 3, s.CartCount())
	assert.Equal(t, 2500.0, s.CartSubtotal())
}

func TestUpdateQuantity(t *testing.T) {
	s := NewStore(testConfig(), nil)
	s.AddToCart(testProduct("pc-1", 1000))

	s.UpdateQuantity("pc-1", 5)
	require.Len(t, s.Cart(), 1)
	assert.Equal(t, 5, s.Cart()[0].Quantity)

	// zero removes the line
	s.UpdateQuantity("pc-1", 0)
	assert.Empty(t, s.Cart())

	// unknown id is a no-op
	s.UpdateQuantity("missing", 3)
	assert.Empty(t, s.Cart())
}

func TestRemoveFromCart(t *testing.T) {
	s := NewStore(testConfig(), nil)
	s.AddToCart(testProduct("pc-1", 1000))
	s.AddToCart(testProduct("pc-2", 500))

	s.RemoveFromCart("pc-1")
	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "pc-2", cart[0].Product.ID)
}

func TestClearCartKeepsPromoCode(t *testing.T) {
	s := NewStore(testConfig(), nil)
	s.AddToCart(testProduct("pc-1", 1000))
	require.True(t, s.ApplyPromoCode("TECHZONE10"))

	s.ClearCart()
	assert.Empty(t, s.Cart())
	assert.Equal(t, "TECHZONE10", s.PromoCode())
}

func TestToggleFavorite(t *testing.T) {
	s := NewStore(testConfig(), nil)

	assert.True(t, s.ToggleFavorite("pc-1"))
	assert.True(t, s.IsFavorite("pc-1"))
	assert.False(t, s.ToggleFavorite("pc-1"))
	assert.False(t, s.IsFavorite("pc-1"))
	assert.Empty(t, s.Favorites())
}

func TestToggleCompareRespectsLimit(t *testing.T) {
	s := NewStore(testConfig(), nil)

	assert.True(t, s.ToggleCompare("a"))
	assert.True(t, s.ToggleCompare("b"))
	assert.True(t, s.ToggleCompare("c"))

	// at the limit nothing is added and nothing is evicted
	assert.False(t, s.ToggleCompare("d"))
	assert.Equal(t, []string{"a", "b", "c"}, s.CompareList())

	// removing one frees a slot
	assert.False(t, s.ToggleCompare("b"))
	assert.True(t, s.ToggleCompare("d"))
	assert.Equal(t, []string{"a", "c", "d"}, s.CompareList())
}

func TestAddRecentlyViewed(t *testing.T) {
	cfg := testConfig()
	cfg.RecentlyViewedLimit = 3
	s := NewStore(cfg, nil)

	s.AddRecentlyViewed("a")
	s.AddRecentlyViewed("b")
	s.AddRecentlyViewed("c")
	assert.Equal(t, []string{"c", "b", "a"}, s.RecentlyViewed())

	// repeated view moves the id to the front without duplicating
	s.AddRecentlyViewed("a")
	assert.Equal(t, []string{"a", "c", "b"}, s.RecentlyViewed())

	// the oldest entry is trimmed at the limit
	s.AddRecentlyViewed("d")
	assert.Equal(t, []string{"d", "a", "c"}, s.RecentlyViewed())
}

func TestAddOrderPrepends(t *testing.T) {
	s := NewStore(testConfig(), nil)

	s.AddOrder(models.Order{ID: "ORD-1"})
	s.AddOrder(models.Order{ID: "ORD-2"})

	orders := s.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-2", orders[0].ID)

	o, ok := s.OrderByID("ORD-1")
	require.True(t, ok)
	assert.Equal(t, "ORD-1", o.ID)

	_, ok = s.OrderByID("missing")
	assert.False(t, ok)
}

func TestApplyPromoCode(t *testing.T) {
	s := NewStore(testConfig(), nil)

	// case-insensitive, stored uppercased
	assert.True(t, s.ApplyPromoCode("techzone10"))
	assert.Equal(t, "TECHZONE10", s.PromoCode())

	// unknown code is rejected without clearing the applied one
	assert.False(t, s.ApplyPromoCode("BOGUS"))
	assert.Equal(t, "TECHZONE10", s.PromoCode())

	s.ClearPromoCode()
	assert.Empty(t, s.PromoCode())
}

func TestThemeAndLanguage(t *testing.T) {
	s := NewStore(testConfig(), nil)

	assert.Equal(t, models.ThemeLight, s.Theme())
	s.SetTheme(models.ThemeNeon)
	assert.Equal(t, models.ThemeNeon, s.Theme())

	assert.Equal(t, models.LanguageRU, s.Language())
	s.SetLanguage(models.LanguageEN)
	assert.Equal(t, models.LanguageEN, s.Language())
}

func TestCompleteQuiz(t *testing.T) {
	s := NewStore(testConfig(), nil)

	done, prefs := s.QuizCompleted()
	assert.False(t, done)
	assert.Nil(t, prefs)

	s.CompleteQuiz(models.QuizPreferences{Usage: "gaming", Budget: "100000"})
	done, prefs = s.QuizCompleted()
	assert.True(t, done)
	require.NotNil(t, prefs)
	assert.Equal(t, "gaming", prefs.Usage)
}

func TestPersistedSubsetRoundTrip(t *testing.T) {
	cfg := testConfig()
	persister := NewMemoryPersister()

	s := NewStore(cfg, persister)
	s.AddToCart(testProduct("pc-1", 1000))
	s.ToggleFavorite("pc-1")
	s.ToggleCompare("pc-2")
	s.AddRecentlyViewed("pc-3")
	s.SetTheme(models.ThemeNeon)
	s.SetLanguage(models.LanguageEN)
	s.CompleteQuiz(models.QuizPreferences{Usage: "work", Budget: "50000"})

	// session-only state
	s.SetUser(models.User{ID: "user-1"})
	s.AddOrder(models.Order{ID: "ORD-1"})
	require.True(t, s.ApplyPromoCode("FIRST20"))

	restored := NewStore(cfg, persister)
	require.NoError(t, restored.Hydrate(context.Background()))

	assert.Len(t, restored.Cart(), 1)
	assert.Equal(t, []string{"pc-1"}, restored.Favorites())
	assert.Equal(t, []string{"pc-2"}, restored.CompareList())
	assert.Equal(t, []string{"pc-3"}, restored.RecentlyViewed())
	assert.Equal(t, models.ThemeNeon, restored.Theme())
	assert.Equal(t, models.LanguageEN, restored.Language())
	done, prefs := restored.QuizCompleted()
	assert.True(t, done)
	require.NotNil(t, prefs)
	assert.Equal(t, "work", prefs.Usage)

	// user, orders and promo code do not survive
	assert.Nil(t, restored.User())
	assert.Empty(t, restored.Orders())
	assert.Empty(t, restored.PromoCode())
}

func TestHydrateWithoutSnapshot(t *testing.T) {
	s := NewStore(testConfig(), NewMemoryPersister())
	require.NoError(t, s.Hydrate(context.Background()))
	assert.Empty(t, s.Cart())
	assert.Equal(t, models.ThemeLight, s.Theme())
}
