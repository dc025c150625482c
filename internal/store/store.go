package store

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/config"
	"storefront-service/internal/models"
)

// Store holds all client-visible state: cart, favorites, compare list,
// recently viewed, orders, promo code, user profile and UI preferences.
// A subset of fields survives restarts through the Persister; user,
// orders and promo code are session-only.
type Store struct {
	mu sync.RWMutex

	cart            []models.CartItem
	favorites       []string
	compareList     []string
	recentlyViewed  []string
	orders          []models.Order
	promoCode       string
	user            *models.User
	theme           models.Theme
	language        models.Language
	quizCompleted   bool
	quizPreferences *models.QuizPreferences

	cfg       *config.Config
	persister Persister
}

func NewStore(cfg *config.Config, persister Persister) *Store {
	return &Store{
		theme:     models.ThemeLight,
		language:  models.LanguageRU,
		cfg:       cfg,
		persister: persister,
	}
}

// Hydrate restores the persisted subset of the state. A missing snapshot
// is not an error; the store starts empty.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	snapshot, err := s.persister.Load(ctx)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot.Theme != "" {
		s.theme = snapshot.Theme
	}
	if snapshot.Language != "" {
		s.language = snapshot.Language
	}
	s.cart = snapshot.Cart
	s.favorites = snapshot.Favorites
	s.recentlyViewed = snapshot.RecentlyViewed
	s.compareList = snapshot.CompareList
	s.quizCompleted = snapshot.QuizCompleted
	s.quizPreferences = snapshot.QuizPreferences
	return nil
}

// persist writes the persisted subset. Callers must hold the lock.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	snapshot := &Snapshot{
		Theme:           s.theme,
		Language:        s.language,
		Cart:            append([]models.CartItem(nil), s.cart...),
		Favorites:       append([]string(nil), s.favorites...),
		RecentlyViewed:  append([]string(nil), s.recentlyViewed...),
		CompareList:     append([]string(nil), s.compareList...),
		QuizCompleted:   s.quizCompleted,
		QuizPreferences: s.quizPreferences,
	}
	if err := s.persister.Save(context.Background(), snapshot); err != nil {
		logrus.WithError(err).Warn("Failed to persist store snapshot")
	}
}

// Cart returns a copy of the cart items.
func (s *Store) Cart() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartItem(nil), s.cart...)
}

// CartCount returns the total quantity across all cart lines, used for
// the cart badge.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.cart {
		count += item.Quantity
	}
	return count
}

// CartSubtotal sums price x quantity over the cart.
func (s *Store) CartSubtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CartSubtotal(s.cart)
}

// AddToCart adds one unit of the product, merging with an existing line.
func (s *Store) AddToCart(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].Product.ID == p.ID {
			s.cart[i].Quantity++
			s.persist()
			return
		}
	}
	s.cart = append(s.cart, models.CartItem{Product: p, Quantity: 1})
	s.persist()
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity <= 0 {
		s.removeLocked(productID)
		s.persist()
		return
	}
	for i := range s.cart {
		if s.cart[i].Product.ID == productID {
			s.cart[i].Quantity = quantity
			s.persist()
			return
		}
	}
}

// RemoveFromCart deletes a cart line regardless of quantity.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
	s.persist()
}

func (s *Store) removeLocked(productID string) {
	for i := range s.cart {
		if s.cart[i].Product.ID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

// ClearCart empties the cart. An applied promo code stays; it is only
// ever replaced by a newer valid code or dropped explicitly.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.persist()
}

// Favorites returns the favorite product ids in insertion order.
func (s *Store) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.favorites...)
}

// IsFavorite reports whether the product is in the favorites list.
func (s *Store) IsFavorite(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.favorites, productID) >= 0
}

// ToggleFavorite adds or removes the product and reports whether it is a
// favorite afterwards.
func (s *Store) ToggleFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.favorites, productID); i >= 0 {
		s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
		s.persist()
		return false
	}
	s.favorites = append(s.favorites, productID)
	s.persist()
	return true
}

// CompareList returns the product ids selected for comparison.
func (s *Store) CompareList() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.compareList...)
}

// ToggleCompare adds or removes the product from the compare list. Adding
// beyond the limit is a no-op; nothing is evicted. Returns whether the
// product is in the list afterwards.
func (s *Store) ToggleCompare(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.compareList, productID); i >= 0 {
		s.compareList = append(s.compareList[:i], s.compareList[i+1:]...)
		s.persist()
		return false
	}
	if len(s.compareList) >= s.cfg.CompareLimit {
		return false
	}
	s.compareList = append(s.compareList, productID)
	s.persist()
	return true
}

// RecentlyViewed returns product ids, most recent first.
func (s *Store) RecentlyViewed() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.recentlyViewed...)
}

// AddRecentlyViewed records a product view, moving an already-seen id to
// the front and trimming the list to the limit.
func (s *Store) AddRecentlyViewed(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.recentlyViewed, productID); i >= 0 {
		s.recentlyViewed = append(s.recentlyViewed[:i], s.recentlyViewed[i+1:]...)
	}
	s.recentlyViewed = append([]string{productID}, s.recentlyViewed...)
	if len(s.recentlyViewed) > s.cfg.RecentlyViewedLimit {
		s.recentlyViewed = s.recentlyViewed[:s.cfg.RecentlyViewedLimit]
	}
	s.persist()
}

// Orders returns the session's orders, newest first.
func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Order(nil), s.orders...)
}

// OrderByID looks up an order placed in this session.
func (s *Store) OrderByID(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// AddOrder prepends the order so the newest one is first.
func (s *Store) AddOrder(o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]models.Order{o}, s.orders...)
}

// PromoCode returns the currently applied promo code, empty if none.
func (s *Store) PromoCode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.promoCode
}

// ApplyPromoCode validates the code against the allow-list and stores it
// uppercased. Returns false for unknown codes without clearing a
// previously applied one.
func (s *Store) ApplyPromoCode(code string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, valid := range s.cfg.PromoCodes {
		if normalized == valid {
			s.promoCode = normalized
			return true
		}
	}
	return false
}

// ClearPromoCode removes the applied promo code.
func (s *Store) ClearPromoCode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promoCode = ""
}

// User returns the current user, nil before identification.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SetUser replaces the current user profile.
func (s *Store) SetUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

// Theme returns the active color scheme.
func (s *Store) Theme() models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme switches the color scheme.
func (s *Store) SetTheme(t models.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	s.persist()
}

// Language returns the display language.
func (s *Store) Language() models.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetLanguage switches the display language.
func (s *Store) SetLanguage(l models.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = l
	s.persist()
}

// QuizCompleted reports whether the onboarding quiz was finished and with
// which answers.
func (s *Store) QuizCompleted() (bool, *models.QuizPreferences) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quizCompleted, s.quizPreferences
}

// CompleteQuiz marks the onboarding quiz as finished with the given
// preferences.
func (s *Store) CompleteQuiz(prefs models.QuizPreferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizCompleted = true
	s.quizPreferences = &prefs
	s.persist()
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}
