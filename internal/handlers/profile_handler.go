package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/platform"
	"storefront-service/internal/store"
)

type ProfileHandler struct {
	catalog *catalog.Catalog
	store   *store.Store
	log     *logrus.Logger
}

func NewProfileHandler(cat *catalog.Catalog, st *store.Store, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{catalog: cat, store: st, log: log}
}

type initRequest struct {
	InitData string `json:"initData"`
}

// Init handles POST /api/v1/profile/init
// Identifies the visitor from the host platform launch payload, falling
// back to a guest, and sends the UI lifecycle hints to the host.
func (h *ProfileHandler) Init(c *gin.Context) {
	var req initRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	bridge := platform.Resolve(req.InitData, h.log)
	user, identified := bridge.Profile()
	bridge.Ready()
	bridge.Expand()
	bridge.SetSwipeBehavior(false)

	h.store.SetUser(user)
	if user.LanguageCode == "en" {
		h.store.SetLanguage(models.LanguageEN)
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"identified": identified,
		"theme":      h.store.Theme(),
		"language":   h.store.Language(),
	})
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user := h.store.User()
	if user == nil {
		guest := platform.GuestUser()
		user = &guest
	}

	quizCompleted, quizPrefs := h.store.QuizCompleted()
	c.JSON(http.StatusOK, gin.H{
		"user":            user,
		"loyalty":         loyaltyProgress(*user),
		"ordersCount":     len(h.store.Orders()),
		"favoritesCount":  len(h.store.Favorites()),
		"theme":           h.store.Theme(),
		"language":        h.store.Language(),
		"quizCompleted":   quizCompleted,
		"quizPreferences": quizPrefs,
	})
}

type loyaltyView struct {
	Level         models.LoyaltyLevel `json:"level"`
	LevelName     string              `json:"levelName"`
	CashbackRate  int                 `json:"cashbackRate"`
	NextLevelName string              `json:"nextLevelName,omitempty"`
	NextThreshold float64             `json:"nextThreshold,omitempty"`
	Progress      float64             `json:"progress"`
}

// loyaltyProgress builds the loyalty widget data. Gold has no next tier
// and shows full progress.
func loyaltyProgress(user models.User) loyaltyView {
	tier := models.LoyaltyTiers[user.LoyaltyLevel]
	view := loyaltyView{
		Level:        user.LoyaltyLevel,
		LevelName:    tier.Name,
		CashbackRate: tier.Cashback,
	}
	if tier.Next == "" {
		view.Progress = 1
		return view
	}
	view.NextLevelName = tier.Next
	view.NextThreshold = tier.Threshold
	if tier.Threshold > 0 {
		view.Progress = user.TotalSpent / tier.Threshold
		if view.Progress > 1 {
			view.Progress = 1
		}
	}
	return view
}

// GetFavorites handles GET /api/v1/favorites
func (h *ProfileHandler) GetFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.resolveProducts(h.store.Favorites())})
}

// ToggleFavorite handles POST /api/v1/favorites/:id/toggle
func (h *ProfileHandler) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.catalog.ProductByID(id); !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Product not found"},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": h.store.ToggleFavorite(id)})
}

// GetCompare handles GET /api/v1/compare
func (h *ProfileHandler) GetCompare(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.resolveProducts(h.store.CompareList())})
}

// ToggleCompare handles POST /api/v1/compare/:id/toggle
// Adding past the comparison limit is rejected without evicting anything.
func (h *ProfileHandler) ToggleCompare(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.catalog.ProductByID(id); !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Product not found"},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comparing": h.store.ToggleCompare(id),
		"products":  h.resolveProducts(h.store.CompareList()),
	})
}

// GetRecentlyViewed handles GET /api/v1/recently-viewed
func (h *ProfileHandler) GetRecentlyViewed(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.resolveProducts(h.store.RecentlyViewed())})
}

type themeRequest struct {
	Theme models.Theme `json:"theme" binding:"required"`
}

// SetTheme handles PUT /api/v1/profile/theme
func (h *ProfileHandler) SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}
	if req.Theme != models.ThemeLight && req.Theme != models.ThemeNeon {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "Unknown theme", Field: "theme"},
		})
		return
	}
	h.store.SetTheme(req.Theme)
	c.JSON(http.StatusOK, gin.H{"theme": h.store.Theme()})
}

type languageRequest struct {
	Language models.Language `json:"language" binding:"required"`
}

// SetLanguage handles PUT /api/v1/profile/language
func (h *ProfileHandler) SetLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}
	if req.Language != models.LanguageRU && req.Language != models.LanguageEN {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "Unknown language", Field: "language"},
		})
		return
	}
	h.store.SetLanguage(req.Language)
	c.JSON(http.StatusOK, gin.H{"language": h.store.Language()})
}

type quizRequest struct {
	Usage  string `json:"usage" binding:"required"`
	Budget string `json:"budget" binding:"required"`
}

// CompleteQuiz handles POST /api/v1/quiz
// Records the onboarding quiz answers and suggests matching products.
func (h *ProfileHandler) CompleteQuiz(c *gin.Context) {
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	h.store.CompleteQuiz(models.QuizPreferences{Usage: req.Usage, Budget: req.Budget})
	c.JSON(http.StatusOK, gin.H{
		"quizCompleted": true,
		"recommended":   h.catalog.ByBadge(models.BadgeHit),
	})
}

func (h *ProfileHandler) resolveProducts(ids []string) []models.Product {
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := h.catalog.ProductByID(id); ok {
			out = append(out, p)
		}
	}
	return out
}
