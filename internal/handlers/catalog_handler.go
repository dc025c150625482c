package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
	store   *store.Store
	started time.Time
}

func NewCatalogHandler(cat *catalog.Catalog, st *store.Store) *CatalogHandler {
	return &CatalogHandler{catalog: cat, store: st, started: time.Now()}
}

// promoCountdownSeed is the flash sale timer shown on the home screen.
const promoCountdownSeed = 23*time.Hour + 45*time.Minute + 12*time.Second

// SearchProducts handles GET /api/v1/products
// Query parameters mirror the filter panel; list facets are comma separated.
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	sortBy := models.SortOption(c.DefaultQuery("sort", string(models.SortPopular)))
	query := c.Query("q")

	products := h.catalog.Search(query, filters, sortBy)
	c.JSON(http.StatusOK, gin.H{
		"products":      products,
		"total":         len(products),
		"activeFilters": catalog.ActiveFilterCount(filters),
	})
}

// GetProduct handles GET /api/v1/products/:id
// Viewing a product records it in the recently viewed list.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	product, ok := h.catalog.ProductByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Product not found"},
		})
		return
	}

	h.store.AddRecentlyViewed(id)
	c.JSON(http.StatusOK, gin.H{
		"product":    product,
		"similar":    h.catalog.Similar(id, 4),
		"compatible": h.catalog.Compatible(id),
		"isFavorite": h.store.IsFavorite(id),
	})
}

// GetCategories handles GET /api/v1/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

// GetFilterOptions handles GET /api/v1/filters
func (h *CatalogHandler) GetFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"options": h.catalog.Options(),
		"priceRange": [2]float64{
			models.PriceRangeMin,
			models.PriceRangeMax,
		},
	})
}

// GetHome handles GET /api/v1/home
// Aggregates the home screen shelves and the flash sale countdown.
func (h *CatalogHandler) GetHome(c *gin.Context) {
	elapsed := time.Since(h.started)
	remaining := promoCountdownSeed - elapsed%promoCountdownSeed

	c.JSON(http.StatusOK, gin.H{
		"hits":           h.catalog.ByBadge(models.BadgeHit),
		"newArrivals":    h.catalog.ByBadge(models.BadgeNew),
		"sale":           h.catalog.Discounted(),
		"categories":     h.catalog.Categories(),
		"popularQueries": h.catalog.PopularQueries(),
		"promoCountdown": formatCountdown(remaining),
	})
}

// GetDeliveryPoints handles GET /api/v1/delivery-points
func (h *CatalogHandler) GetDeliveryPoints(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"deliveryPoints": h.catalog.DeliveryPoints()})
}

func formatCountdown(d time.Duration) string {
	d = d.Round(time.Second)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func parseFilters(c *gin.Context) (models.FilterState, error) {
	filters := models.DefaultFilterState()
	filters.Category = c.Query("category")
	filters.Brands = splitParam(c.Query("brands"))
	filters.CPU = splitParam(c.Query("cpu"))
	filters.GPU = splitParam(c.Query("gpu"))
	filters.RAMType = splitParam(c.Query("ram_type"))
	filters.InStockOnly = c.Query("in_stock") == "true"

	var err error
	if filters.RAM, err = splitIntParam(c.Query("ram")); err != nil {
		return filters, err
	}
	if filters.SSD, err = splitIntParam(c.Query("ssd")); err != nil {
		return filters, err
	}
	if filters.ScreenSize, err = splitIntParam(c.Query("screen_size")); err != nil {
		return filters, err
	}
	if filters.RefreshRate, err = splitIntParam(c.Query("refresh_rate")); err != nil {
		return filters, err
	}

	if raw := c.Query("price_min"); raw != "" {
		if filters.PriceRange[0], err = strconv.ParseFloat(raw, 64); err != nil {
			return filters, err
		}
	}
	if raw := c.Query("price_max"); raw != "" {
		if filters.PriceRange[1], err = strconv.ParseFloat(raw, 64); err != nil {
			return filters, err
		}
	}
	return filters, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitIntParam(raw string) ([]int, error) {
	parts := splitParam(raw)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
