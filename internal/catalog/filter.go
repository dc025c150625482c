package catalog

import (
	"math"
	"sort"
	"strings"

	"storefront-service/internal/models"
)

// Search returns the products matching the query and filters, ordered by
// the requested sort option. The query matches name, brand, category and
// specification values case-insensitively; facets combine with AND,
// values inside a facet with OR.
func (c *Catalog) Search(query string, filters models.FilterState, sortBy models.SortOption) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Product, 0)
	for _, p := range c.products {
		if !matchesQuery(p, q) {
			continue
		}
		if !matchesFilters(p, filters) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, sortBy)
	return out
}

// ActiveFilterCount reports how many filter constraints are active, used
// for the filter button badge. The ram type facet intentionally does not
// contribute to the count. A price range narrower than the defaults counts
// as one.
func ActiveFilterCount(f models.FilterState) int {
	count := 0
	if f.Category != "" {
		count++
	}
	count += len(f.Brands)
	if f.PriceRange[0] > models.PriceRangeMin || f.PriceRange[1] < models.PriceRangeMax {
		count++
	}
	if f.InStockOnly {
		count++
	}
	count += len(f.CPU)
	count += len(f.GPU)
	count += len(f.RAM)
	count += len(f.SSD)
	count += len(f.ScreenSize)
	count += len(f.RefreshRate)
	return count
}

func matchesQuery(p models.Product, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, v := range p.Specs {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func matchesFilters(p models.Product, f models.FilterState) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if len(f.Brands) > 0 && !containsString(f.Brands, p.Brand) {
		return false
	}
	if p.Price < f.PriceRange[0] || p.Price > f.PriceRange[1] {
		return false
	}
	if f.InStockOnly && !p.InStock {
		return false
	}

	ts := p.TechSpecs
	if len(f.CPU) > 0 && (ts.CPU == "" || !containsString(f.CPU, ts.CPU)) {
		return false
	}
	if len(f.GPU) > 0 && (ts.GPU == "" || !containsString(f.GPU, ts.GPU)) {
		return false
	}
	if len(f.RAM) > 0 && !containsInt(f.RAM, ts.RAM) {
		return false
	}
	if len(f.RAMType) > 0 && !containsString(f.RAMType, ts.RAMType) {
		return false
	}
	if len(f.SSD) > 0 && !containsInt(f.SSD, ts.SSD) {
		return false
	}
	// Screen sizes are matched on the whole-inch part, so a 15.6" panel
	// matches the 15" option.
	if len(f.ScreenSize) > 0 && !containsInt(f.ScreenSize, int(math.Floor(ts.ScreenSize))) {
		return false
	}
	if len(f.RefreshRate) > 0 && !containsInt(f.RefreshRate, ts.RefreshRate) {
		return false
	}
	return true
}

func sortProducts(products []models.Product, sortBy models.SortOption) {
	switch sortBy {
	case models.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case models.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case models.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case models.SortNew:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].HasBadge(models.BadgeNew) && !products[j].HasBadge(models.BadgeNew)
		})
	default:
		// popular keeps catalog shelf order
	}
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
