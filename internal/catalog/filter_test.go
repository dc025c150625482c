package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

func TestSearchByQuery(t *testing.T) {
	c := mustLoad(t)

	results := c.Search("macbook", models.DefaultFilterState(), models.SortPopular)
	require.Len(t, results, 1)
	assert.Equal(t, "laptop-4", results[0].ID)

	// brand matches too, case-insensitively
	results = c.Search("RaZeR", models.DefaultFilterState(), models.SortPopular)
	require.Len(t, results, 1)
	assert.Equal(t, "periph-2", results[0].ID)

	// empty query returns everything
	results = c.Search("", models.DefaultFilterState(), models.SortPopular)
	assert.Len(t, results, len(c.Products()))

	results = c.Search("нет такого товара", models.DefaultFilterState(), models.SortPopular)
	assert.Empty(t, results)
}

func TestSearchMatchesSpecValues(t *testing.T) {
	c := mustLoad(t)

	// "СЖО 360мм" only appears in the specification map
	results := c.Search("сжо", models.DefaultFilterState(), models.SortPopular)
	require.Len(t, results, 1)
	assert.Equal(t, "pc-1", results[0].ID)
}

func TestSearchByCategory(t *testing.T) {
	c := mustLoad(t)

	f := models.DefaultFilterState()
	f.Category = "monitors"
	results := c.Search("", f, models.SortPopular)
	assert.NotEmpty(t, results)
	for _, p := range results {
		assert.Equal(t, "monitors", p.Category)
	}
}

func TestSearchFacetsCombineWithAnd(t *testing.T) {
	c := mustLoad(t)

	f := models.DefaultFilterState()
	f.Category = "laptops"
	f.GPU = []string{"RTX 4060"}
	f.RefreshRate = []int{240}
	results := c.Search("", f, models.SortPopular)
	require.Len(t, results, 1)
	assert.Equal(t, "laptop-2", results[0].ID)
}

func TestSearchFacetValuesCombineWithOr(t *testing.T) {
	c := mustLoad(t)

	f := models.DefaultFilterState()
	f.RefreshRate = []int{165, 240}
	results := c.Search("", f, models.SortPopular)
	ids := make([]string, 0, len(results))
	for _, p := range results {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"laptop-1", "laptop-2", "monitor-1", "monitor-2"}, ids)
}

func TestSearchCPUFacetMatchesExactValues(t *testing.T) {
	c := mustLoad(t)

	f := models.DefaultFilterState()
	f.CPU = []string{"AMD Ryzen 7 9800X3D", "AMD Ryzen 7 7745HX"}
	results := c.Search("", f, models.SortPopular)
	assert.ElementsMatch(t, []string{"pc-2", "laptop-2"}, ids(results))

	// a fragment of a CPU name is not a catalog facet value
	f.CPU = []string{"Ryzen 7"}
	assert.Empty(t, c.Search("", f, models.SortPopular))

	// products without a CPU spec never match an active CPU facet
	f.CPU = []string{""}
	assert.Empty(t, c.Search("", f, models.SortPopular))
}

func TestSearchScreenSizeMatchesWholeInches(t *testing.T) {
	c := mustLoad(t)

	// the 15.6" laptop matches the 15" option
	f := models.DefaultFilterState()
	f.ScreenSize = []int{15}
	results := c.Search("", f, models.SortPopular)
	require.Len(t, results, 1)
	assert.Equal(t, "laptop-3", results[0].ID)
}

func TestSearchPriceRange(t *testing.T) {
	c := mustLoad(t)

	f := models.DefaultFilterState()
	f.PriceRange = [2]float64{10000, 20000}
	results := c.Search("", f, models.SortPopular)
	assert.NotEmpty(t, results)
	for _, p := range results {
		assert.GreaterOrEqual(t, p.Price, 10000.0)
		assert.LessOrEqual(t, p.Price, 20000.0)
	}
}

func TestSearchInStockOnly(t *testing.T) {
	c := mustLoad(t)

	f := models.DefaultFilterState()
	f.InStockOnly = true
	results := c.Search("", f, models.SortPopular)
	for _, p := range results {
		assert.True(t, p.InStock)
	}
	assert.Less(t, len(results), len(c.Products()))
}

func TestSearchSorting(t *testing.T) {
	c := mustLoad(t)
	f := models.DefaultFilterState()

	asc := c.Search("", f, models.SortPriceAsc)
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
	}

	desc := c.Search("", f, models.SortPriceDesc)
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Price, desc[i].Price)
	}

	rated := c.Search("", f, models.SortRating)
	for i := 1; i < len(rated); i++ {
		assert.GreaterOrEqual(t, rated[i-1].Rating, rated[i].Rating)
	}

	newest := c.Search("", f, models.SortNew)
	seenOld := false
	for _, p := range newest {
		if !p.HasBadge(models.BadgeNew) {
			seenOld = true
		} else {
			assert.False(t, seenOld, "new badges must come first")
		}
	}
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	products := []models.Product{
		{ID: "first", Price: 1000, Rating: 4.5},
		{ID: "second", Price: 1000, Rating: 4.5},
		{ID: "cheap", Price: 500, Rating: 4.5},
	}

	sortProducts(products, models.SortPriceAsc)
	assert.Equal(t, []string{"cheap", "first", "second"}, ids(products))

	sortProducts(products, models.SortRating)
	assert.Equal(t, []string{"cheap", "first", "second"}, ids(products), "ties keep their order")
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestSortPopularKeepsShelfOrder(t *testing.T) {
	c := mustLoad(t)

	results := c.Search("", models.DefaultFilterState(), models.SortPopular)
	all := c.Products()
	require.Len(t, results, len(all))
	for i := range all {
		assert.Equal(t, all[i].ID, results[i].ID)
	}
}

func TestActiveFilterCount(t *testing.T) {
	f := models.DefaultFilterState()
	assert.Equal(t, 0, ActiveFilterCount(f))

	f.Category = "pc"
	f.Brands = []string{"ASUS", "MSI"}
	f.InStockOnly = true
	assert.Equal(t, 4, ActiveFilterCount(f))

	f.PriceRange = [2]float64{1000, 50000}
	assert.Equal(t, 5, ActiveFilterCount(f))

	f.CPU = []string{"Ryzen 7"}
	f.RAM = []int{16, 32}
	assert.Equal(t, 8, ActiveFilterCount(f))

	// ram type selections do not contribute to the badge count
	f.RAMType = []string{"DDR5"}
	assert.Equal(t, 8, ActiveFilterCount(f))
}
