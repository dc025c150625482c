package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"storefront-service/internal/models"
)

//go:embed data/products.json
var seedData []byte

type seed struct {
	Products       []models.Product       `json:"products"`
	Categories     []models.Category      `json:"categories"`
	DeliveryPoints []models.DeliveryPoint `json:"deliveryPoints"`
	PopularQueries []string               `json:"popularQueries"`
}

// Catalog holds the embedded product assortment. It is loaded once at
// startup and never mutated afterwards, so reads need no locking.
type Catalog struct {
	products       []models.Product
	byID           map[string]int
	categories     []models.Category
	deliveryPoints []models.DeliveryPoint
	popularQueries []string
	options        models.FilterOptions
}

// Load parses the embedded seed and builds lookup indexes and the derived
// filter facet domains.
func Load() (*Catalog, error) {
	var s seed
	if err := json.Unmarshal(seedData, &s); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed: %w", err)
	}

	c := &Catalog{
		products:       s.Products,
		byID:           make(map[string]int, len(s.Products)),
		categories:     s.Categories,
		deliveryPoints: s.DeliveryPoints,
		popularQueries: s.PopularQueries,
	}
	for i, p := range s.Products {
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %s in catalog seed", p.ID)
		}
		c.byID[p.ID] = i
	}

	counts := make(map[string]int)
	for _, p := range s.Products {
		counts[p.Category]++
	}
	for i := range c.categories {
		c.categories[i].Count = counts[c.categories[i].ID]
	}

	c.options = deriveOptions(s.Products)
	return c, nil
}

// Products returns all catalog entries in shelf order.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ProductByID looks up a single product.
func (c *Catalog) ProductByID(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

// Categories returns the category list with product counts filled in.
func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// DeliveryPoints returns all pickup locations.
func (c *Catalog) DeliveryPoints() []models.DeliveryPoint {
	out := make([]models.DeliveryPoint, len(c.deliveryPoints))
	copy(out, c.deliveryPoints)
	return out
}

// DeliveryPointByID looks up a single pickup location.
func (c *Catalog) DeliveryPointByID(id string) (models.DeliveryPoint, bool) {
	for _, dp := range c.deliveryPoints {
		if dp.ID == id {
			return dp, true
		}
	}
	return models.DeliveryPoint{}, false
}

// PopularQueries returns the suggested search queries.
func (c *Catalog) PopularQueries() []string {
	out := make([]string, len(c.popularQueries))
	copy(out, c.popularQueries)
	return out
}

// Options returns the facet value domains observed across the catalog.
func (c *Catalog) Options() models.FilterOptions {
	return c.options
}

// ByBadge returns products carrying the given badge, in shelf order.
func (c *Catalog) ByBadge(b models.Badge) []models.Product {
	var out []models.Product
	for _, p := range c.products {
		if p.HasBadge(b) {
			out = append(out, p)
		}
	}
	return out
}

// Discounted returns products that have an old price set.
func (c *Catalog) Discounted() []models.Product {
	var out []models.Product
	for _, p := range c.products {
		if p.OldPrice != nil {
			out = append(out, p)
		}
	}
	return out
}

// Compatible resolves the accessory recommendations listed on a product.
// Unknown ids are skipped.
func (c *Catalog) Compatible(id string) []models.Product {
	p, ok := c.ProductByID(id)
	if !ok {
		return nil
	}
	var out []models.Product
	for _, cid := range p.Compatible {
		if cp, found := c.ProductByID(cid); found {
			out = append(out, cp)
		}
	}
	return out
}

// Similar returns up to limit products from the same category, excluding
// the product itself.
func (c *Catalog) Similar(id string, limit int) []models.Product {
	p, ok := c.ProductByID(id)
	if !ok {
		return nil
	}
	var out []models.Product
	for _, sp := range c.products {
		if sp.ID == id || sp.Category != p.Category {
			continue
		}
		out = append(out, sp)
		if len(out) == limit {
			break
		}
	}
	return out
}

func deriveOptions(products []models.Product) models.FilterOptions {
	brands := make(map[string]struct{})
	cpus := make(map[string]struct{})
	gpus := make(map[string]struct{})
	ramTypes := make(map[string]struct{})
	rams := make(map[int]struct{})
	ssds := make(map[int]struct{})
	screens := make(map[int]struct{})
	refresh := make(map[int]struct{})

	for _, p := range products {
		brands[p.Brand] = struct{}{}
		ts := p.TechSpecs
		if ts.CPU != "" {
			cpus[ts.CPU] = struct{}{}
		}
		if ts.GPU != "" {
			gpus[ts.GPU] = struct{}{}
		}
		if ts.RAMType != "" {
			ramTypes[ts.RAMType] = struct{}{}
		}
		if ts.RAM > 0 {
			rams[ts.RAM] = struct{}{}
		}
		if ts.SSD > 0 {
			ssds[ts.SSD] = struct{}{}
		}
		if ts.ScreenSize > 0 {
			screens[int(ts.ScreenSize)] = struct{}{}
		}
		if ts.RefreshRate > 0 {
			refresh[ts.RefreshRate] = struct{}{}
		}
	}

	return models.FilterOptions{
		Brands:      sortedStrings(brands),
		CPU:         sortedStrings(cpus),
		GPU:         sortedStrings(gpus),
		RAMType:     sortedStrings(ramTypes),
		RAM:         sortedInts(rams),
		SSD:         sortedInts(ssds),
		ScreenSize:  sortedInts(screens),
		RefreshRate: sortedInts(refresh),
	}
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
