package models

// Badge represents a promotional tag shown on a product card
type Badge string

const (
	BadgeHit          Badge = "hit"
	BadgeSale         Badge = "sale"
	BadgeNew          Badge = "new"
	BadgeFastDelivery Badge = "fastDelivery"
)

// TechSpecs is the structured subset of product specifications used for
// faceted filtering. A zero field means the spec does not apply to the
// product (e.g. refresh rate on a keyboard).
type TechSpecs struct {
	CPU         string  `json:"cpu,omitempty"`
	GPU         string  `json:"gpu,omitempty"`
	RAM         int     `json:"ram,omitempty"`
	RAMType     string  `json:"ramType,omitempty"`
	SSD         int     `json:"ssd,omitempty"`
	ScreenSize  float64 `json:"screenSize,omitempty"`
	RefreshRate int     `json:"refreshRate,omitempty"`
}

// Product represents a catalog entry. The catalog is loaded once at startup
// from the embedded seed and is immutable for the process lifetime.
type Product struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Price        float64           `json:"price"`
	OldPrice     *float64          `json:"oldPrice,omitempty"`
	Category     string            `json:"category"`
	Brand        string            `json:"brand"`
	Images       []string          `json:"images"`
	Specs        map[string]string `json:"specs"`
	ShortSpecs   []string          `json:"shortSpecs"`
	TechSpecs    TechSpecs         `json:"techSpecs"`
	Rating       float64           `json:"rating"`
	ReviewsCount int               `json:"reviewsCount"`
	InStock      bool              `json:"inStock"`
	StockCount   int               `json:"stockCount"`
	Badges       []Badge           `json:"badges"`
	Description  string            `json:"description"`
	Warranty     string            `json:"warranty"`
	DeliveryDate string            `json:"deliveryDate"`
	Features     []string          `json:"features"`
	Included     []string          `json:"included"`
	Compatible   []string          `json:"compatible"`
}

// HasBadge reports whether the product carries the given promotional tag.
func (p *Product) HasBadge(b Badge) bool {
	for _, badge := range p.Badges {
		if badge == b {
			return true
		}
	}
	return false
}

// Category represents a top-level catalog category
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// DeliveryPoint represents a pickup location offered at checkout
type DeliveryPoint struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	WorkHours string `json:"workHours"`
	HasStock  bool   `json:"hasStock"`
	Metro     string `json:"metro,omitempty"`
}

// SortOption selects the ordering of catalog search results
type SortOption string

const (
	SortPopular   SortOption = "popular"    // catalog input order
	SortPriceAsc  SortOption = "price_asc"  // cheapest first
	SortPriceDesc SortOption = "price_desc" // most expensive first
	SortRating    SortOption = "rating"     // highest rating first
	SortNew       SortOption = "new"        // "new" badge first
)

// Price bounds used when no explicit range is selected.
const (
	PriceRangeMin float64 = 0
	PriceRangeMax float64 = 500000
)

// FilterState describes the active catalog filters. An empty slice facet
// places no constraint on that dimension.
type FilterState struct {
	Category    string     `json:"category,omitempty"`
	Brands      []string   `json:"brands,omitempty"`
	PriceRange  [2]float64 `json:"priceRange"`
	InStockOnly bool       `json:"inStockOnly,omitempty"`
	CPU         []string   `json:"cpu,omitempty"`
	GPU         []string   `json:"gpu,omitempty"`
	RAM         []int      `json:"ram,omitempty"`
	RAMType     []string   `json:"ramType,omitempty"`
	SSD         []int      `json:"ssd,omitempty"`
	ScreenSize  []int      `json:"screenSize,omitempty"`
	RefreshRate []int      `json:"refreshRate,omitempty"`
}

// DefaultFilterState returns a FilterState with no active constraints.
func DefaultFilterState() FilterState {
	return FilterState{PriceRange: [2]float64{PriceRangeMin, PriceRangeMax}}
}

// FilterOptions lists the facet value domains observed in the catalog,
// used to render the filter panel.
type FilterOptions struct {
	Brands      []string `json:"brands"`
	CPU         []string `json:"cpu"`
	GPU         []string `json:"gpu"`
	RAM         []int    `json:"ram"`
	RAMType     []string `json:"ramType"`
	SSD         []int    `json:"ssd"`
	ScreenSize  []int    `json:"screenSize"`
	RefreshRate []int    `json:"refreshRate"`
}
