package models

// LoyaltyLevel represents the user's loyalty program tier
type LoyaltyLevel string

const (
	LoyaltyBronze LoyaltyLevel = "bronze"
	LoyaltySilver LoyaltyLevel = "silver"
	LoyaltyGold   LoyaltyLevel = "gold"
)

// Loyalty tier display thresholds (total spent) and cashback percentages.
// Tier advancement is not performed automatically anywhere; the thresholds
// only drive the progress display.
var LoyaltyTiers = map[LoyaltyLevel]struct {
	Name      string
	Next      string
	Threshold float64
	Cashback  int
}{
	LoyaltyBronze: {Name: "Бронза", Next: "Серебро", Threshold: 50000, Cashback: 3},
	LoyaltySilver: {Name: "Серебро", Next: "Золото", Threshold: 150000, Cashback: 5},
	LoyaltyGold:   {Name: "Золото", Next: "", Threshold: 0, Cashback: 7},
}

// User represents the storefront visitor, built from the host platform
// profile or the guest fallback. Mutated only by direct assignment.
type User struct {
	ID           string       `json:"id"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName,omitempty"`
	Username     string       `json:"username,omitempty"`
	PhotoURL     string       `json:"photoUrl,omitempty"`
	LanguageCode string       `json:"languageCode"`
	LoyaltyLevel LoyaltyLevel `json:"loyaltyLevel"`
	BonusPoints  float64      `json:"bonusPoints"`
	TotalSpent   float64      `json:"totalSpent"`
}

// Theme is the storefront color scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeNeon  Theme = "neon"
)

// Language is the storefront display language
type Language string

const (
	LanguageRU Language = "ru"
	LanguageEN Language = "en"
)

// QuizPreferences holds the result of the onboarding quiz
type QuizPreferences struct {
	Usage  string `json:"usage"`
	Budget string `json:"budget"`
}
