package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Redis
	RedisURL   string
	StorageKey string

	// NATS
	NATSURL string

	// Checkout
	PromoCodes            []string
	PromoDiscountRate     float64
	FreeDeliveryThreshold float64
	DeliveryCost          float64
	BonusEarnRate         float64
	ProcessingDelay       time.Duration

	// Store limits
	CompareLimit        int
	RecentlyViewedLimit int
}

func Load() *Config {
	promoDiscount, _ := strconv.ParseFloat(getEnv("PROMO_DISCOUNT_RATE", "0.10"), 64)
	freeDelivery, _ := strconv.ParseFloat(getEnv("FREE_DELIVERY_THRESHOLD", "10000"), 64)
	deliveryCost, _ := strconv.ParseFloat(getEnv("DELIVERY_COST", "500"), 64)
	bonusRate, _ := strconv.ParseFloat(getEnv("BONUS_EARN_RATE", "0.05"), 64)
	processingMs, _ := strconv.Atoi(getEnv("CHECKOUT_PROCESSING_DELAY_MS", "2000"))
	compareLimit, _ := strconv.Atoi(getEnv("COMPARE_LIMIT", "3"))
	recentLimit, _ := strconv.Atoi(getEnv("RECENTLY_VIEWED_LIMIT", "20"))

	return &Config{
		// Server
		Port:        getEnv("PORT", "8087"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis - optional, the store falls back to in-memory persistence
		RedisURL:   getEnv("REDIS_URL", ""),
		StorageKey: getEnv("STORAGE_KEY", "techzone-storage"),

		// NATS - optional, events are best-effort
		NATSURL: getEnv("NATS_URL", ""),

		// Checkout
		PromoCodes:            []string{"TECHZONE10", "FIRST20", "GAMER15"},
		PromoDiscountRate:     promoDiscount,
		FreeDeliveryThreshold: freeDelivery,
		DeliveryCost:          deliveryCost,
		BonusEarnRate:         bonusRate,
		ProcessingDelay:       time.Duration(processingMs) * time.Millisecond,

		// Store limits
		CompareLimit:        compareLimit,
		RecentlyViewedLimit: recentLimit,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
