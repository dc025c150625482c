package checkout

import (
	"math"

	"storefront-service/internal/config"
	"storefront-service/internal/models"
)

// DeliveryMethod selects how the order reaches the customer
type DeliveryMethod string

const (
	DeliveryCourier DeliveryMethod = "delivery"
	DeliveryPickup  DeliveryMethod = "pickup"
)

// PaymentMethod selects how the order is paid
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentSBP  PaymentMethod = "sbp"
	PaymentCash PaymentMethod = "cash"
)

// Quote is the checkout price breakdown shown on the payment step and
// recorded on the order.
type Quote struct {
	Subtotal     float64 `json:"subtotal"`
	Discount     float64 `json:"discount"`
	DeliveryCost float64 `json:"deliveryCost"`
	Total        float64 `json:"total"`
	BonusEarned  int     `json:"bonusEarned"`
}

// CartQuote is the cart screen preview. Unlike the checkout Quote it can
// additionally subtract a bonus point spend, capped at ten percent of the
// subtotal.
type CartQuote struct {
	Subtotal      float64 `json:"subtotal"`
	PromoDiscount float64 `json:"promoDiscount"`
	BonusDiscount float64 `json:"bonusDiscount"`
	DeliveryCost  float64 `json:"deliveryCost"`
	Total         float64 `json:"total"`
}

// ComputeQuote applies the pricing rules: a flat promo discount off the
// subtotal, free courier delivery above the threshold, and bonus points
// earned on the final total.
func ComputeQuote(cfg *config.Config, items []models.CartItem, promoApplied bool, method DeliveryMethod) Quote {
	subtotal := models.CartSubtotal(items)

	var discount float64
	if promoApplied {
		discount = subtotal * cfg.PromoDiscountRate
	}

	var deliveryCost float64
	if method == DeliveryCourier && subtotal <= cfg.FreeDeliveryThreshold {
		deliveryCost = cfg.DeliveryCost
	}

	total := subtotal - discount + deliveryCost
	return Quote{
		Subtotal:     subtotal,
		Discount:     discount,
		DeliveryCost: deliveryCost,
		Total:        total,
		BonusEarned:  int(math.Floor(total * cfg.BonusEarnRate)),
	}
}

// ComputeCartQuote builds the cart preview. bonusPoints is the user's
// spendable balance; it is only applied when spendBonuses is set.
func ComputeCartQuote(cfg *config.Config, items []models.CartItem, promoApplied bool, spendBonuses bool, bonusPoints float64) CartQuote {
	subtotal := models.CartSubtotal(items)

	var promoDiscount float64
	if promoApplied {
		promoDiscount = subtotal * cfg.PromoDiscountRate
	}

	var bonusDiscount float64
	if spendBonuses {
		bonusDiscount = math.Min(bonusPoints, subtotal*cfg.PromoDiscountRate)
	}

	var deliveryCost float64
	if subtotal > 0 && subtotal <= cfg.FreeDeliveryThreshold {
		deliveryCost = cfg.DeliveryCost
	}

	return CartQuote{
		Subtotal:      subtotal,
		PromoDiscount: promoDiscount,
		BonusDiscount: bonusDiscount,
		DeliveryCost:  deliveryCost,
		Total:         subtotal - promoDiscount - bonusDiscount + deliveryCost,
	}
}
