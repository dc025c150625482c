package platform

import (
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

// Bridge abstracts the hosting platform. The storefront asks it for the
// visitor profile and forwards UI lifecycle hints; outside a host those
// hints are no-ops and the profile falls back to a guest.
type Bridge interface {
	// Profile returns the visitor and whether the host identified them.
	Profile() (models.User, bool)
	// Ready signals that the UI finished loading.
	Ready()
	// Expand asks the host to expand the web view to full height.
	Expand()
	// SetSwipeBehavior toggles the host's vertical swipe-to-close gesture.
	SetSwipeBehavior(allowVerticalSwipe bool)
}

// Resolve picks the bridge for a launch. Valid Telegram init data yields
// the Telegram bridge; anything else degrades to the guest bridge.
func Resolve(initData string, log *logrus.Logger) Bridge {
	if initData != "" {
		b, err := NewTelegramBridge(initData, log)
		if err == nil {
			return b
		}
		log.WithError(err).Warn("Failed to parse Telegram init data, falling back to guest")
	}
	return NewGuestBridge(log)
}

// GuestBridge serves launches outside a hosting platform. Lifecycle
// hints go nowhere and the profile is a fixed guest.
type GuestBridge struct {
	log *logrus.Logger
}

func NewGuestBridge(log *logrus.Logger) *GuestBridge {
	return &GuestBridge{log: log}
}

func (b *GuestBridge) Profile() (models.User, bool) {
	return GuestUser(), false
}

func (b *GuestBridge) Ready() {}

func (b *GuestBridge) Expand() {}

func (b *GuestBridge) SetSwipeBehavior(_ bool) {}

// GuestUser is the profile used when the host did not identify anyone.
func GuestUser() models.User {
	return models.User{
		ID:           "user-1",
		FirstName:    "Гость",
		LanguageCode: "ru",
		LoyaltyLevel: models.LoyaltyBronze,
		BonusPoints:  0,
		TotalSpent:   0,
	}
}
