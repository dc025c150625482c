package platform

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

// telegramUser mirrors the user payload inside Telegram Web App init data.
type telegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	PhotoURL     string `json:"photo_url"`
	LanguageCode string `json:"language_code"`
}

// TelegramBridge adapts a Telegram Mini App launch. Init data arrives as
// a query string with a JSON-encoded user field. The hash is not
// verified here; the profile only drives display, not authorization.
type TelegramBridge struct {
	user models.User
	log  *logrus.Logger
}

func NewTelegramBridge(initData string, log *logrus.Logger) (*TelegramBridge, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("malformed init data: %w", err)
	}
	rawUser := values.Get("user")
	if rawUser == "" {
		return nil, fmt.Errorf("init data has no user field")
	}

	var tu telegramUser
	if err := json.Unmarshal([]byte(rawUser), &tu); err != nil {
		return nil, fmt.Errorf("malformed user payload: %w", err)
	}
	if tu.ID == 0 {
		return nil, fmt.Errorf("user payload has no id")
	}

	language := tu.LanguageCode
	if language == "" {
		language = "ru"
	}

	return &TelegramBridge{
		user: models.User{
			ID:           strconv.FormatInt(tu.ID, 10),
			FirstName:    tu.FirstName,
			LastName:     tu.LastName,
			Username:     tu.Username,
			PhotoURL:     tu.PhotoURL,
			LanguageCode: language,
			LoyaltyLevel: models.LoyaltyBronze,
		},
		log: log,
	}, nil
}

func (b *TelegramBridge) Profile() (models.User, bool) {
	return b.user, true
}

func (b *TelegramBridge) Ready() {
	b.log.Debug("Telegram WebApp ready")
}

func (b *TelegramBridge) Expand() {
	b.log.Debug("Telegram WebApp expand")
}

func (b *TelegramBridge) SetSwipeBehavior(allowVerticalSwipe bool) {
	b.log.WithField("allow_vertical_swipe", allowVerticalSwipe).Debug("Telegram WebApp swipe behavior")
}
