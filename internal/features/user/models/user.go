package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// User представляет запись пользователя в системе. Учетная запись привязана
// либо к Telegram ID, либо к TON кошельку (либо к обоим после привязки).
type User struct {
	ID             int64   `json:"id"`
	TelegramID     *int64  `json:"telegram_id,omitempty"`
	WalletRaw      *string `json:"wallet_raw,omitempty"`
	WalletFriendly *string `json:"wallet_friendly,omitempty"`

	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"photo_url"`

	GamesPlayed    int64   `json:"games_played"`
	TournamentsWon int64   `json:"tournaments_won"`
	TotalEarned    float64 `json:"total_earned"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile holds the mutable display fields asserted by a trust source.
// They are overwritten with the latest values on every successful login.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
	PhotoURL  string
}

// ExternalID is a tagged stable identifier asserted by a trust source:
// "tg:<telegram id>" or "ton:<raw wallet address>". It is the session
// subject and the key the identity store resolves on.
type ExternalID string

func TelegramExternalID(telegramID int64) ExternalID {
	return ExternalID(fmt.Sprintf("tg:%d", telegramID))
}

func WalletExternalID(walletRaw string) ExternalID {
	return ExternalID("ton:" + walletRaw)
}

// Telegram returns the Telegram numeric ID if the identity is Telegram-based.
func (e ExternalID) Telegram() (int64, bool) {
	s, ok := strings.CutPrefix(string(e), "tg:")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Wallet returns the raw wallet address if the identity is wallet-based.
func (e ExternalID) Wallet() (string, bool) {
	s, ok := strings.CutPrefix(string(e), "ton:")
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (e ExternalID) Valid() bool {
	if _, ok := e.Telegram(); ok {
		return true
	}
	_, ok := e.Wallet()
	return ok
}

// ExternalID returns the primary identity of the record. Telegram wins when
// both are present: the wallet is then an attached payment address, not the
// login identity.
func (u *User) ExternalID() ExternalID {
	if u.TelegramID != nil {
		return TelegramExternalID(*u.TelegramID)
	}
	if u.WalletRaw != nil {
		return WalletExternalID(*u.WalletRaw)
	}
	return ""
}
