package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExternalID_Telegram(t *testing.T) {
	ext := TelegramExternalID(123456789)
	assert.Equal(t, ExternalID("tg:123456789"), ext)

	id, ok := ext.Telegram()
	assert.True(t, ok)
	assert.Equal(t, int64(123456789), id)

	_, ok = ext.Wallet()
	assert.False(t, ok)
	assert.True(t, ext.Valid())
}

func TestExternalID_Wallet(t *testing.T) {
	raw := "0:0000000000000000000000000000000000000000000000000000000000000000"
	ext := WalletExternalID(raw)

	got, ok := ext.Wallet()
	assert.True(t, ok)
	assert.Equal(t, raw, got)

	_, ok = ext.Telegram()
	assert.False(t, ok)
	assert.True(t, ext.Valid())
}

func TestExternalID_Malformed(t *testing.T) {
	for _, bad := range []ExternalID{"", "tg:", "tg:abc", "ton:", "bogus:1"} {
		assert.False(t, bad.Valid(), "%q should be invalid", bad)
	}
}

func TestUser_ExternalID_TelegramWins(t *testing.T) {
	telegramID := int64(42)
	raw := "0:00"

	both := &User{TelegramID: &telegramID, WalletRaw: &raw}
	assert.Equal(t, TelegramExternalID(42), both.ExternalID())

	walletOnly := &User{WalletRaw: &raw}
	assert.Equal(t, WalletExternalID(raw), walletOnly.ExternalID())

	assert.Equal(t, ExternalID(""), (&User{}).ExternalID())
}
