package repository

import (
	"context"
	"errors"

	"ton-arcade-backend/internal/features/user/models"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrWalletTaken is returned when a wallet address is already bound to
	// another user record.
	ErrWalletTaken = errors.New("wallet already bound to another user")
)

type UserRepository interface {
	// UpsertTelegram is the find-or-create path for Telegram logins. It is a
	// single statement relying on the unique constraint, so two concurrent
	// first logins can never produce two rows. Display fields are
	// last-write-wins. The bool reports whether the row was created.
	UpsertTelegram(ctx context.Context, telegramID int64, profile models.Profile) (*models.User, bool, error)

	// UpsertWallet is the find-or-create path for wallet logins, keyed on the
	// raw address encoding.
	UpsertWallet(ctx context.Context, walletRaw, walletFriendly string) (*models.User, bool, error)

	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	GetByWallet(ctx context.Context, walletRaw string) (*models.User, error)

	// SetWallet binds a wallet to an existing record. Returns ErrWalletTaken
	// when another record already holds the address.
	SetWallet(ctx context.Context, userID int64, walletRaw, walletFriendly string) (*models.User, error)
}
