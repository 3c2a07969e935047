package service

import (
	"context"
	"errors"

	"ton-arcade-backend/internal/features/auth/wallet"
	"ton-arcade-backend/internal/features/user/models"
	"ton-arcade-backend/internal/features/user/repository"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrBadExternalID = errors.New("malformed external id")
)

type UserService interface {
	// LoginTelegram is the find-or-create path for a verified Telegram
	// identity. The asserted display fields overwrite the stored ones.
	LoginTelegram(ctx context.Context, telegramID int64, profile models.Profile) (*models.User, bool, error)

	// LoginWallet is the find-or-create path for a wallet identity. The
	// address pair must already have passed the wallet policy.
	LoginWallet(ctx context.Context, walletRaw, walletFriendly string) (*models.User, bool, error)

	GetByExternalID(ctx context.Context, externalID models.ExternalID) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// UpdateWallet binds a wallet to the identified record after validating
	// the address pair against the configured policy.
	UpdateWallet(ctx context.Context, externalID models.ExternalID, walletRaw, walletFriendly string) (*models.User, error)
}

type userService struct {
	repo   repository.UserRepository
	policy wallet.Policy
}

func NewUserService(repo repository.UserRepository, policy wallet.Policy) UserService {
	return &userService{repo: repo, policy: policy}
}

func (s *userService) LoginTelegram(ctx context.Context, telegramID int64, profile models.Profile) (*models.User, bool, error) {
	return s.repo.UpsertTelegram(ctx, telegramID, profile)
}

func (s *userService) LoginWallet(ctx context.Context, walletRaw, walletFriendly string) (*models.User, bool, error) {
	return s.repo.UpsertWallet(ctx, walletRaw, walletFriendly)
}

func (s *userService) GetByExternalID(ctx context.Context, externalID models.ExternalID) (*models.User, error) {
	if telegramID, ok := externalID.Telegram(); ok {
		return s.get(s.repo.GetByTelegramID(ctx, telegramID))
	}
	if walletRaw, ok := externalID.Wallet(); ok {
		return s.get(s.repo.GetByWallet(ctx, walletRaw))
	}
	return nil, ErrBadExternalID
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.get(s.repo.GetByID(ctx, id))
}

func (s *userService) UpdateWallet(ctx context.Context, externalID models.ExternalID, walletRaw, walletFriendly string) (*models.User, error) {
	if err := s.policy.Validate(walletRaw, walletFriendly); err != nil {
		return nil, err
	}

	user, err := s.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return s.repo.SetWallet(ctx, user.ID, walletRaw, walletFriendly)
}

func (s *userService) get(user *models.User, err error) (*models.User, error) {
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
