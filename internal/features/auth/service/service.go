package service

import (
	"context"
	"errors"
	"time"

	"ton-arcade-backend/internal/features/auth/models"
	"ton-arcade-backend/internal/features/auth/telegram"
	"ton-arcade-backend/internal/features/auth/wallet"
	usermodels "ton-arcade-backend/internal/features/user/models"
	userservice "ton-arcade-backend/internal/features/user/service"

	initdata "github.com/telegram-mini-apps/init-data-golang"
)

// Service runs the credential-verification half of a login: it checks the
// inbound identity assertion against the trust rule for its method, then
// drives the identity store's find-or-create. Session issuance is the
// handler's concern.
type Service interface {
	LoginWidget(ctx context.Context, req *models.TelegramLoginRequest) (*usermodels.User, bool, error)
	LoginWebApp(ctx context.Context, initData string) (*usermodels.User, bool, error)
	LoginWallet(ctx context.Context, req *models.WalletLoginRequest) (*usermodels.User, bool, error)
}

type service struct {
	verifier *telegram.Verifier
	policy   wallet.Policy
	users    userservice.UserService
	botToken string
	authTTL  time.Duration
}

func NewService(verifier *telegram.Verifier, policy wallet.Policy, users userservice.UserService, botToken string, authTTL time.Duration) Service {
	return &service{
		verifier: verifier,
		policy:   policy,
		users:    users,
		botToken: botToken,
		authTTL:  authTTL,
	}
}

func (s *service) LoginWidget(ctx context.Context, req *models.TelegramLoginRequest) (*usermodels.User, bool, error) {
	if err := s.verifier.Verify(req, time.Now()); err != nil {
		return nil, false, err
	}
	return s.users.LoginTelegram(ctx, req.ID, req.Profile())
}

func (s *service) LoginWebApp(ctx context.Context, raw string) (*usermodels.User, bool, error) {
	if err := initdata.Validate(raw, s.botToken, s.authTTL); err != nil {
		if errors.Is(err, initdata.ErrExpired) {
			return nil, false, telegram.ErrExpired
		}
		return nil, false, telegram.ErrInvalidSignature
	}

	data, err := initdata.Parse(raw)
	if err != nil {
		return nil, false, telegram.ErrInvalidSignature
	}

	profile := usermodels.Profile{
		Username:  data.User.Username,
		FirstName: data.User.FirstName,
		LastName:  data.User.LastName,
		PhotoURL:  data.User.PhotoURL,
	}
	return s.users.LoginTelegram(ctx, data.User.ID, profile)
}

func (s *service) LoginWallet(ctx context.Context, req *models.WalletLoginRequest) (*usermodels.User, bool, error) {
	if err := s.policy.Validate(req.WalletRaw, req.WalletUserFriendly); err != nil {
		return nil, false, err
	}
	return s.users.LoginWallet(ctx, req.WalletRaw, req.WalletUserFriendly)
}
