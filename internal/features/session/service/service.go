package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"ton-arcade-backend/internal/features/session/models"
	"ton-arcade-backend/internal/features/session/repository"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidToken    = errors.New("invalid session token")
)

// Service issues and resolves session credentials. A session moves
// Issued → Valid → {Expired | Revoked} and never becomes valid again.
type Service interface {
	// Issue mints a credential for a verified identity.
	Issue(ctx context.Context, externalID string) (credential string, expiresAt time.Time, err error)

	// Resolve recovers the identity behind a credential or fails with one of
	// the package sentinels.
	Resolve(ctx context.Context, credential string) (externalID string, err error)

	// Revoke invalidates the credential server-side where the variant
	// supports it.
	Revoke(ctx context.Context, credential string) error
}

// NewOpaque returns the opaque-handle variant: a random 256-bit handle
// referencing server-held state. Logout is real revocation.
func NewOpaque(repo repository.Repository, ttl time.Duration) Service {
	return &opaqueService{repo: repo, ttl: ttl}
}

// NewJWT returns the signed-token variant: a self-contained HS256 token.
// Revoke is a no-op — a signed token stays valid until its expiry even after
// logout; only the client-held cookie is deleted. Known limitation of the
// variant, not a bug.
func NewJWT(secretKey string, ttl time.Duration) Service {
	return &jwtService{secret: []byte(secretKey), ttl: ttl}
}

type opaqueService struct {
	repo repository.Repository
	ttl  time.Duration
}

func (s *opaqueService) Issue(ctx context.Context, externalID string) (string, time.Time, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, fmt.Errorf("generate session handle: %w", err)
	}

	now := time.Now()
	session := &models.Session{
		Handle:     hex.EncodeToString(buf),
		ExternalID: externalID,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.ttl),
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return "", time.Time{}, err
	}
	return session.Handle, session.ExpiresAt, nil
}

func (s *opaqueService) Resolve(ctx context.Context, credential string) (string, error) {
	session, err := s.repo.Get(ctx, credential)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	// Expiry is lazy: expired entries are evicted on read, not swept.
	if session.Expired(time.Now()) {
		_ = s.repo.Delete(ctx, credential)
		return "", ErrSessionExpired
	}

	return session.ExternalID, nil
}

func (s *opaqueService) Revoke(ctx context.Context, credential string) error {
	return s.repo.Delete(ctx, credential)
}

type jwtService struct {
	secret []byte
	ttl    time.Duration
}

func (s *jwtService) Issue(_ context.Context, externalID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   externalID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *jwtService) Resolve(_ context.Context, credential string) (string, error) {
	token, err := jwt.ParseWithClaims(credential, &jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrSessionExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Revoke cannot invalidate a signed token before its natural expiry; the
// handler deletes the cookie and that is all the jwt variant can do.
func (s *jwtService) Revoke(context.Context, string) error {
	return nil
}
