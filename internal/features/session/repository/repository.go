package repository

import (
	"context"
	"errors"

	"ton-arcade-backend/internal/features/session/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Repository stores opaque-handle sessions. Implementations must treat the
// handle as an opaque key and may evict entries at or after ExpiresAt; the
// service re-checks expiry on read either way.
type Repository interface {
	Save(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, handle string) (*models.Session, error)
	Delete(ctx context.Context, handle string) error
}
