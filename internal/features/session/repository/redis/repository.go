package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ton-arcade-backend/internal/features/session/models"
	"ton-arcade-backend/internal/features/session/repository"

	"github.com/redis/go-redis/v9"
)

const keyPrefixSession = "session:"

type Repository struct {
	client *redis.Client
}

func NewRepository(client *redis.Client) repository.Repository {
	return &Repository{client: client}
}

func (r *Repository) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	return r.client.Set(ctx, keyPrefixSession+session.Handle, data, ttl).Err()
}

func (r *Repository) Get(ctx context.Context, handle string) (*models.Session, error) {
	data, err := r.client.Get(ctx, keyPrefixSession+handle).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	session.Handle = handle

	return &session, nil
}

func (r *Repository) Delete(ctx context.Context, handle string) error {
	return r.client.Del(ctx, keyPrefixSession+handle).Err()
}
