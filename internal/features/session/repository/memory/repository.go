// Package memory holds sessions in process memory. Used in tests and for
// single-instance runs without Redis.
package memory

import (
	"context"
	"sync"

	"ton-arcade-backend/internal/features/session/models"
	"ton-arcade-backend/internal/features/session/repository"
)

type Repository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewRepository() *Repository {
	return &Repository{sessions: make(map[string]models.Session)}
}

func (r *Repository) Save(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Handle] = *session
	return nil
}

func (r *Repository) Get(_ context.Context, handle string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[handle]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &session, nil
}

func (r *Repository) Delete(_ context.Context, handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, handle)
	return nil
}
