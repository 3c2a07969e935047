package service

import (
	"context"
	"testing"
	"time"

	"ton-arcade-backend/internal/features/session/models"
	"ton-arcade-backend/internal/features/session/repository"
	"ton-arcade-backend/internal/features/session/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const externalID = "tg:123456789"

func TestOpaque_IssueResolveRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewOpaque(memory.NewRepository(), time.Hour)

	credential, expiresAt, err := svc.Issue(ctx, externalID)
	require.NoError(t, err)
	assert.Len(t, credential, 64, "expect 32 random bytes hex encoded")
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	resolved, err := svc.Resolve(ctx, credential)
	require.NoError(t, err)
	assert.Equal(t, externalID, resolved)
}

func TestOpaque_HandlesAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := NewOpaque(memory.NewRepository(), time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		credential, _, err := svc.Issue(ctx, externalID)
		require.NoError(t, err)
		assert.False(t, seen[credential])
		seen[credential] = true
	}
}

func TestOpaque_UnknownHandle(t *testing.T) {
	svc := NewOpaque(memory.NewRepository(), time.Hour)

	_, err := svc.Resolve(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestOpaque_ExpiredSessionIsEvicted(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	svc := NewOpaque(repo, time.Hour)

	// Plant an already-expired entry directly: the memory store does not
	// sweep, so eviction has to happen on the resolve path.
	session := &models.Session{
		Handle:     "aaaa",
		ExternalID: externalID,
		IssuedAt:   time.Now().Add(-2 * time.Hour),
		ExpiresAt:  time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Save(ctx, session))

	_, err := svc.Resolve(ctx, "aaaa")
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Second resolve sees the evicted entry as gone: no way back to Valid.
	_, err = svc.Resolve(ctx, "aaaa")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = repo.Get(ctx, "aaaa")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestOpaque_RevokeIsRealRevocation(t *testing.T) {
	ctx := context.Background()
	svc := NewOpaque(memory.NewRepository(), time.Hour)

	credential, _, err := svc.Issue(ctx, externalID)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, credential))

	_, err = svc.Resolve(ctx, credential)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestJWT_IssueResolveRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewJWT("test-secret-key", 7*24*time.Hour)

	credential, expiresAt, err := svc.Issue(ctx, externalID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	resolved, err := svc.Resolve(ctx, credential)
	require.NoError(t, err)
	assert.Equal(t, externalID, resolved)
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	ctx := context.Background()
	svc := NewJWT("test-secret-key", -time.Minute)

	credential, _, err := svc.Issue(ctx, externalID)
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, credential)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestJWT_RejectsTamperedToken(t *testing.T) {
	ctx := context.Background()
	svc := NewJWT("test-secret-key", time.Hour)

	credential, _, err := svc.Issue(ctx, externalID)
	require.NoError(t, err)

	tampered := credential[:len(credential)-2] + "xx"
	_, err = svc.Resolve(ctx, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_RejectsTokenSignedWithOtherKey(t *testing.T) {
	ctx := context.Background()
	issuer := NewJWT("key-one", time.Hour)
	resolver := NewJWT("key-two", time.Hour)

	credential, _, err := issuer.Issue(ctx, externalID)
	require.NoError(t, err)

	_, err = resolver.Resolve(ctx, credential)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_RevokeCannotInvalidate(t *testing.T) {
	// Documented limitation: a signed token stays valid until expiry even
	// after logout. Revoke is a no-op for this variant.
	ctx := context.Background()
	svc := NewJWT("test-secret-key", time.Hour)

	credential, _, err := svc.Issue(ctx, externalID)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, credential))

	resolved, err := svc.Resolve(ctx, credential)
	require.NoError(t, err)
	assert.Equal(t, externalID, resolved)
}
