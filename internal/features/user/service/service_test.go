package service

import (
	"context"
	"strings"
	"testing"

	"ton-arcade-backend/internal/features/auth/wallet"
	"ton-arcade-backend/internal/features/user/models"
	"ton-arcade-backend/internal/features/user/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository mimics the postgres upsert semantics in memory: keyed on the
// unique identity columns, display fields last-write-wins, counters preserved.
type fakeRepository struct {
	nextID     int64
	byTelegram map[int64]*models.User
	byWallet   map[string]*models.User
	byID       map[int64]*models.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:     1,
		byTelegram: make(map[int64]*models.User),
		byWallet:   make(map[string]*models.User),
		byID:       make(map[int64]*models.User),
	}
}

func (f *fakeRepository) UpsertTelegram(_ context.Context, telegramID int64, profile models.Profile) (*models.User, bool, error) {
	if user, ok := f.byTelegram[telegramID]; ok {
		user.Username = profile.Username
		user.FirstName = profile.FirstName
		user.LastName = profile.LastName
		user.PhotoURL = profile.PhotoURL
		clone := *user
		return &clone, false, nil
	}
	user := &models.User{
		ID:         f.nextID,
		TelegramID: &telegramID,
		Username:   profile.Username,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		PhotoURL:   profile.PhotoURL,
	}
	f.nextID++
	f.byTelegram[telegramID] = user
	f.byID[user.ID] = user
	clone := *user
	return &clone, true, nil
}

func (f *fakeRepository) UpsertWallet(_ context.Context, walletRaw, walletFriendly string) (*models.User, bool, error) {
	if user, ok := f.byWallet[walletRaw]; ok {
		user.WalletFriendly = &walletFriendly
		clone := *user
		return &clone, false, nil
	}
	user := &models.User{ID: f.nextID, WalletRaw: &walletRaw, WalletFriendly: &walletFriendly}
	f.nextID++
	f.byWallet[walletRaw] = user
	f.byID[user.ID] = user
	clone := *user
	return &clone, true, nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	if user, ok := f.byID[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeRepository) GetByTelegramID(_ context.Context, telegramID int64) (*models.User, error) {
	if user, ok := f.byTelegram[telegramID]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeRepository) GetByWallet(_ context.Context, walletRaw string) (*models.User, error) {
	if user, ok := f.byWallet[walletRaw]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeRepository) SetWallet(_ context.Context, userID int64, walletRaw, walletFriendly string) (*models.User, error) {
	if owner, ok := f.byWallet[walletRaw]; ok && owner.ID != userID {
		return nil, repository.ErrWalletTaken
	}
	user, ok := f.byID[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.WalletRaw = &walletRaw
	user.WalletFriendly = &walletFriendly
	f.byWallet[walletRaw] = user
	clone := *user
	return &clone, nil
}

func newTestService() (UserService, *fakeRepository) {
	repo := newFakeRepository()
	policy := wallet.NewPolicy(wallet.Config{MinLength: 40, RequirePrefix: true})
	return NewUserService(repo, policy), repo
}

const (
	testRaw      = "0:0000000000000000000000000000000000000000000000000000000000000000"
	testFriendly = "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAM9c"
)

func TestLoginTelegram_FindOrCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	first, created, err := svc.LoginTelegram(ctx, 42, models.Profile{Username: "alice"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", first.Username)
	assert.Zero(t, first.GamesPlayed)

	// Re-login overwrites display fields, keeps the record.
	second, created, err := svc.LoginTelegram(ctx, 42, models.Profile{Username: "alice_renamed"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "alice_renamed", second.Username)
}

func TestLoginWallet_FindOrCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	first, created, err := svc.LoginWallet(ctx, testRaw, testFriendly)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, first.WalletRaw)
	assert.Equal(t, testRaw, *first.WalletRaw)

	second, created, err := svc.LoginWallet(ctx, testRaw, testFriendly)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetByExternalID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	tgUser, _, err := svc.LoginTelegram(ctx, 42, models.Profile{Username: "alice"})
	require.NoError(t, err)
	walletUser, _, err := svc.LoginWallet(ctx, testRaw, testFriendly)
	require.NoError(t, err)

	got, err := svc.GetByExternalID(ctx, models.TelegramExternalID(42))
	require.NoError(t, err)
	assert.Equal(t, tgUser.ID, got.ID)

	got, err = svc.GetByExternalID(ctx, models.WalletExternalID(testRaw))
	require.NoError(t, err)
	assert.Equal(t, walletUser.ID, got.ID)

	_, err = svc.GetByExternalID(ctx, models.TelegramExternalID(999))
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetByExternalID(ctx, models.ExternalID("bogus"))
	assert.ErrorIs(t, err, ErrBadExternalID)
}

func TestUpdateWallet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, _, err := svc.LoginTelegram(ctx, 42, models.Profile{Username: "alice"})
	require.NoError(t, err)

	updated, err := svc.UpdateWallet(ctx, models.TelegramExternalID(42), testRaw, testFriendly)
	require.NoError(t, err)
	require.NotNil(t, updated.WalletFriendly)
	assert.Equal(t, testFriendly, *updated.WalletFriendly)
}

func TestUpdateWallet_RejectsBadFormat(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	_, _, err := svc.LoginTelegram(ctx, 42, models.Profile{})
	require.NoError(t, err)

	_, err = svc.UpdateWallet(ctx, models.TelegramExternalID(42), "0:abc", "xyz")
	assert.ErrorIs(t, err, wallet.ErrInvalidFormat)

	// Validation failed before the store was touched.
	stored, err := repo.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, stored.WalletRaw)
}

func TestUpdateWallet_Conflict(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, _, err := svc.LoginWallet(ctx, testRaw, testFriendly)
	require.NoError(t, err)
	_, _, err = svc.LoginTelegram(ctx, 42, models.Profile{})
	require.NoError(t, err)

	_, err = svc.UpdateWallet(ctx, models.TelegramExternalID(42), testRaw, testFriendly)
	assert.ErrorIs(t, err, repository.ErrWalletTaken)
}

func TestUpdateWallet_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	friendly := "EQ" + strings.Repeat("a", 46)
	_, err := svc.UpdateWallet(ctx, models.TelegramExternalID(7), testRaw, friendly)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
