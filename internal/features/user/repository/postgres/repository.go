package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ton-arcade-backend/internal/features/user/models"
	"ton-arcade-backend/internal/features/user/repository"

	"github.com/lib/pq"
)

const userColumns = `id, telegram_id, wallet_raw, wallet_friendly, username, first_name, last_name, photo_url,
	games_played, tournaments_won, total_earned, created_at, updated_at`

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.UserRepository {
	return &postgresRepository{db: db}
}

// UpsertTelegram создает или обновляет пользователя одним запросом.
// (xmax = 0) верно только для свежевставленной строки, поэтому из того же
// round-trip узнаем, сработала ли ветка INSERT или DO UPDATE.
func (r *postgresRepository) UpsertTelegram(ctx context.Context, telegramID int64, profile models.Profile) (*models.User, bool, error) {
	query := `
		INSERT INTO users (telegram_id, username, first_name, last_name, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			photo_url = EXCLUDED.photo_url,
			updated_at = NOW()
		RETURNING ` + userColumns + `, (xmax = 0)
	`

	row := r.db.QueryRowContext(ctx, query,
		telegramID, profile.Username, profile.FirstName, profile.LastName, profile.PhotoURL)
	return scanUserCreated(row)
}

func (r *postgresRepository) UpsertWallet(ctx context.Context, walletRaw, walletFriendly string) (*models.User, bool, error) {
	query := `
		INSERT INTO users (wallet_raw, wallet_friendly)
		VALUES ($1, $2)
		ON CONFLICT (wallet_raw) DO UPDATE SET
			wallet_friendly = EXCLUDED.wallet_friendly,
			updated_at = NOW()
		RETURNING ` + userColumns + `, (xmax = 0)
	`

	row := r.db.QueryRowContext(ctx, query, walletRaw, walletFriendly)
	return scanUserCreated(row)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *postgresRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	return r.getBy(ctx, "telegram_id = $1", telegramID)
}

func (r *postgresRepository) GetByWallet(ctx context.Context, walletRaw string) (*models.User, error) {
	return r.getBy(ctx, "wallet_raw = $1", walletRaw)
}

func (r *postgresRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *postgresRepository) SetWallet(ctx context.Context, userID int64, walletRaw, walletFriendly string) (*models.User, error) {
	query := `
		UPDATE users
		SET wallet_raw = $2, wallet_friendly = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, userID, walletRaw, walletFriendly))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, repository.ErrWalletTaken
		}
		return nil, fmt.Errorf("failed to set wallet: %w", err)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.TelegramID, &user.WalletRaw, &user.WalletFriendly,
		&user.Username, &user.FirstName, &user.LastName, &user.PhotoURL,
		&user.GamesPlayed, &user.TournamentsWon, &user.TotalEarned,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func scanUserCreated(row rowScanner) (*models.User, bool, error) {
	var user models.User
	var created bool
	err := row.Scan(
		&user.ID, &user.TelegramID, &user.WalletRaw, &user.WalletFriendly,
		&user.Username, &user.FirstName, &user.LastName, &user.PhotoURL,
		&user.GamesPlayed, &user.TournamentsWon, &user.TotalEarned,
		&user.CreatedAt, &user.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &user, created, nil
}
