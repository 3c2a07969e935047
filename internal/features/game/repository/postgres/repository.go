package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ton-arcade-backend/internal/features/game/models"
	"ton-arcade-backend/internal/features/game/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.GameRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) SubmitScore(ctx context.Context, userID int64, gameName string, score float64) (*models.GameResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var result models.GameResult
	err = tx.QueryRowContext(ctx, `
		INSERT INTO game_results (user_id, game_name, score)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, game_name, score, played_at
	`, userID, gameName, score).Scan(
		&result.ID, &result.UserID, &result.GameName, &result.Score, &result.PlayedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert game result: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET games_played = games_played + 1, updated_at = NOW()
		WHERE id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to bump games_played: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit score: %w", err)
	}
	return &result, nil
}

func (r *postgresRepository) Leaderboard(ctx context.Context, gameName string, limit int) ([]*models.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.first_name, MAX(r.score) AS best_score
		FROM game_results r
		JOIN users u ON u.id = r.user_id
		WHERE r.game_name = $1
		GROUP BY u.id, u.username, u.first_name
		ORDER BY best_score DESC
		LIMIT $2
	`, gameName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.FirstName, &entry.BestScore); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
