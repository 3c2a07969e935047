package repository

import (
	"context"

	"ton-arcade-backend/internal/features/game/models"
)

type GameRepository interface {
	// SubmitScore appends a result row and bumps the user's games_played
	// counter in one transaction.
	SubmitScore(ctx context.Context, userID int64, gameName string, score float64) (*models.GameResult, error)

	// Leaderboard returns the top best-scores for a game, highest first.
	Leaderboard(ctx context.Context, gameName string, limit int) ([]*models.LeaderboardEntry, error)
}
