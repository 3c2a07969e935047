package service

import (
	"context"
	"errors"

	"ton-arcade-backend/internal/features/game/models"
	"ton-arcade-backend/internal/features/game/repository"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

var ErrInvalidSubmission = errors.New("invalid score submission")

type GameService interface {
	SubmitScore(ctx context.Context, userID int64, submission *models.ScoreSubmission) (*models.GameResult, error)
	Leaderboard(ctx context.Context, gameName string, limit int) ([]*models.LeaderboardEntry, error)
}

type gameService struct {
	repo repository.GameRepository
}

func NewGameService(repo repository.GameRepository) GameService {
	return &gameService{repo: repo}
}

func (s *gameService) SubmitScore(ctx context.Context, userID int64, submission *models.ScoreSubmission) (*models.GameResult, error) {
	if submission.Game == "" || submission.Score < 0 {
		return nil, ErrInvalidSubmission
	}
	return s.repo.SubmitScore(ctx, userID, submission.Game, submission.Score)
}

func (s *gameService) Leaderboard(ctx context.Context, gameName string, limit int) ([]*models.LeaderboardEntry, error) {
	if gameName == "" {
		return nil, ErrInvalidSubmission
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	return s.repo.Leaderboard(ctx, gameName, limit)
}
