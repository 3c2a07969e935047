package models

import "time"

// ScoreSubmission is a gameplay result posted by an authenticated client.
// No anti-cheat validation is applied to the score.
type ScoreSubmission struct {
	Game  string  `json:"game" binding:"required" example:"flappy-ton"`
	Score float64 `json:"score" binding:"required" example:"1250"`
}

type GameResult struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	GameName string    `json:"game_name"`
	Score    float64   `json:"score"`
	PlayedAt time.Time `json:"played_at"`
}

// LeaderboardEntry is a user's best score in one game.
type LeaderboardEntry struct {
	UserID    int64   `json:"user_id"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	BestScore float64 `json:"best_score"`
}
