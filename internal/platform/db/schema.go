package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is applied idempotently at startup. The unique constraints on
// telegram_id and wallet_raw are what make concurrent first logins safe:
// the repositories rely on them via ON CONFLICT instead of check-then-insert.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id               BIGSERIAL PRIMARY KEY,
	telegram_id      BIGINT UNIQUE,
	wallet_raw       TEXT UNIQUE,
	wallet_friendly  TEXT UNIQUE,
	username         TEXT NOT NULL DEFAULT '',
	first_name       TEXT NOT NULL DEFAULT '',
	last_name        TEXT NOT NULL DEFAULT '',
	photo_url        TEXT NOT NULL DEFAULT '',
	games_played     BIGINT NOT NULL DEFAULT 0,
	tournaments_won  BIGINT NOT NULL DEFAULT 0,
	total_earned     DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT users_identity_present CHECK (telegram_id IS NOT NULL OR wallet_raw IS NOT NULL)
);

CREATE TABLE IF NOT EXISTS game_results (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users(id),
	game_name  TEXT NOT NULL,
	score      DOUBLE PRECISION NOT NULL,
	played_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_game_results_game_score ON game_results (game_name, score DESC);
CREATE INDEX IF NOT EXISTS idx_game_results_user ON game_results (user_id);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
