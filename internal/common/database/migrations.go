// internal/common/database/migrations.go
// Schema for the tables the date card engine reads and writes

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(100) UNIQUE NOT NULL,
		display_name VARCHAR(100),
		profile_picture TEXT,
		bio TEXT,
		interests TEXT[] DEFAULT '{}',
		location_name VARCHAR(120),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS swipes (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		target_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		liked BOOLEAN NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, target_id)
	)`,

	`CREATE TABLE IF NOT EXISTS matches (
		id SERIAL PRIMARY KEY,
		user1_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		user2_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		match_type VARCHAR(30) DEFAULT 'mutual_like',
		is_active BOOLEAN DEFAULT TRUE,
		unmatched_by INTEGER REFERENCES users(id),
		unmatched_at TIMESTAMP,
		matched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		CHECK (user1_id < user2_id),
		UNIQUE (user1_id, user2_id)
	)`,

	`CREATE TABLE IF NOT EXISTS date_cards (
		id SERIAL PRIMARY KEY,
		match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
		title VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		location_name VARCHAR(255) NOT NULL,
		location_address TEXT NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		scheduled_date TIMESTAMPTZ NOT NULL,
		image_url TEXT NOT NULL,
		interest_category VARCHAR(50) NOT NULL,
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (match_id)
	)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id SERIAL PRIMARY KEY,
		match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
		sender_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		read_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_swipes_target_id ON swipes(target_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_user1_id ON matches(user1_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_user2_id ON matches(user2_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_active ON matches(is_active, matched_at)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_match_created ON messages(match_id, created_at)`,
}

// RunMigrations creates missing tables and indexes. Statements are idempotent.
func RunMigrations(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	for i, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			// Concurrent starts can race on CREATE INDEX
			if !strings.Contains(err.Error(), "already exists") {
				return fmt.Errorf("migration %d failed: %w", i+1, err)
			}
			logger.Debug("migration skipped", zap.Int("migration", i+1), zap.Error(err))
		}
	}

	logger.Info("database migrations completed", zap.Int("statements", len(migrations)))
	return nil
}
