package dating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Swipes
	RecordSwipe(ctx context.Context, userID, targetID int64, liked bool) error
	HasLiked(ctx context.Context, userID, targetID int64) (bool, error)

	// Matches
	CreateMatch(ctx context.Context, match *Match) (bool, error)
	GetMatch(ctx context.Context, id int64) (*Match, error)
	GetUserMatches(ctx context.Context, userID int64) ([]*Match, error)
	DeactivateMatch(ctx context.Context, match *Match, unmatchedBy int64, at time.Time) error

	// Users
	GetUserInfo(ctx context.Context, userID int64) (*UserInfo, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// Swipe Methods

// RecordSwipe stores the latest decision for the pair; swiping again overwrites it.
func (r *postgresRepository) RecordSwipe(ctx context.Context, userID, targetID int64, liked bool) error {
	query := `
		INSERT INTO swipes (user_id, target_id, liked)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, target_id)
		DO UPDATE SET liked = EXCLUDED.liked, created_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, userID, targetID, liked); err != nil {
		return fmt.Errorf("failed to record swipe %d -> %d: %w", userID, targetID, err)
	}
	return nil
}

func (r *postgresRepository) HasLiked(ctx context.Context, userID, targetID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM swipes
			WHERE user_id = $1 AND target_id = $2 AND liked = TRUE
		)
	`

	err := r.db.GetContext(ctx, &exists, query, userID, targetID)
	return exists, err
}

// Match Methods

// CreateMatch inserts the pair or reactivates a dissolved match. It reports
// false, and loads the existing row into match, when the pair is already active.
func (r *postgresRepository) CreateMatch(ctx context.Context, match *Match) (bool, error) {
	// Ensure user1_id < user2_id for consistency
	if match.User1ID > match.User2ID {
		match.User1ID, match.User2ID = match.User2ID, match.User1ID
	}

	query := `
		INSERT INTO matches (user1_id, user2_id, match_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (user1_id, user2_id)
		DO UPDATE SET
			match_type = EXCLUDED.match_type,
			is_active = TRUE,
			unmatched_by = NULL,
			unmatched_at = NULL,
			matched_at = CURRENT_TIMESTAMP
		WHERE matches.is_active = FALSE
		RETURNING id, is_active, matched_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		match.User1ID, match.User2ID, match.MatchType,
	).Scan(&match.ID, &match.IsActive, &match.MatchedAt)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to create match: %w", err)
	}

	// The conflict row was active, so the update was skipped
	existing := `
		SELECT id, user1_id, user2_id, match_type, is_active, unmatched_by, unmatched_at, matched_at
		FROM matches
		WHERE user1_id = $1 AND user2_id = $2
	`
	if err := r.db.GetContext(ctx, match, existing, match.User1ID, match.User2ID); err != nil {
		return false, fmt.Errorf("failed to load existing match: %w", err)
	}

	return false, nil
}

func (r *postgresRepository) GetMatch(ctx context.Context, id int64) (*Match, error) {
	var match Match
	query := `
		SELECT id, user1_id, user2_id, match_type, is_active, unmatched_by, unmatched_at, matched_at
		FROM matches
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &match, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load match %d: %w", id, err)
	}

	return &match, nil
}

func (r *postgresRepository) GetUserMatches(ctx context.Context, userID int64) ([]*Match, error) {
	query := `
		SELECT m.id, m.user1_id, m.user2_id, m.match_type, m.is_active, m.matched_at,
		       u.id, u.username, u.display_name, u.profile_picture
		FROM matches m
		JOIN users u ON u.id = CASE WHEN m.user1_id = $1 THEN m.user2_id ELSE m.user1_id END
		WHERE (m.user1_id = $1 OR m.user2_id = $1) AND m.is_active = TRUE
		ORDER BY m.matched_at DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for user %d: %w", userID, err)
	}
	defer rows.Close()

	matches := []*Match{}
	for rows.Next() {
		var match Match
		var matchedUser UserInfo

		err := rows.Scan(
			&match.ID, &match.User1ID, &match.User2ID, &match.MatchType,
			&match.IsActive, &match.MatchedAt,
			&matchedUser.ID, &matchedUser.Username,
			&matchedUser.DisplayName, &matchedUser.ProfilePicture,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}

		match.MatchedUser = &matchedUser
		matches = append(matches, &match)
	}

	return matches, rows.Err()
}

// DeactivateMatch dissolves the match and withdraws the unmatching user's like,
// so a later right swipe from the other user does not revive the pair.
func (r *postgresRepository) DeactivateMatch(ctx context.Context, match *Match, unmatchedBy int64, at time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin unmatch: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE matches
		SET is_active = FALSE, unmatched_by = $2, unmatched_at = $3
		WHERE id = $1 AND is_active = TRUE
	`, match.ID, unmatchedBy, at)
	if err != nil {
		return fmt.Errorf("failed to deactivate match %d: %w", match.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMatchNotFound
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE swipes
		SET liked = FALSE, created_at = CURRENT_TIMESTAMP
		WHERE user_id = $1 AND target_id = $2
	`, unmatchedBy, match.Other(unmatchedBy))
	if err != nil {
		return fmt.Errorf("failed to withdraw like for match %d: %w", match.ID, err)
	}

	return tx.Commit()
}

// User Methods

func (r *postgresRepository) GetUserInfo(ctx context.Context, userID int64) (*UserInfo, error) {
	var user UserInfo
	query := `
		SELECT id, username, COALESCE(display_name, username) AS display_name, profile_picture
		FROM users
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &user, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	return &user, nil
}
