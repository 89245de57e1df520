package datecard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type Repository interface {
	// Matches & profiles
	GetMatchParticipants(ctx context.Context, matchID int64) (*Participants, error)
	GetProfile(ctx context.Context, userID int64) (*Profile, error)

	// Date cards
	InsertDateCard(ctx context.Context, card *DateCard) error
	FindDateCardByMatch(ctx context.Context, matchID int64) (*DateCard, error)
	DeleteDateCardsByMatch(ctx context.Context, matchID int64) (int64, error)
	FindMatchesWithoutDateCard(ctx context.Context, limit int) ([]int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetMatchParticipants(ctx context.Context, matchID int64) (*Participants, error) {
	var p Participants
	query := `
		SELECT id, user1_id, user2_id
		FROM matches
		WHERE id = $1 AND is_active = TRUE
	`

	err := r.db.GetContext(ctx, &p, query, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	return &p, nil
}

func (r *postgresRepository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	query := `
		SELECT id, COALESCE(interests, '{}'), COALESCE(location_name, '')
		FROM users
		WHERE id = $1
	`

	err := r.db.QueryRowxContext(ctx, query, userID).Scan(&p.ID, pq.Array(&p.Interests), &p.LocationName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %d: %w", userID, err)
	}

	return &p, nil
}

func (r *postgresRepository) InsertDateCard(ctx context.Context, card *DateCard) error {
	query := `
		INSERT INTO date_cards (
			match_id, title, description, location_name, location_address,
			latitude, longitude, scheduled_date, image_url, interest_category
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		card.MatchID, card.Title, card.Description, card.LocationName, card.LocationAddress,
		card.Latitude, card.Longitude, card.ScheduledDate, card.ImageURL, card.InterestCategory,
	).Scan(&card.ID, &card.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDateCardExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert date card for match %d: %w", card.MatchID, err)
	}

	return nil
}

func (r *postgresRepository) FindDateCardByMatch(ctx context.Context, matchID int64) (*DateCard, error) {
	var card DateCard
	query := `
		SELECT id, match_id, title, description, location_name, location_address,
		       latitude, longitude, scheduled_date, image_url, interest_category, created_at
		FROM date_cards
		WHERE match_id = $1
		ORDER BY created_at ASC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &card, query, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDateCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load date card for match %d: %w", matchID, err)
	}

	return &card, nil
}

func (r *postgresRepository) DeleteDateCardsByMatch(ctx context.Context, matchID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM date_cards WHERE match_id = $1`, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete date cards for match %d: %w", matchID, err)
	}
	return res.RowsAffected()
}

func (r *postgresRepository) FindMatchesWithoutDateCard(ctx context.Context, limit int) ([]int64, error) {
	var ids []int64
	query := `
		SELECT m.id
		FROM matches m
		LEFT JOIN date_cards dc ON dc.match_id = m.id
		WHERE m.is_active = TRUE AND dc.id IS NULL
		ORDER BY m.matched_at ASC
		LIMIT $1
	`

	if err := r.db.SelectContext(ctx, &ids, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list matches without date cards: %w", err)
	}

	return ids, nil
}
