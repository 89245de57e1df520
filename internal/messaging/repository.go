// internal/messaging/repository.go

package messaging

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Matches
	GetActiveMatchID(ctx context.Context, userID, otherID int64) (int64, error)

	// Messages
	CreateMessage(ctx context.Context, message *Message) error
	GetConversationMessages(ctx context.Context, matchID int64, limit, offset int) ([]*Message, error)
	MarkConversationRead(ctx context.Context, matchID, readerID int64, at time.Time) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// GetActiveMatchID returns the id of the active match between the two users.
func (r *postgresRepository) GetActiveMatchID(ctx context.Context, userID, otherID int64) (int64, error) {
	user1, user2 := userID, otherID
	if user1 > user2 {
		user1, user2 = user2, user1
	}

	var matchID int64
	query := `
		SELECT id FROM matches
		WHERE user1_id = $1 AND user2_id = $2 AND is_active = TRUE
	`

	err := r.db.GetContext(ctx, &matchID, query, user1, user2)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotMatched
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up match %d-%d: %w", user1, user2, err)
	}

	return matchID, nil
}

func (r *postgresRepository) CreateMessage(ctx context.Context, message *Message) error {
	query := `
		INSERT INTO messages (match_id, sender_id, receiver_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowxContext(
		ctx, query,
		message.MatchID, message.SenderID, message.ReceiverID, message.Content, message.CreatedAt,
	).Scan(&message.ID)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetConversationMessages returns one page of a conversation, oldest first.
// Offset counts back from the newest message.
func (r *postgresRepository) GetConversationMessages(ctx context.Context, matchID int64, limit, offset int) ([]*Message, error) {
	query := `
		SELECT id, match_id, sender_id, receiver_id, content, read_at, created_at
		FROM (
			SELECT id, match_id, sender_id, receiver_id, content, read_at, created_at
			FROM messages
			WHERE match_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2 OFFSET $3
		) page
		ORDER BY created_at ASC, id ASC`

	messages := []*Message{}
	if err := r.db.SelectContext(ctx, &messages, query, matchID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to load conversation for match %d: %w", matchID, err)
	}

	return messages, nil
}

// MarkConversationRead stamps every unread message addressed to readerID.
func (r *postgresRepository) MarkConversationRead(ctx context.Context, matchID, readerID int64, at time.Time) (int64, error) {
	query := `
		UPDATE messages
		SET read_at = $3
		WHERE match_id = $1 AND receiver_id = $2 AND read_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, matchID, readerID, at)
	if err != nil {
		return 0, fmt.Errorf("failed to mark conversation read: %w", err)
	}

	return res.RowsAffected()
}
