// internal/messaging/models.go

package messaging

import (
	"time"
)

// Message is one chat message between the two users of an active match.
type Message struct {
	ID         int64      `json:"id" db:"id"`
	MatchID    int64      `json:"match_id" db:"match_id"`
	SenderID   int64      `json:"sender_id" db:"sender_id"`
	ReceiverID int64      `json:"receiver_id" db:"receiver_id"`
	Content    string     `json:"content" db:"content"`
	ReadAt     *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// Realtime event types
const EventNewMessage = "newMessage"

// NewMessageEvent is pushed to the receiver of a message.
type NewMessageEvent struct {
	Message *Message `json:"message"`
}

// Request DTOs
type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required,max=2000"`
}

type ConversationResponse struct {
	Messages []*Message `json:"messages"`
	Count    int        `json:"count"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}
