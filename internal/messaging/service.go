// internal/messaging/service.go

package messaging

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrCannotMessageSelf = errors.New("cannot message yourself")
	ErrNotMatched        = errors.New("you can only message your matches")
	ErrEmptyMessage      = errors.New("message content is required")
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Notifier pushes realtime events to connected users.
type Notifier interface {
	Publish(userID int64, eventType string, payload interface{}) bool
}

type Service interface {
	SendMessage(ctx context.Context, senderID int64, req *SendMessageRequest) (*Message, error)
	GetConversation(ctx context.Context, userID, otherID int64, limit, offset int) ([]*Message, error)
	MarkConversationRead(ctx context.Context, userID, otherID int64) (int64, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, notifier Notifier, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
		logger:   logger,
	}
}

// SendMessage stores a message between active match participants and pushes
// newMessage to the receiver when they are connected.
func (s *service) SendMessage(ctx context.Context, senderID int64, req *SendMessageRequest) (*Message, error) {
	if senderID == req.ReceiverID {
		return nil, ErrCannotMessageSelf
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	matchID, err := s.repo.GetActiveMatchID(ctx, senderID, req.ReceiverID)
	if err != nil {
		return nil, err
	}

	message := &Message{
		MatchID:    matchID,
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    content,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	messagesSent.Inc()

	// Offline receivers read it from the conversation later
	if s.notifier != nil {
		s.notifier.Publish(req.ReceiverID, EventNewMessage, &NewMessageEvent{Message: message})
	}

	s.logger.Debug("message sent",
		zap.Int64("message_id", message.ID),
		zap.Int64("match_id", matchID),
		zap.Int64("sender_id", senderID))

	return message, nil
}

func (s *service) GetConversation(ctx context.Context, userID, otherID int64, limit, offset int) ([]*Message, error) {
	if userID == otherID {
		return nil, ErrCannotMessageSelf
	}

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	matchID, err := s.repo.GetActiveMatchID(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	return s.repo.GetConversationMessages(ctx, matchID, limit, offset)
}

func (s *service) MarkConversationRead(ctx context.Context, userID, otherID int64) (int64, error) {
	if userID == otherID {
		return 0, ErrCannotMessageSelf
	}

	matchID, err := s.repo.GetActiveMatchID(ctx, userID, otherID)
	if err != nil {
		return 0, err
	}

	return s.repo.MarkConversationRead(ctx, matchID, userID, s.now().UTC())
}
