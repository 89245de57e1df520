package messaging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetActiveMatchID(ctx context.Context, userID, otherID int64) (int64, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CreateMessage(ctx context.Context, message *Message) error {
	args := m.Called(ctx, message)
	if args.Error(0) == nil {
		message.ID = 99
	}
	return args.Error(0)
}

func (m *MockRepository) GetConversationMessages(ctx context.Context, matchID int64, limit, offset int) ([]*Message, error) {
	args := m.Called(ctx, matchID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Message), args.Error(1)
}

func (m *MockRepository) MarkConversationRead(ctx context.Context, matchID, readerID int64, at time.Time) (int64, error) {
	args := m.Called(ctx, matchID, readerID, at)
	return args.Get(0).(int64), args.Error(1)
}

type publishedEvent struct {
	userID    int64
	eventType string
	payload   interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (n *recordingNotifier) Publish(userID int64, eventType string, payload interface{}) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, publishedEvent{userID, eventType, payload})
	return true
}

var fixedNow = time.Date(2024, 6, 3, 18, 30, 0, 0, time.UTC)

func newTestService(repo Repository, notifier Notifier) *service {
	svc := NewService(repo, notifier, zap.NewNop()).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestService_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to the receiver", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := &recordingNotifier{}
		svc := newTestService(repo, notifier)

		repo.On("GetActiveMatchID", ctx, int64(1), int64(2)).Return(int64(7), nil)
		repo.On("CreateMessage", ctx, mock.MatchedBy(func(m *Message) bool {
			return m.MatchID == 7 && m.SenderID == 1 && m.ReceiverID == 2 &&
				m.Content == "see you at eight" && m.CreatedAt.Equal(fixedNow)
		})).Return(nil)

		msg, err := svc.SendMessage(ctx, 1, &SendMessageRequest{ReceiverID: 2, Content: "  see you at eight \n"})
		require.NoError(t, err)

		assert.Equal(t, int64(99), msg.ID)
		require.Len(t, notifier.events, 1)
		assert.Equal(t, int64(2), notifier.events[0].userID)
		assert.Equal(t, EventNewMessage, notifier.events[0].eventType)
		event, ok := notifier.events[0].payload.(*NewMessageEvent)
		require.True(t, ok)
		assert.Same(t, msg, event.Message)
		repo.AssertExpectations(t)
	})

	t.Run("rejects users without an active match", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := &recordingNotifier{}
		svc := newTestService(repo, notifier)

		repo.On("GetActiveMatchID", ctx, int64(1), int64(3)).Return(int64(0), ErrNotMatched)

		_, err := svc.SendMessage(ctx, 1, &SendMessageRequest{ReceiverID: 3, Content: "hi"})

		assert.ErrorIs(t, err, ErrNotMatched)
		assert.Empty(t, notifier.events)
		repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
	})

	t.Run("rejects self and blank content before storage", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)

		_, err := svc.SendMessage(ctx, 1, &SendMessageRequest{ReceiverID: 1, Content: "hi"})
		assert.ErrorIs(t, err, ErrCannotMessageSelf)

		_, err = svc.SendMessage(ctx, 1, &SendMessageRequest{ReceiverID: 2, Content: " \t "})
		assert.ErrorIs(t, err, ErrEmptyMessage)

		repo.AssertNotCalled(t, "GetActiveMatchID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure publishes nothing", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := &recordingNotifier{}
		svc := newTestService(repo, notifier)

		repo.On("GetActiveMatchID", ctx, int64(1), int64(2)).Return(int64(7), nil)
		repo.On("CreateMessage", ctx, mock.Anything).Return(errors.New("disk full"))

		_, err := svc.SendMessage(ctx, 1, &SendMessageRequest{ReceiverID: 2, Content: "hi"})

		assert.EqualError(t, err, "disk full")
		assert.Empty(t, notifier.events)
	})
}

func TestService_GetConversation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, DefaultPageSize, 0},
		{"capped", 1000, 10, MaxPageSize, 10},
		{"negative offset", 20, -5, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := newTestService(repo, nil)
			page := []*Message{{ID: 1}, {ID: 2}}

			repo.On("GetActiveMatchID", ctx, int64(2), int64(1)).Return(int64(7), nil)
			repo.On("GetConversationMessages", ctx, int64(7), tt.wantLimit, tt.wantOffset).Return(page, nil)

			messages, err := svc.GetConversation(ctx, 2, 1, tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, page, messages)
		})
	}

	t.Run("not matched", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		repo.On("GetActiveMatchID", ctx, int64(2), int64(4)).Return(int64(0), ErrNotMatched)

		_, err := svc.GetConversation(ctx, 2, 4, 0, 0)
		assert.ErrorIs(t, err, ErrNotMatched)
	})
}

func TestService_MarkConversationRead(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	repo.On("GetActiveMatchID", ctx, int64(2), int64(1)).Return(int64(7), nil)
	repo.On("MarkConversationRead", ctx, int64(7), int64(2), fixedNow).Return(int64(3), nil)

	updated, err := svc.MarkConversationRead(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	_, err = svc.MarkConversationRead(ctx, 2, 2)
	assert.ErrorIs(t, err, ErrCannotMessageSelf)
}
