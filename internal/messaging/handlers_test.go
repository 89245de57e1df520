package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-datecards/internal/auth"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SendMessage(ctx context.Context, senderID int64, req *SendMessageRequest) (*Message, error) {
	args := m.Called(ctx, senderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Message), args.Error(1)
}

func (m *MockService) GetConversation(ctx context.Context, userID, otherID int64, limit, offset int) ([]*Message, error) {
	args := m.Called(ctx, userID, otherID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Message), args.Error(1)
}

func (m *MockService) MarkConversationRead(ctx context.Context, userID, otherID int64) (int64, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Get(0).(int64), args.Error(1)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func serve(handler http.HandlerFunc, method, target, body string, userID int64, vars map[string]string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID != 0 {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	req = mux.SetURLVars(req, vars)

	rec := httptest.NewRecorder()
	handler(rec, req)

	var env envelope
	json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestHandler_SendMessage(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil)
		svc.On("SendMessage", mock.Anything, int64(1), &SendMessageRequest{ReceiverID: 2, Content: "hello"}).
			Return(&Message{ID: 41, SenderID: 1, ReceiverID: 2, Content: "hello"}, nil)

		rec, body := serve(h.SendMessage, http.MethodPost, "/api/v1/messages", `{"receiver_id":2,"content":"hello"}`, 1, nil)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var msg Message
		require.NoError(t, json.Unmarshal(body.Data, &msg))
		assert.Equal(t, int64(41), msg.ID)
	})

	tests := []struct {
		name       string
		userID     int64
		body       string
		serviceErr error
		wantStatus int
	}{
		{"unauthenticated", 0, `{"receiver_id":2,"content":"hi"}`, nil, http.StatusUnauthorized},
		{"malformed body", 1, `{`, nil, http.StatusBadRequest},
		{"missing receiver", 1, `{"content":"hi"}`, nil, http.StatusBadRequest},
		{"content too long", 1, `{"receiver_id":2,"content":"` + strings.Repeat("a", 2001) + `"}`, nil, http.StatusBadRequest},
		{"not matched", 1, `{"receiver_id":3,"content":"hi"}`, ErrNotMatched, http.StatusForbidden},
		{"blank content", 1, `{"receiver_id":2,"content":"   "}`, ErrEmptyMessage, http.StatusBadRequest},
		{"storage failure", 1, `{"receiver_id":2,"content":"hi"}`, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, nil)
			if tt.serviceErr != nil {
				svc.On("SendMessage", mock.Anything, tt.userID, mock.Anything).Return(nil, tt.serviceErr)
			}

			rec, body := serve(h.SendMessage, http.MethodPost, "/api/v1/messages", tt.body, tt.userID, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, body.Success)
			if tt.serviceErr == nil {
				svc.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHandler_GetConversation(t *testing.T) {
	t.Run("page", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil)
		svc.On("GetConversation", mock.Anything, int64(2), int64(1), 20, 40).
			Return([]*Message{{ID: 1}, {ID: 2}}, nil)

		rec, body := serve(h.GetConversation, http.MethodGet, "/api/v1/messages/conversations/1?limit=20&offset=40", "", 2,
			map[string]string{"userId": "1"})

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp ConversationResponse
		require.NoError(t, json.Unmarshal(body.Data, &resp))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("not matched", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil)
		svc.On("GetConversation", mock.Anything, int64(2), int64(9), 0, 0).Return(nil, ErrNotMatched)

		rec, body := serve(h.GetConversation, http.MethodGet, "/api/v1/messages/conversations/9", "", 2,
			map[string]string{"userId": "9"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, ErrNotMatched.Error(), body.Error)
	})

	t.Run("bad user id", func(t *testing.T) {
		h := NewHandler(new(MockService), nil)

		rec, _ := serve(h.GetConversation, http.MethodGet, "/", "", 2, map[string]string{"userId": "x"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_MarkRead(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, nil)
	svc.On("MarkConversationRead", mock.Anything, int64(2), int64(1)).Return(int64(3), nil)

	rec, body := serve(h.MarkRead, http.MethodPost, "/", "", 2, map[string]string{"userId": "1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp MarkReadResponse
	require.NoError(t, json.Unmarshal(body.Data, &resp))
	assert.Equal(t, int64(3), resp.Updated)
}
