// internal/auth/middleware.go
// Bearer-token middleware. Tokens are issued by the account service; this
// package only verifies them.

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/imadgeboyega/kiekky-datecards/internal/common/utils"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	usernameKey contextKey = "username"
)

// TokenValidator verifies a raw token and returns its claims.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
}

// JWTValidator validates HS256 tokens signed with a shared secret.
type JWTValidator struct {
	secret string
}

func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{secret: secret}
}

func (v *JWTValidator) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	return utils.ValidateJWT(token, v.secret)
}

// Middleware provides authentication middleware
type Middleware struct {
	validator TokenValidator
}

func NewMiddleware(validator TokenValidator) *Middleware {
	return &Middleware{validator: validator}
}

// Authenticate rejects requests without a valid access token and stores the
// caller's identity in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.extractToken(r)
		if token == "" {
			utils.ErrorResponse(w, "Missing or invalid authorization header", http.StatusUnauthorized)
			return
		}

		claims, err := m.validator.ValidateToken(r.Context(), token)
		if err != nil {
			utils.ErrorResponse(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		// Refresh tokens are not accepted on API routes
		if claims.Type != "access" {
			utils.ErrorResponse(w, "Invalid token type", http.StatusUnauthorized)
			return
		}

		ctx := WithUserID(r.Context(), claims.UserID)
		ctx = context.WithValue(ctx, usernameKey, claims.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken reads "Bearer <token>" from the Authorization header. Browsers
// cannot set headers on websocket upgrades, so a token query parameter is
// accepted there too.
func (m *Middleware) extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			return r.URL.Query().Get("token")
		}
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// WithUserID returns a context carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext extracts user ID from request context
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUsernameFromContext extracts username from request context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}
