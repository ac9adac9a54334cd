package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nzambu/coachsim/internal/api/response"
	"github.com/nzambu/coachsim/internal/security"
)

type contextKey string

const (
	SessionIDKey contextKey = "sessionID"
	IdentityKey  contextKey = "identity"
)

// SessionMiddleware validates the session token issued at login
type SessionMiddleware struct {
	jwtManager *security.JWTManager
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(jwtManager *security.JWTManager) *SessionMiddleware {
	return &SessionMiddleware{jwtManager: jwtManager}
}

// Authenticate validates the bearer token and binds the session to the
// request context
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(w, "invalid authorization header format")
			return
		}

		claims, err := m.jwtManager.ValidateSessionToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "invalid or expired session token")
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, claims.SessionID)
		ctx = context.WithValue(ctx, IdentityKey, claims.Identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID gets the session ID from context
func GetSessionID(ctx context.Context) (uuid.UUID, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return sessionID, ok
}

// GetIdentity gets the authenticated identity from context
func GetIdentity(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(IdentityKey).(string)
	return identity, ok
}

// AdminOnly gates the admin surface behind the shared static passphrase.
// This is deliberately not a credential system: one configured string,
// compared constant-time, sent as a header.
func AdminOnly(passphrase string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !security.CheckPassphrase(r.Header.Get("X-Admin-Passphrase"), passphrase) {
				response.Unauthorized(w, "admin access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
