package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims represents the JWT claims carried by a student session
// token: the session identifier issued at login plus the normalized
// identity that passed the allow-list.
type SessionClaims struct {
	SessionID uuid.UUID `json:"sid"`
	Identity  string    `json:"identity"`
	jwt.RegisteredClaims
}

// JWTManager handles session token operations
type JWTManager struct {
	secret     []byte
	sessionTTL time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, sessionTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
	}
}

// GenerateSessionToken issues a token binding an identity to a session ID
func (m *JWTManager) GenerateSessionToken(sessionID uuid.UUID, identity string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		SessionID: sessionID,
		Identity:  identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "coachsim",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateSessionToken validates a session token and returns the claims
func (m *JWTManager) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.SessionID == uuid.Nil {
		return nil, errors.New("token has no session ID")
	}

	return claims, nil
}

// SessionTTL returns the session token TTL
func (m *JWTManager) SessionTTL() time.Duration {
	return m.sessionTTL
}
