package auth

import (
	"errors"
	"fmt"
	"time"

	"EduPortal/internal/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var signingMethod = jwt.SigningMethodHS256

// SessionManager signs and verifies the page-auth session cookie. The
// cookie carries only the user id; the API keeps using opaque database
// tokens.
type SessionManager struct {
	secretKey string
	ttl       time.Duration
}

func NewSessionManager(secretKey string, ttl time.Duration) *SessionManager {
	return &SessionManager{secretKey: secretKey, ttl: ttl}
}

type sessionClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

func (m *SessionManager) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(signingMethod, sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("session signing failed: %w", err)
	}
	return signed, nil
}

func (m *SessionManager) Parse(raw string) (uuid.UUID, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, app_errors.ErrSessionExpired
		}
		return uuid.Nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, app_errors.ErrSessionExpired
	}
	return claims.UserID, nil
}
