package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid player token")

// PlayerClaims binds a player token to one game session.
type PlayerClaims struct {
	SessionID    string `json:"session_id"`
	SessionToken string `json:"session_token"`
	jwt.RegisteredClaims
}

// IssuePlayerToken signs an HS256 token for a session that expires after ttl.
func IssuePlayerToken(secret, sessionID, sessionToken string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := PlayerClaims{
		SessionID:    sessionID,
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign player token: %w", err)
	}
	return signed, nil
}

// ParsePlayerToken verifies signature, algorithm and expiry.
func ParsePlayerToken(secret, token string) (*PlayerClaims, error) {
	claims := &PlayerClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.SessionToken == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
