package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken reports a state token that failed signature or claim
// validation, including expiry.
var ErrInvalidToken = errors.New("invalid state token")

const claimSession = "session"

// StateTokens is the stateless counterpart of RedisStore: the session
// blob travels with the client as a signed HS256 token instead of being
// stored server-side. Mirrors voice platforms that round-trip session
// attributes through the caller.
type StateTokens struct {
	secret []byte
	ttl    time.Duration
}

// NewStateTokens creates a codec signing with the given secret. The TTL
// plays the role of the store's idle expiry.
func NewStateTokens(secret string, ttl time.Duration) *StateTokens {
	return &StateTokens{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session blob into a state token.
func (t *StateTokens) Issue(values map[string]any) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimSession: values,
		"iat":        now.Unix(),
		"exp":        now.Add(t.ttl).Unix(),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign state token: %w", err)
	}
	return signed, nil
}

// Parse validates a state token and returns the session blob it
// carries. Expired or tampered tokens fail with ErrInvalidToken.
func (t *StateTokens) Parse(signed string) (map[string]any, error) {
	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	values, ok := claims[claimSession].(map[string]any)
	if !ok {
		return nil, ErrInvalidToken
	}
	return values, nil
}
