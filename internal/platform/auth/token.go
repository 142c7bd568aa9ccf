package auth

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/apierr"
)

// TokenSource yields the bearer token for outgoing requests. Implementations
// must fail (not return an empty string) when no usable token exists, so the
// request layer never reaches the network unauthenticated.
type TokenSource interface {
	Token() (string, error)
}

// NewStatic returns a TokenSource holding a fixed token, typically loaded
// from config at startup. SetToken swaps it after a re-login.
func NewStatic(token string) *StaticSource {
	return &StaticSource{token: strings.TrimSpace(token)}
}

type StaticSource struct {
	mu    sync.RWMutex
	token string
}

func (s *StaticSource) SetToken(token string) {
	s.mu.Lock()
	s.token = strings.TrimSpace(token)
	s.mu.Unlock()
}

func (s *StaticSource) Token() (string, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return "", apierr.ErrAuthRequired
	}
	if err := checkExpiry(token); err != nil {
		return "", err
	}
	return token, nil
}

// checkExpiry decodes JWT claims without signature verification purely to
// surface an expired token before a doomed network call. Opaque (non-JWT)
// tokens pass through untouched.
func checkExpiry(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if time.Now().After(exp.Time) {
		return fmt.Errorf("%w: access token expired at %s", apierr.ErrAuthRequired, exp.Time.UTC().Format(time.RFC3339))
	}
	return nil
}
