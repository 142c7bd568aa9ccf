package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/apierr"
)

// unsignedJWT builds a syntactically valid JWT with the given claims. The
// signature is garbage, which is fine: expiry checking never verifies it.
func unsignedJWT(t *testing.T, claims map[string]any) string {
	t.Helper()
	enc := func(v any) string {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return base64.RawURLEncoding.EncodeToString(raw)
	}
	header := map[string]any{"alg": "HS256", "typ": "JWT"}
	return enc(header) + "." + enc(claims) + "." + base64.RawURLEncoding.EncodeToString([]byte("sig"))
}

func TestTokenEmptyFailsWithAuthRequired(t *testing.T) {
	src := NewStatic("  ")
	if _, err := src.Token(); !errors.Is(err, apierr.ErrAuthRequired) {
		t.Fatalf("err = %v, want ErrAuthRequired", err)
	}
}

func TestTokenOpaquePassesThrough(t *testing.T) {
	src := NewStatic("opaque-session-token")
	token, err := src.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "opaque-session-token" {
		t.Fatalf("token = %q", token)
	}
}

func TestTokenExpiredJWTRejected(t *testing.T) {
	expired := unsignedJWT(t, map[string]any{
		"sub": "42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	src := NewStatic(expired)
	if _, err := src.Token(); !errors.Is(err, apierr.ErrAuthRequired) {
		t.Fatalf("err = %v, want wrapped ErrAuthRequired", err)
	}
}

func TestTokenUnexpiredJWTAccepted(t *testing.T) {
	valid := unsignedJWT(t, map[string]any{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	src := NewStatic(valid)
	if _, err := src.Token(); err != nil {
		t.Fatalf("Token: %v", err)
	}
}

func TestTokenJWTWithoutExpAccepted(t *testing.T) {
	src := NewStatic(unsignedJWT(t, map[string]any{"sub": "42"}))
	if _, err := src.Token(); err != nil {
		t.Fatalf("Token: %v", err)
	}
}

func TestSetTokenSwapsAfterRelogin(t *testing.T) {
	src := NewStatic("")
	if _, err := src.Token(); !errors.Is(err, apierr.ErrAuthRequired) {
		t.Fatalf("err = %v, want ErrAuthRequired", err)
	}
	src.SetToken(" fresh-token ")
	token, err := src.Token()
	if err != nil {
		t.Fatalf("Token after SetToken: %v", err)
	}
	if token != "fresh-token" {
		t.Fatalf("token = %q", token)
	}
}
