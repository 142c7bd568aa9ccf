package httpx

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"strings"
	"time"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
)

type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

type RetryAfterProvider interface {
	RetryAfterHint() time.Duration
}

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 1 * time.Second

	// jitterCeiling is the full-jitter bound added on top of the exponential
	// base delay before each retry.
	jitterCeiling = 1 * time.Second

	// maxRetryAfter caps how long a server-provided Retry-After hint is honored.
	maxRetryAfter = 10 * time.Second
)

// retryableFragments is the legacy substring classifier inherited from the
// backend's current error taxonomy. It is a compatibility shim: typed status
// codes are consulted first, and this table goes away once the backend ships
// stable error codes.
var retryableFragments = []string{
	"database connection error",
	"connection refused",
	"timeout",
}

func IsRetryableHTTPStatus(code int) bool {
	if code == 408 || code == 429 {
		return true
	}
	return code >= 500 && code <= 599
}

// IsRetryableMessage reports whether the error text matches the legacy
// transient-error substrings (case-insensitive).
func IsRetryableMessage(msg string) bool {
	low := strings.ToLower(msg)
	for _, frag := range retryableFragments {
		if strings.Contains(low, frag) {
			return true
		}
	}
	return false
}

func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		if code := sc.HTTPStatusCode(); code != 0 && IsRetryableHTTPStatus(code) {
			return true
		}
	}
	// A non-retryable status can still carry a transient backend detail
	// ("timeout", "database connection error"), so the substring shim always
	// gets the last word.
	return IsRetryableMessage(err.Error())
}

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	return c
}

// Backoff returns the sleep before retry attempt n (0-indexed):
// base*2^n plus uniform jitter in [0, 1s).
func Backoff(attempt int, base time.Duration) time.Duration {
	if base <= 0 {
		base = DefaultBaseDelay
	}
	d := base << uint(attempt)
	return d + time.Duration(rand.Int63n(int64(jitterCeiling)))
}

// Do runs op up to cfg.MaxAttempts times, sleeping between attempts with
// exponential backoff and full jitter. Non-retryable errors propagate on
// first occurrence; retryable errors propagate only after the final attempt.
// A server Retry-After hint on the error overrides the computed base delay
// for that attempt (capped).
//
// Do is meant for idempotent reads only. Mutating calls fail fast on first
// error to avoid duplicate side effects.
func Do(ctx context.Context, log *logger.Logger, cfg RetryConfig, op func(ctx context.Context) error) error {
	cfg = cfg.withDefaults()

	var err error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = op(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryableError(err) {
			return err
		}
		if attempt == cfg.MaxAttempts-1 {
			return err
		}

		sleepFor := Backoff(attempt, cfg.BaseDelay)
		var ra RetryAfterProvider
		if errors.As(err, &ra) {
			if hint := ra.RetryAfterHint(); hint > 0 {
				if hint > maxRetryAfter {
					hint = maxRetryAfter
				}
				if hint > sleepFor {
					sleepFor = hint
				}
			}
		}

		if log != nil {
			log.Warn("request retrying",
				"attempt", attempt+1,
				"max_attempts", cfg.MaxAttempts,
				"sleep", sleepFor.String(),
				"error", err.Error(),
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleepFor):
		}
	}
	return err
}
