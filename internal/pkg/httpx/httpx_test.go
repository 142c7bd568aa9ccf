package httpx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/apierr"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
)

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"server error status", apierr.New(500, "GET", "/x", "boom"), true},
		{"too many requests", apierr.New(429, "GET", "/x", "slow down"), true},
		{"request timeout status", apierr.New(408, "GET", "/x", ""), true},
		{"validation error", apierr.New(422, "POST", "/x", "invalid"), false},
		{"not found", apierr.New(404, "GET", "/x", "missing"), false},
		{"4xx with timeout detail", apierr.New(400, "GET", "/x", "upstream timeout while fetching course"), true},
		{"4xx with db detail", apierr.New(400, "GET", "/x", "database connection error"), true},
		{"legacy db fragment", errors.New("Database Connection Error while querying"), true},
		{"legacy refused fragment", errors.New("dial tcp: connection refused"), true},
		{"legacy timeout fragment", errors.New("request TIMEOUT after 60s"), true},
		{"unrelated message", errors.New("course not published"), false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryableError(tc.err); got != tc.want {
				t.Fatalf("IsRetryableError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestBackoffBounds(t *testing.T) {
	base := 1 * time.Second
	for attempt := 0; attempt < 4; attempt++ {
		low := base << uint(attempt)
		high := low + time.Second
		for i := 0; i < 50; i++ {
			d := Backoff(attempt, base)
			if d < low || d >= high {
				t.Fatalf("attempt %d: backoff %v outside [%v, %v)", attempt, d, low, high)
			}
		}
	}
}

func TestDoRetriesUpToMaxAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.NewNop(), RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond}, func(ctx context.Context) error {
		calls++
		return errors.New("timeout talking to backend")
	})
	if err == nil {
		t.Fatal("expected error after final attempt")
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoRetriesTransientDetailOnNonRetryableStatus(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.NewNop(), RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond}, func(ctx context.Context) error {
		calls++
		return apierr.New(400, "GET", "/x", "database connection error")
	})
	if err == nil {
		t.Fatal("expected error after final attempt")
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoNonRetryableFailsFast(t *testing.T) {
	calls := 0
	wantErr := apierr.New(422, "POST", "/x", "invalid")
	err := Do(context.Background(), logger.NewNop(), RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond}, func(ctx context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDoStopsOnSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.NewNop(), RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond}, func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("connection refused")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestDoHonorsRetryAfterHint(t *testing.T) {
	apiErr := apierr.New(429, "GET", "/x", "slow down")
	apiErr.RetryAfter = 30 * time.Millisecond

	calls := 0
	start := time.Now()
	err := Do(context.Background(), logger.NewNop(), RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond}, func(ctx context.Context) error {
		calls++
		return apiErr
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("elapsed %v, want >= 30ms (Retry-After hint)", elapsed)
	}
}
