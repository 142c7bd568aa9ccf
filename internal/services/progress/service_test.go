package progress

import (
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/api"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/pkg/httpx"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/auth"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestService(t *testing.T, rt roundTripperFunc) *Service {
	t.Helper()
	client, err := api.NewWithHTTPClient(
		logger.NewNop(),
		api.Config{BaseURL: "http://backend", Timeout: 2 * time.Second},
		auth.NewStatic("token"),
		&http.Client{Transport: rt},
	)
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}
	return New(logger.NewNop(), client, httpx.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond})
}

func TestGetWeeklyDigestEncodesReferenceDate(t *testing.T) {
	var gotQuery string
	s := newTestService(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/after-school/progress/weekly" {
			t.Fatalf("path = %q", req.URL.Path)
		}
		gotQuery = req.URL.RawQuery
		return jsonResponse(200, `{"id":3,"scope":"weekly","summary":"Great week.\n\nKeep practicing fractions."}`), nil
	})

	ref := time.Date(2026, time.March, 9, 15, 4, 5, 0, time.UTC)
	digest, err := s.GetWeeklyDigest(t.Context(), ref)
	if err != nil {
		t.Fatalf("GetWeeklyDigest: %v", err)
	}
	if gotQuery != "reference_date=2026-03-09" {
		t.Fatalf("query = %q", gotQuery)
	}
	if digest.Summary != "Great week.\n\nKeep practicing fractions." {
		t.Fatalf("summary = %q", digest.Summary)
	}
}

func TestGetWeeklyDigestZeroDateSendsNoQuery(t *testing.T) {
	s := newTestService(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.RawQuery != "" {
			t.Fatalf("query = %q, want none", req.URL.RawQuery)
		}
		return jsonResponse(200, `{"summary":"One paragraph only."}`), nil
	})

	digest, err := s.GetWeeklyDigest(t.Context(), time.Time{})
	if err != nil {
		t.Fatalf("GetWeeklyDigest: %v", err)
	}
	if digest.Summary != "One paragraph only.\n\n" {
		t.Fatalf("summary = %q, want padded second paragraph", digest.Summary)
	}
}

func TestGetCourseDigestTruncatesToTwoParagraphs(t *testing.T) {
	s := newTestService(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/after-school/progress/courses/7/digest" {
			t.Fatalf("path = %q", req.URL.Path)
		}
		return jsonResponse(200, `{"summary":"First.\n\nSecond.\n\nThird."}`), nil
	})

	digest, err := s.GetCourseDigest(t.Context(), 7)
	if err != nil {
		t.Fatalf("GetCourseDigest: %v", err)
	}
	if digest.Summary != "First.\n\nSecond." {
		t.Fatalf("summary = %q", digest.Summary)
	}
}

func TestGenerateWeeklyDigestDoesNotRetry(t *testing.T) {
	var calls int32
	s := newTestService(t, func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		if req.Method != http.MethodPost || req.URL.Path != "/after-school/progress/weekly/generate" {
			t.Fatalf("%s %s", req.Method, req.URL.Path)
		}
		return jsonResponse(503, `{"detail":"database connection error"}`), nil
	})

	if _, err := s.GenerateWeeklyDigest(t.Context()); err == nil {
		t.Fatal("want error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("calls = %d; generation is a mutation and must not retry", n)
	}
}

func TestGetWeeklyDigestRetriesTransientFailure(t *testing.T) {
	var calls int32
	s := newTestService(t, func(req *http.Request) (*http.Response, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return jsonResponse(503, `{"detail":"connection refused"}`), nil
		}
		return jsonResponse(200, `{"summary":"Back.\n\nOn track."}`), nil
	})

	digest, err := s.GetWeeklyDigest(t.Context(), time.Time{})
	if err != nil {
		t.Fatalf("GetWeeklyDigest: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
	if digest.Summary != "Back.\n\nOn track." {
		t.Fatalf("summary = %q", digest.Summary)
	}
}
