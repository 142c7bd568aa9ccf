package progress

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/api"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/pkg/httpx"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/types"
)

// Service fetches and generates AI progress digests.
type Service struct {
	log   *logger.Logger
	api   *api.Client
	retry httpx.RetryConfig
}

func New(log *logger.Logger, apiClient *api.Client, retry httpx.RetryConfig) *Service {
	return &Service{
		log:   log.With("service", "ProgressDigestService"),
		api:   apiClient,
		retry: retry,
	}
}

// GenerateWeeklyDigest asks the backend to produce a fresh weekly digest.
// Generation is a mutation (it persists a digest), so no retry.
func (s *Service) GenerateWeeklyDigest(ctx context.Context) (types.ProgressDigest, error) {
	var digest types.ProgressDigest
	if err := s.api.Post(ctx, "/after-school/progress/weekly/generate", struct{}{}, &digest); err != nil {
		return types.ProgressDigest{}, err
	}
	digest.Summary = types.NormalizeDigestSummary(digest.Summary)
	return digest, nil
}

// GetWeeklyDigest fetches the digest covering the week of referenceDate.
// A zero referenceDate means the current week.
func (s *Service) GetWeeklyDigest(ctx context.Context, referenceDate time.Time) (types.ProgressDigest, error) {
	endpoint := "/after-school/progress/weekly"
	if !referenceDate.IsZero() {
		q := url.Values{}
		q.Set("reference_date", referenceDate.Format("2006-01-02"))
		endpoint += "?" + q.Encode()
	}

	var digest types.ProgressDigest
	err := httpx.Do(ctx, s.log, s.retry, func(ctx context.Context) error {
		return s.api.Get(ctx, endpoint, &digest)
	})
	if err != nil {
		return types.ProgressDigest{}, err
	}
	digest.Summary = types.NormalizeDigestSummary(digest.Summary)
	return digest, nil
}

// GetCourseDigest fetches the course-scoped digest.
func (s *Service) GetCourseDigest(ctx context.Context, courseID int) (types.ProgressDigest, error) {
	var digest types.ProgressDigest
	endpoint := fmt.Sprintf("/after-school/progress/courses/%d/digest", courseID)
	err := httpx.Do(ctx, s.log, s.retry, func(ctx context.Context) error {
		return s.api.Get(ctx, endpoint, &digest)
	})
	if err != nil {
		return types.ProgressDigest{}, err
	}
	digest.Summary = types.NormalizeDigestSummary(digest.Summary)
	return digest, nil
}
