package afterschool

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/api"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/pkg/httpx"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/types"
)

// Service is the after-school workflow client: courses, dashboard, sessions
// and progress. One instance is constructed at app start and shared; the
// in-flight group and the definitions cache live on it, so cache lifetime is
// the service lifetime and tests get isolation per constructor.
type Service struct {
	log   *logger.Logger
	api   *api.Client
	retry httpx.RetryConfig

	flight singleflight.Group

	defsMu    sync.Mutex
	defsCache map[int][]types.CourseAssignment
}

func New(log *logger.Logger, apiClient *api.Client, retry httpx.RetryConfig) *Service {
	return &Service{
		log:       log.With("service", "AfterSchoolService"),
		api:       apiClient,
		retry:     retry,
		defsCache: map[int][]types.CourseAssignment{},
	}
}

// CourseFilter carries the course-listing query parameters. Zero values are
// omitted from the query string.
type CourseFilter struct {
	Subject    string
	Search     string
	Age        int
	Difficulty string
	SortBy     string
	SortOrder  string
	Skip       int
	Limit      int
}

func (f CourseFilter) encode() string {
	q := url.Values{}
	if s := strings.TrimSpace(f.Subject); s != "" {
		q.Set("subject", s)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	if f.Age > 0 {
		q.Set("age", strconv.Itoa(f.Age))
	}
	if s := strings.TrimSpace(f.Difficulty); s != "" {
		q.Set("difficulty", s)
	}
	if s := strings.TrimSpace(f.SortBy); s != "" {
		q.Set("sort_by", s)
	}
	if s := strings.TrimSpace(f.SortOrder); s != "" {
		q.Set("sort_order", s)
	}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

type CourseList struct {
	Courses []types.Course `json:"courses"`
	Total   int            `json:"total"`
}

type rawCourseList struct {
	Courses []types.RawCourse `json:"courses"`
	Total   int               `json:"total"`
}

// ListCourses fetches the filtered course catalog. Read-heavy and
// idempotent, so it is retry-wrapped.
func (s *Service) ListCourses(ctx context.Context, filter CourseFilter) (CourseList, error) {
	var out CourseList
	err := httpx.Do(ctx, s.log, s.retry, func(ctx context.Context) error {
		var raw rawCourseList
		if err := s.api.Get(ctx, "/after-school/courses/"+filter.encode(), &raw); err != nil {
			return err
		}
		out = CourseList{Courses: types.SanitizeCourses(raw.Courses), Total: raw.Total}
		return nil
	})
	return out, err
}

// GetCourse fetches basic course details.
func (s *Service) GetCourse(ctx context.Context, courseID int) (types.Course, error) {
	var raw types.RawCourse
	if err := s.api.Get(ctx, courseEndpoint(courseID), &raw); err != nil {
		return types.Course{}, err
	}
	return types.SanitizeCourse(raw), nil
}

func (s *Service) GetCourseBlocks(ctx context.Context, courseID int) ([]types.CourseBlock, error) {
	var blocks []types.CourseBlock
	if err := s.api.Get(ctx, courseEndpoint(courseID)+"/blocks", &blocks); err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []types.CourseBlock{}
	}
	return blocks, nil
}

func (s *Service) GetCourseLessons(ctx context.Context, courseID int) ([]types.CourseLesson, error) {
	var lessons []types.CourseLesson
	if err := s.api.Get(ctx, courseEndpoint(courseID)+"/lessons", &lessons); err != nil {
		return nil, err
	}
	if lessons == nil {
		lessons = []types.CourseLesson{}
	}
	return lessons, nil
}

func courseEndpoint(courseID int) string {
	return fmt.Sprintf("/after-school/courses/%d", courseID)
}
