package afterschool

import (
	"context"
	"fmt"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/types"
)

// unifiedResponse is the comprehensive endpoint's one-call payload.
type unifiedResponse struct {
	Course      types.RawCourse          `json:"course"`
	Blocks      []types.CourseBlock      `json:"blocks"`
	Lessons     []types.CourseLesson     `json:"lessons"`
	Assignments []types.CourseAssignment `json:"assignments"`
}

// GetUnifiedCourse fetches course + blocks + assignments + lessons through a
// three-step fallback chain of decreasing richness, tolerating partially
// deployed backends:
//
//  1. the comprehensive endpoint (everything in one call);
//  2. blocks alone (itself tolerated to fail, legacy lesson-only courses
//     have no blocks endpoint) combined with basic course details;
//  3. basic details alone is the last resort, and its failure is the only
//     fatal path.
//
// Whatever branch satisfies the request, the result has non-nil blocks,
// lessons and assignments. Concurrent callers for the same course share one
// outstanding fetch.
func (s *Service) GetUnifiedCourse(ctx context.Context, courseID int) (types.UnifiedCourse, error) {
	v, err, _ := s.flight.Do(fmt.Sprintf("course:%d", courseID), func() (any, error) {
		return s.fetchUnified(ctx, courseID)
	})
	if err != nil {
		return types.UnifiedCourse{}, err
	}
	return v.(types.UnifiedCourse), nil
}

func (s *Service) fetchUnified(ctx context.Context, courseID int) (types.UnifiedCourse, error) {
	var unified types.UnifiedCourse

	var resp unifiedResponse
	err := s.api.Get(ctx, courseEndpoint(courseID)+"/comprehensive", &resp)
	if err == nil {
		unified = types.UnifiedCourse{
			Course:      types.SanitizeCourse(resp.Course),
			Blocks:      resp.Blocks,
			Lessons:     resp.Lessons,
			Assignments: resp.Assignments,
		}
		unified.NormalizeArrays()
		return unified, nil
	}
	s.log.Warn("comprehensive course fetch failed, falling back",
		"course_id", courseID, "error", err.Error())

	blocks, blocksErr := s.GetCourseBlocks(ctx, courseID)
	if blocksErr != nil {
		// Lesson-only legacy courses have no blocks endpoint.
		s.log.Debug("blocks fetch failed during fallback",
			"course_id", courseID, "error", blocksErr.Error())
		blocks = nil
	}

	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return types.UnifiedCourse{}, err
	}

	unified = types.UnifiedCourse{Course: course, Blocks: blocks}
	unified.NormalizeArrays()
	return unified, nil
}
