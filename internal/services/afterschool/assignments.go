package afterschool

import (
	"context"
	"fmt"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/apierr"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/types"
)

// GetAssignmentDefinitions fetches the assignment templates of a course.
// Definitions are immutable after creation, so resolved results are cached
// for the process lifetime; concurrent callers share one outstanding fetch.
// A 404 is cached as an empty list rather than retried, because the backend
// may not implement the endpoint yet and re-probing it per screen visit
// would hammer a known-missing route.
func (s *Service) GetAssignmentDefinitions(ctx context.Context, courseID int) ([]types.CourseAssignment, error) {
	s.defsMu.Lock()
	if cached, ok := s.defsCache[courseID]; ok {
		s.defsMu.Unlock()
		return cached, nil
	}
	s.defsMu.Unlock()

	v, err, _ := s.flight.Do(fmt.Sprintf("assignment-defs:%d", courseID), func() (any, error) {
		var defs []types.CourseAssignment
		err := s.api.Get(ctx, courseEndpoint(courseID)+"/assignments", &defs)
		if err != nil {
			if apierr.IsNotFound(err) {
				defs = []types.CourseAssignment{}
			} else {
				return nil, err
			}
		}
		if defs == nil {
			defs = []types.CourseAssignment{}
		}

		s.defsMu.Lock()
		s.defsCache[courseID] = defs
		s.defsMu.Unlock()
		return defs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]types.CourseAssignment), nil
}

// GetAssignmentStatus fetches the caller's per-user assignment record. The
// status endpoint is an optional backend feature: a 404 is a soft signal and
// yields (nil, nil).
func (s *Service) GetAssignmentStatus(ctx context.Context, assignmentID int) (*types.StudentAssignment, error) {
	var record types.StudentAssignment
	endpoint := fmt.Sprintf("/after-school/sessions/assignments/%d/status", assignmentID)
	if err := s.api.Get(ctx, endpoint, &record); err != nil {
		if apierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
