package afterschool

import (
	"context"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/pkg/httpx"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/types"
)

type rawDashboard struct {
	Courses             []types.RawCourse       `json:"courses"`
	Progress            []types.StudentProgress `json:"progress"`
	PendingAssignments  int                     `json:"pending_assignments"`
	UnreadNotifications int                     `json:"unread_notifications"`
}

// GetDashboard fetches the home-screen aggregate. Two screens racing to load
// it share one network call; the in-flight marker clears when the call
// settles so a later call can retry after a failure.
func (s *Service) GetDashboard(ctx context.Context) (types.Dashboard, error) {
	v, err, _ := s.flight.Do("dashboard", func() (any, error) {
		var out types.Dashboard
		err := httpx.Do(ctx, s.log, s.retry, func(ctx context.Context) error {
			var raw rawDashboard
			if err := s.api.Get(ctx, "/after-school/dashboard", &raw); err != nil {
				return err
			}
			out = types.Dashboard{
				Courses:             types.SanitizeCourses(raw.Courses),
				Progress:            raw.Progress,
				PendingAssignments:  raw.PendingAssignments,
				UnreadNotifications: raw.UnreadNotifications,
			}
			if out.Progress == nil {
				out.Progress = []types.StudentProgress{}
			}
			return nil
		})
		return out, err
	})
	if err != nil {
		return types.Dashboard{}, err
	}
	return v.(types.Dashboard), nil
}
