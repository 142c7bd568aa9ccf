package afterschool

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/pkg/httpx"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/apierr"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/types"
)

// GetStudentProgress fetches the per-course aggregate. When the backend has
// no record yet (404), a synthesized zero-progress record is returned with
// the live course's lesson count, so screens can render a fresh course
// without branching on "no data".
func (s *Service) GetStudentProgress(ctx context.Context, courseID int) (types.StudentProgress, error) {
	var progress types.StudentProgress
	err := httpx.Do(ctx, s.log, s.retry, func(ctx context.Context) error {
		endpoint := fmt.Sprintf("/after-school/progress/courses/%d", courseID)
		return s.api.Get(ctx, endpoint, &progress)
	})
	if err == nil {
		return progress, nil
	}
	if !apierr.IsNotFound(err) {
		return types.StudentProgress{}, err
	}

	s.log.Debug("no progress record yet, synthesizing", "course_id", courseID)
	synthesized := types.StudentProgress{CourseID: courseID}
	if lessons, lessonsErr := s.GetCourseLessons(ctx, courseID); lessonsErr == nil {
		synthesized.TotalLessons = len(lessons)
	}
	if blocks, blocksErr := s.GetCourseBlocks(ctx, courseID); blocksErr == nil {
		synthesized.TotalBlocks = len(blocks)
	}
	return synthesized, nil
}

// GetBlocksProgress returns per-block completion for a course. The dedicated
// endpoint is used verbatim when the backend implements it; a 404 triggers a
// best-effort client-side derivation from raw blocks + course progress.
func (s *Service) GetBlocksProgress(ctx context.Context, courseID int) (types.BlocksProgress, error) {
	var out types.BlocksProgress
	endpoint := fmt.Sprintf("/after-school/courses/%d/blocks-progress", courseID)
	err := s.api.Get(ctx, endpoint, &out)
	if err == nil {
		if out.Blocks == nil {
			out.Blocks = []types.BlockProgress{}
		}
		return out, nil
	}
	if !apierr.IsNotFound(err) {
		return types.BlocksProgress{}, err
	}

	s.log.Debug("blocks-progress endpoint not deployed, deriving", "course_id", courseID)
	return s.deriveBlocksProgress(ctx, courseID)
}

// deriveBlocksProgress reconstructs the blocks-progress view client-side.
// Blocks and the progress record are fetched independently, each tolerating
// its own failure with a neutral default. Completion is a prefix of the
// curriculum order (week, then block_number, then id) and exactly the next
// block after the prefix is unlocked: a strictly linear policy with no
// branching paths.
func (s *Service) deriveBlocksProgress(ctx context.Context, courseID int) (types.BlocksProgress, error) {
	var (
		blocks   []types.CourseBlock
		progress types.StudentProgress
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetched, err := s.GetCourseBlocks(gctx, courseID)
		if err != nil {
			s.log.Debug("blocks fetch failed during derivation", "course_id", courseID, "error", err.Error())
			return nil
		}
		blocks = fetched
		return nil
	})
	g.Go(func() error {
		fetched, err := s.GetStudentProgress(gctx, courseID)
		if err != nil {
			s.log.Debug("progress fetch failed during derivation", "course_id", courseID, "error", err.Error())
			return nil
		}
		progress = fetched
		return nil
	})
	_ = g.Wait()

	sorted := make([]types.CourseBlock, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Week != sorted[j].Week {
			return sorted[i].Week < sorted[j].Week
		}
		if sorted[i].BlockNumber != sorted[j].BlockNumber {
			return sorted[i].BlockNumber < sorted[j].BlockNumber
		}
		return sorted[i].ID < sorted[j].ID
	})

	total := len(sorted)
	completed := progress.BlocksCompleted
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}

	entries := make([]types.BlockProgress, 0, total)
	for i, block := range sorted {
		entries = append(entries, types.BlockProgress{
			Block:     block,
			Completed: i < completed,
			Available: i == completed,
		})
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return types.BlocksProgress{
		CourseID:             courseID,
		Blocks:               entries,
		BlocksCompleted:      completed,
		TotalBlocks:          total,
		CompletionPercentage: percentage,
	}, nil
}
