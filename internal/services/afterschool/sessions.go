package afterschool

import (
	"context"
	"fmt"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/types"
)

// MarkBlockDone records a block as completed in one call. Mutating, so no
// retry: a transient failure surfaces to the caller instead of risking a
// duplicate completion record.
func (s *Service) MarkBlockDone(ctx context.Context, blockID, courseID int) (types.CompletionRecord, error) {
	body := map[string]int{
		"block_id":  blockID,
		"course_id": courseID,
	}
	var record types.CompletionRecord
	if err := s.api.Post(ctx, "/after-school/sessions/mark-done", body, &record); err != nil {
		return types.CompletionRecord{}, err
	}
	return record, nil
}

// StartStudySession opens a legacy study session.
//
// Deprecated: the mark-done model records completion without an open/close
// lifecycle; use MarkBlockDone.
func (s *Service) StartStudySession(ctx context.Context, courseID int, blockID *int) (types.StudySession, error) {
	body := map[string]any{"course_id": courseID}
	if blockID != nil {
		body["block_id"] = *blockID
	}
	var session types.StudySession
	if err := s.api.Post(ctx, "/after-school/sessions/start", body, &session); err != nil {
		return types.StudySession{}, err
	}
	return session, nil
}

// EndStudySession closes a legacy study session.
//
// Deprecated: see StartStudySession.
func (s *Service) EndStudySession(ctx context.Context, sessionID int, completionPercentage float64) (types.StudySession, error) {
	body := map[string]any{"completion_percentage": completionPercentage}
	var session types.StudySession
	endpoint := fmt.Sprintf("/after-school/sessions/%d/end", sessionID)
	if err := s.api.Put(ctx, endpoint, body, &session); err != nil {
		return types.StudySession{}, err
	}
	return session, nil
}
