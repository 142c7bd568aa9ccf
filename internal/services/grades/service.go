package grades

import (
	"context"
	"fmt"
	"strings"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/api"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/services/uploads"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/types"
)

// Service drives the assignment submission and grading workflows. Steps
// within a workflow run strictly sequentially with no rollback: a failure is
// reported to the caller, never compensated.
type Service struct {
	log     *logger.Logger
	api     *api.Client
	uploads *uploads.Service
}

func New(log *logger.Logger, apiClient *api.Client, uploadsSvc *uploads.Service) *Service {
	return &Service{
		log:     log.With("service", "GradesService"),
		api:     apiClient,
		uploads: uploadsSvc,
	}
}

// autoGradeRequest is the submit-and-grade payload: exactly one of content or
// file path is set.
type autoGradeRequest struct {
	SubmissionContent  string `json:"submission_content,omitempty"`
	SubmissionFilePath string `json:"submission_file_path,omitempty"`
}

// SubmitAndGrade submits text content (or a previously uploaded file) for an
// assignment. The backend persists the student-assignment record and runs AI
// grading in one call, returning both in one envelope.
func (s *Service) SubmitAndGrade(ctx context.Context, assignmentID int, content, filePath string) (types.GradedResult, error) {
	content = strings.TrimSpace(content)
	filePath = strings.TrimSpace(filePath)
	if content == "" && filePath == "" {
		return types.GradedResult{}, fmt.Errorf("submission content or file path required")
	}

	var result types.GradedResult
	endpoint := fmt.Sprintf("/after-school/sessions/assignments/%d/auto-grade", assignmentID)
	body := autoGradeRequest{SubmissionContent: content, SubmissionFilePath: filePath}
	if err := s.api.Post(ctx, endpoint, body, &result); err != nil {
		return types.GradedResult{}, err
	}
	result.NormalizeArrays()
	return result, nil
}

// SubmitImages is the full capture-to-grade pipeline: bulk-upload the images
// into one PDF, then submit-and-grade referencing the produced file. Each
// step depends on the previous step's output.
func (s *Service) SubmitImages(ctx context.Context, req uploads.BulkUploadRequest) (types.GradedResult, error) {
	uploaded, err := s.uploads.ImagesToPDF(ctx, req)
	if err != nil {
		return types.GradedResult{}, err
	}

	result, err := s.SubmitAndGrade(ctx, req.AssignmentID, "", uploaded.FilePath)
	if err != nil {
		s.log.Warn("grading failed after upload",
			"assignment_id", req.AssignmentID,
			"file_path", uploaded.FilePath,
			"error", err.Error(),
		)
		return types.GradedResult{}, err
	}
	return result, nil
}

// RetrySubmission re-submits against the dedicated retry endpoint. The
// server increments the attempt counter; attempts_remaining and can_retry
// come back in the same envelope shape and are surfaced verbatim.
func (s *Service) RetrySubmission(ctx context.Context, assignmentID int) (types.GradedResult, error) {
	var result types.GradedResult
	endpoint := fmt.Sprintf("/after-school/sessions/assignments/%d/retry", assignmentID)
	if err := s.api.Post(ctx, endpoint, struct{}{}, &result); err != nil {
		return types.GradedResult{}, err
	}
	result.NormalizeArrays()
	return result, nil
}

// GradeWithSession runs the legacy session-based grading flow: start session,
// auto-grade, end session.
//
// Deprecated: the mark-done model needs no session lifecycle; use
// SubmitAndGrade or SubmitImages.
func (s *Service) GradeWithSession(ctx context.Context, courseID, assignmentID int, content string) (types.GradedResult, error) {
	var session types.StudySession
	if err := s.api.Post(ctx, "/after-school/sessions/start", map[string]any{"course_id": courseID}, &session); err != nil {
		return types.GradedResult{}, err
	}

	result, gradeErr := s.SubmitAndGrade(ctx, assignmentID, content, "")

	endEndpoint := fmt.Sprintf("/after-school/sessions/%d/end", session.ID)
	endBody := map[string]any{"completion_percentage": 100}
	if err := s.api.Put(ctx, endEndpoint, endBody, nil); err != nil {
		// Closing the session is best-effort; the grade outcome wins.
		s.log.Warn("failed to end study session", "session_id", session.ID, "error", err.Error())
	}

	if gradeErr != nil {
		return types.GradedResult{}, gradeErr
	}
	return result, nil
}
