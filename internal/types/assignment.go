package types

import "time"

// Submission types accepted by the bulk upload and grading endpoints.
const (
	SubmissionHomework   = "homework"
	SubmissionQuiz       = "quiz"
	SubmissionPractice   = "practice"
	SubmissionAssessment = "assessment"
)

// StudentAssignment lifecycle states.
const (
	AssignmentAssigned   = "assigned"
	AssignmentSubmitted  = "submitted"
	AssignmentGraded     = "graded"
	AssignmentOverdue    = "overdue"
	AssignmentPassed     = "passed"
	AssignmentNeedsRetry = "needs_retry"
	AssignmentFailed     = "failed"
)

// CourseAssignment is the immutable assignment definition (template), as
// opposed to StudentAssignment, a per-user graded instance of it.
type CourseAssignment struct {
	ID             int     `json:"id"`
	CourseID       int     `json:"course_id"`
	BlockID        *int    `json:"block_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	AssignmentType string  `json:"assignment_type"`
	PointsPossible float64 `json:"points_possible"`
	DueDays        int     `json:"due_days"`
	Rubric         string  `json:"rubric"`
}

type StudentAssignment struct {
	ID                int        `json:"id"`
	AssignmentID      int        `json:"assignment_id"`
	UserID            int        `json:"user_id"`
	Status            string     `json:"status"`
	Grade             *float64   `json:"grade"`
	Feedback          string     `json:"feedback"`
	AttemptsUsed      int        `json:"attempts_used"`
	AttemptsRemaining int        `json:"attempts_remaining"`
	CanRetry          bool       `json:"can_retry"`
	AssignedAt        *time.Time `json:"assigned_at"`
	SubmittedAt       *time.Time `json:"submitted_at"`
	GradedAt          *time.Time `json:"graded_at"`
}

// GradeDetail is the AI grading output nested inside a GradedResult.
type GradeDetail struct {
	Score        float64  `json:"score"`
	Feedback     string   `json:"feedback"`
	Corrections  []string `json:"corrections"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// GradedResult is the submit-and-grade response envelope: the persisted
// student-assignment record plus the AI grading output in one response.
// attempts_remaining and can_retry are surfaced verbatim; the client never
// tracks attempt counts itself.
type GradedResult struct {
	Assignment        StudentAssignment `json:"assignment"`
	Grade             GradeDetail       `json:"grade"`
	AttemptsRemaining int               `json:"attempts_remaining"`
	CanRetry          bool              `json:"can_retry"`
	RequiresReview    bool              `json:"requires_manual_review"`
}

// NormalizeArrays replaces nil grading slices with empty ones.
func (g *GradedResult) NormalizeArrays() {
	if g.Grade.Corrections == nil {
		g.Grade.Corrections = []string{}
	}
	if g.Grade.Strengths == nil {
		g.Grade.Strengths = []string{}
	}
	if g.Grade.Improvements == nil {
		g.Grade.Improvements = []string{}
	}
}

// AISubmission is a stored submission with optional curriculum links and the
// AI processing outcome.
type AISubmission struct {
	ID             int        `json:"id"`
	UserID         int        `json:"user_id"`
	LessonID       *int       `json:"lesson_id"`
	BlockID        *int       `json:"block_id"`
	AssignmentID   *int       `json:"assignment_id"`
	SubmissionType string     `json:"submission_type"`
	FilePath       string     `json:"file_path"`
	AIProcessed    bool       `json:"ai_processed"`
	AIScore        *float64   `json:"ai_score"`
	AIFeedback     string     `json:"ai_feedback"`
	Strengths      []string   `json:"strengths"`
	Improvements   []string   `json:"improvements"`
	RequiresReview bool       `json:"requires_manual_review"`
	CreatedAt      *time.Time `json:"created_at"`
}
