package types

import "time"

// StudySession lifecycle states (legacy open/close model).
const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionAbandoned  = "abandoned"
)

// StudySession is the legacy session record.
//
// Deprecated: the mark-done model records completion without an open/close
// lifecycle; new code should use CompletionRecord.
type StudySession struct {
	ID                   int        `json:"id"`
	UserID               int        `json:"user_id"`
	CourseID             int        `json:"course_id"`
	LessonID             *int       `json:"lesson_id"`
	BlockID              *int       `json:"block_id"`
	Status               string     `json:"status"`
	CompletionPercentage float64    `json:"completion_percentage"`
	StartedAt            time.Time  `json:"started_at"`
	EndedAt              *time.Time `json:"ended_at"`
}

// CompletionRecord is the mark-done response: one call records a block as
// done, no session object is opened.
type CompletionRecord struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	CourseID    int        `json:"course_id"`
	BlockID     int        `json:"block_id"`
	CompletedAt *time.Time `json:"completed_at"`
}

// StudentProgress is the per-course aggregate. When the backend has no record
// yet the client synthesizes one with zero counters (see
// afterschool.Service.GetStudentProgress).
type StudentProgress struct {
	UserID                int     `json:"user_id"`
	CourseID              int     `json:"course_id"`
	LessonsCompleted      int     `json:"lessons_completed"`
	TotalLessons          int     `json:"total_lessons"`
	BlocksCompleted       int     `json:"blocks_completed"`
	TotalBlocks           int     `json:"total_blocks"`
	CompletionPercentage  float64 `json:"completion_percentage"`
	AverageScore          float64 `json:"average_score"`
	TotalStudyTimeMinutes int     `json:"total_study_time_minutes"`
}

// BlockProgress is one entry of the blocks-progress view: curriculum order
// with a strictly linear unlock policy. Exactly one block is Available (the
// first uncompleted one); all later blocks are locked.
type BlockProgress struct {
	Block     CourseBlock `json:"block"`
	Completed bool        `json:"completed"`
	Available bool        `json:"available"`
}

// BlocksProgress is the full blocks-progress response shape, shared by the
// real endpoint and the client-side derivation.
type BlocksProgress struct {
	CourseID             int             `json:"course_id"`
	Blocks               []BlockProgress `json:"blocks"`
	BlocksCompleted      int             `json:"blocks_completed"`
	TotalBlocks          int             `json:"total_blocks"`
	CompletionPercentage int             `json:"completion_percentage"`
}

// Dashboard is the aggregate the home screen renders from a single fetch.
type Dashboard struct {
	Courses             []Course          `json:"courses"`
	Progress            []StudentProgress `json:"progress"`
	PendingAssignments  int               `json:"pending_assignments"`
	UnreadNotifications int               `json:"unread_notifications"`
}
