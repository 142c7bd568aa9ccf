package types

import "time"

// Platform-wide defaults substituted when the deployed backend predates a
// schema field and omits it.
const (
	DefaultTotalWeeks    = 8
	DefaultBlocksPerWeek = 2
	MinSupportedAge      = 6
	MaxSupportedAge      = 16
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

type Course struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Subject         string    `json:"subject"`
	Description     string    `json:"description"`
	AgeMin          int       `json:"age_min"`
	AgeMax          int       `json:"age_max"`
	DifficultyLevel string    `json:"difficulty_level"`
	TotalWeeks      int       `json:"total_weeks"`
	BlocksPerWeek   int       `json:"blocks_per_week"`
	IsActive        bool      `json:"is_active"`
	GeneratedByAI   bool      `json:"generated_by_ai"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RawCourse mirrors the wire shape with every schema-evolved field nullable.
// SanitizeCourse turns it into a Course with a guaranteed-complete shape.
type RawCourse struct {
	ID              int        `json:"id"`
	Title           *string    `json:"title"`
	Subject         *string    `json:"subject"`
	Description     *string    `json:"description"`
	AgeMin          *int       `json:"age_min"`
	AgeMax          *int       `json:"age_max"`
	DifficultyLevel *string    `json:"difficulty_level"`
	TotalWeeks      *int       `json:"total_weeks"`
	BlocksPerWeek   *int       `json:"blocks_per_week"`
	IsActive        *bool      `json:"is_active"`
	GeneratedByAI   *bool      `json:"generated_by_ai"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// SanitizeCourse fills defaults for every optional field so callers can rely
// on a complete shape. The raw input is not mutated.
func SanitizeCourse(raw RawCourse) Course {
	c := Course{
		ID:              raw.ID,
		Title:           strOr(raw.Title, ""),
		Subject:         strOr(raw.Subject, ""),
		Description:     strOr(raw.Description, ""),
		AgeMin:          intOr(raw.AgeMin, MinSupportedAge),
		AgeMax:          intOr(raw.AgeMax, MaxSupportedAge),
		DifficultyLevel: strOr(raw.DifficultyLevel, DifficultyBeginner),
		TotalWeeks:      intOr(raw.TotalWeeks, DefaultTotalWeeks),
		BlocksPerWeek:   intOr(raw.BlocksPerWeek, DefaultBlocksPerWeek),
		IsActive:        boolOr(raw.IsActive, true),
		GeneratedByAI:   boolOr(raw.GeneratedByAI, false),
	}
	if raw.CreatedAt != nil {
		c.CreatedAt = *raw.CreatedAt
	}
	if raw.UpdatedAt != nil {
		c.UpdatedAt = *raw.UpdatedAt
	}
	return c
}

func SanitizeCourses(raw []RawCourse) []Course {
	out := make([]Course, 0, len(raw))
	for _, r := range raw {
		out = append(out, SanitizeCourse(r))
	}
	return out
}

type BlockResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Kind  string `json:"kind"` // video | article
}

// CourseBlock is the AI-curriculum unit, ordered by (week, block_number).
type CourseBlock struct {
	ID              int             `json:"id"`
	CourseID        int             `json:"course_id"`
	Week            int             `json:"week"`
	BlockNumber     int             `json:"block_number"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Content         string          `json:"content"`
	DurationMinutes int             `json:"duration_minutes"`
	Objectives      []string        `json:"learning_objectives"`
	Resources       []BlockResource `json:"resources"`
}

// CourseLesson is the legacy unit, ordered by order_index.
type CourseLesson struct {
	ID              int      `json:"id"`
	CourseID        int      `json:"course_id"`
	OrderIndex      int      `json:"order_index"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	DurationMinutes int      `json:"duration_minutes"`
	Objectives      []string `json:"learning_objectives"`
}

// UnifiedCourse is the common shape every branch of the unified fetch chain
// normalizes to. The slice fields are never nil, so callers never branch on
// which endpoint satisfied the request.
type UnifiedCourse struct {
	Course      Course             `json:"course"`
	Blocks      []CourseBlock      `json:"blocks"`
	Lessons     []CourseLesson     `json:"lessons"`
	Assignments []CourseAssignment `json:"assignments"`
}

// NormalizeArrays replaces nil slices with empty ones.
func (u *UnifiedCourse) NormalizeArrays() {
	if u.Blocks == nil {
		u.Blocks = []CourseBlock{}
	}
	if u.Lessons == nil {
		u.Lessons = []CourseLesson{}
	}
	if u.Assignments == nil {
		u.Assignments = []CourseAssignment{}
	}
}

func strOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
