package types

import (
	"strings"
	"time"
)

// ProgressDigest scopes.
const (
	DigestWeekly = "weekly"
	DigestCourse = "course"
)

// ProgressDigest is an AI-generated two-paragraph summary of recent
// performance.
type ProgressDigest struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	Scope       string     `json:"scope"`
	CourseID    *int       `json:"course_id"`
	Summary     string     `json:"summary"`
	PeriodStart *time.Time `json:"period_start"`
	PeriodEnd   *time.Time `json:"period_end"`
	GeneratedAt *time.Time `json:"generated_at"`
}

const digestParagraphs = 2

// NormalizeDigestSummary guarantees exactly two paragraphs: extra paragraphs
// are truncated, a missing second paragraph is padded with an empty one.
func NormalizeDigestSummary(summary string) string {
	paras := splitParagraphs(summary)
	if len(paras) > digestParagraphs {
		paras = paras[:digestParagraphs]
	}
	for len(paras) < digestParagraphs {
		paras = append(paras, "")
	}
	return strings.Join(paras, "\n\n")
}

func splitParagraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
