package types

import "time"

// Notification types.
const (
	NotificationDueDate            = "due_date"
	NotificationDailyEncouragement = "daily_encouragement"
	NotificationCompletion         = "completion"
)

// NotificationItem is a user-scoped notification. IsRead and DismissedAt are
// independent flags, not mutually exclusive: dismissing does not mark read.
type NotificationItem struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	Type        string     `json:"notification_type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at"`
	DismissedAt *time.Time `json:"dismissed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type NotificationPreference struct {
	DueDateEnabled            bool   `json:"due_date_enabled"`
	DailyEncouragementEnabled bool   `json:"daily_encouragement_enabled"`
	CompletionEnabled         bool   `json:"completion_enabled"`
	ReminderTime              string `json:"reminder_time"`
	Timezone                  string `json:"timezone"`
}

// PreferencePatch is a partial update: only non-nil fields win over the
// current value. MergePreferences makes the precedence auditable field by
// field instead of relying on blind map merging.
type PreferencePatch struct {
	DueDateEnabled            *bool   `json:"due_date_enabled,omitempty"`
	DailyEncouragementEnabled *bool   `json:"daily_encouragement_enabled,omitempty"`
	CompletionEnabled         *bool   `json:"completion_enabled,omitempty"`
	ReminderTime              *string `json:"reminder_time,omitempty"`
	Timezone                  *string `json:"timezone,omitempty"`
}

func MergePreferences(current NotificationPreference, patch PreferencePatch) NotificationPreference {
	out := current
	if patch.DueDateEnabled != nil {
		out.DueDateEnabled = *patch.DueDateEnabled
	}
	if patch.DailyEncouragementEnabled != nil {
		out.DailyEncouragementEnabled = *patch.DailyEncouragementEnabled
	}
	if patch.CompletionEnabled != nil {
		out.CompletionEnabled = *patch.CompletionEnabled
	}
	if patch.ReminderTime != nil {
		out.ReminderTime = *patch.ReminderTime
	}
	if patch.Timezone != nil {
		out.Timezone = *patch.Timezone
	}
	return out
}
