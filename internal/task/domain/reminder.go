package domain

import "time"

// DueReminder is the flattened row served to the external automation
// poller: an unsent reminder joined with its task's display fields and the
// owning user's contact info.
type DueReminder struct {
	ID              string     `json:"id"`
	TaskID          string     `json:"task_id"`
	UserID          string     `json:"user_id"`
	RemindAt        time.Time  `json:"remind_at"`
	Recurrence      Recurrence `json:"recurrence"`
	TaskTitle       string     `json:"task_title"`
	TaskDescription string     `json:"task_description,omitempty"`
	TaskDueDate     *time.Time `json:"task_due_date,omitempty"`
	TaskPriority    Priority   `json:"task_priority"`
	UserEmail       string     `json:"user_email"`
	UserName        string     `json:"user_name,omitempty"`
}

// RemindAt derives the absolute reminder instant from a task's due date and a
// "minutes before" offset. A nil offset means the user never chose a
// reminder; zero is a valid offset meaning "alert exactly at the due time".
// It returns nil when no reminder should exist: offset not supplied, offset
// negative, or no due date. That is a silent no-op, not an error.
func RemindAt(dueDate *time.Time, offsetMinutes *int) *time.Time {
	if dueDate == nil || offsetMinutes == nil || *offsetMinutes < 0 {
		return nil
	}
	remindAt := dueDate.Add(-time.Duration(*offsetMinutes) * time.Minute)
	return &remindAt
}
