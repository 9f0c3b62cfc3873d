package domain

import (
	"errors"
	"strings"
	"time"
)

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusArchived   TaskStatus = "archived"
)

// Recurrence describes how a reminder repeats
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceCustom  Recurrence = "custom"
)

// ViewMode is the client's task presentation mode
type ViewMode string

const (
	ViewModeList     ViewMode = "list"
	ViewModeBoard    ViewMode = "board"
	ViewModeCalendar ViewMode = "calendar"
)

var ErrEmptyTitle = errors.New("task title must not be empty")

// Task is the primary to-do unit owned by a user
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority" gorm:"default:medium"`
	Status      TaskStatus `json:"status" gorm:"default:todo"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CategoryID  string     `json:"category_id,omitempty" gorm:"index"`
	Category    *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tags        []string   `json:"tags" gorm:"serializer:json"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Subtasks    []Subtask  `json:"subtasks,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Reminders   []Reminder `json:"reminders,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// Validate checks the invariants a task must hold at creation time.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Subtask is a child checklist item of a task. It has no lifecycle of its own.
type Subtask struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	TaskID      string    `json:"task_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	IsCompleted bool      `json:"is_completed" gorm:"default:false"`
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category groups tasks by area. Tasks reference it weakly by ID; a dangling
// reference simply renders as "no category".
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Reminder is a scheduled notification tied to a task's due date. Its
// dispatch lifecycle is owned by the external automation poller.
type Reminder struct {
	ID               string            `json:"id" gorm:"primaryKey"`
	TaskID           string            `json:"task_id" gorm:"index;not null"`
	UserID           string            `json:"user_id" gorm:"index;not null"`
	RemindAt         time.Time         `json:"remind_at"`
	Recurrence       Recurrence        `json:"recurrence" gorm:"default:none"`
	RecurrenceConfig *RecurrenceConfig `json:"recurrence_config,omitempty" gorm:"serializer:json"`
	IsSent           bool              `json:"is_sent" gorm:"default:false"`
	CreatedAt        time.Time         `json:"created_at"`
}

// RecurrenceConfig carries the settings for a custom recurrence.
type RecurrenceConfig struct {
	Interval   int        `json:"interval,omitempty"`
	DaysOfWeek []int      `json:"days_of_week,omitempty"`
	DayOfMonth int        `json:"day_of_month,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// Preference is the persisted slice of a user's view state. Only the view
// mode and filters survive restarts; everything else rebuilds from the
// source of truth.
type Preference struct {
	UserID    string      `json:"user_id" gorm:"primaryKey"`
	ViewMode  ViewMode    `json:"view_mode" gorm:"default:list"`
	Filters   TaskFilters `json:"filters" gorm:"serializer:json"`
	UpdatedAt time.Time   `json:"updated_at"`
}
