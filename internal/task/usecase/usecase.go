package usecase

import (
	"time"

	"taskflow-backend/internal/task/domain"
)

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// CreateTask creates a new task and, when the input carries a due date
	// and a reminder offset, a reminder record as a follow-up side effect
	CreateTask(userID string, input CreateTaskInput) (*domain.Task, error)

	// GetTaskByID retrieves a task by ID (with ownership check)
	GetTaskByID(userID, taskID string) (*domain.Task, error)

	// GetUserTasks retrieves all tasks for a user, newest first
	GetUserTasks(userID string) ([]*domain.Task, error)

	// UpdateTask merges the given fields into an existing task
	UpdateTask(userID, taskID string, updates TaskUpdateRequest) (*domain.Task, error)

	// DeleteTask deletes a task with its subtasks and reminders
	DeleteTask(userID, taskID string) error

	// GetStats recomputes the counts snapshot for the user's tasks
	GetStats(userID string, now time.Time) (domain.TaskStats, error)

	// AddSubtask appends a checklist item to a task
	AddSubtask(userID, taskID, title string, sortOrder int) (*domain.Task, error)

	// UpdateSubtask merges the given fields into a subtask
	UpdateSubtask(userID, taskID, subtaskID string, updates SubtaskUpdateRequest) (*domain.Task, error)

	// DeleteSubtask removes a checklist item from a task
	DeleteSubtask(userID, taskID, subtaskID string) (*domain.Task, error)

	// CreateCategory creates a category owned by the user
	CreateCategory(userID, name, color, icon string) (*domain.Category, error)

	// GetUserCategories returns the user's categories in creation order
	GetUserCategories(userID string) ([]*domain.Category, error)

	// UpdateCategory updates a category (with ownership check)
	UpdateCategory(userID, categoryID, name, color, icon string) (*domain.Category, error)

	// DeleteCategory removes a category; tasks keep their weak reference
	DeleteCategory(userID, categoryID string) error

	// SeedDefaultCategories creates the starter category set for a new user
	SeedDefaultCategories(userID string)

	// GetPreferences returns the user's persisted view snapshot, or the
	// defaults when none has been saved yet
	GetPreferences(userID string) (*domain.Preference, error)

	// SavePreferences upserts the user's view snapshot
	SavePreferences(userID string, viewMode domain.ViewMode, filters domain.TaskFilters) (*domain.Preference, error)

	// GetDueReminders returns unsent reminders due at the given instant,
	// joined with task and user info, for the automation poller
	GetDueReminders(now time.Time) ([]*domain.DueReminder, error)

	// MarkRemindersSent flips the sent flag for the given reminder IDs and
	// returns how many were requested
	MarkRemindersSent(ids []string) (int, error)
}

// CreateTaskInput carries the fields accepted at task creation.
// ReminderMinutes distinguishes "not set" (nil) from "remind at due time"
// (zero); dates arrive as RFC3339 strings from the transport layer.
type CreateTaskInput struct {
	Title           string
	Description     string
	Priority        string
	Status          string
	DueDate         *string
	CategoryID      string
	Tags            []string
	Subtasks        []SubtaskInput
	ReminderMinutes *int
	Recurrence      string
}

// SubtaskInput is a checklist item supplied at task creation
type SubtaskInput struct {
	Title     string `json:"title"`
	SortOrder int    `json:"sort_order"`
}

// TaskUpdateRequest represents the fields that can be updated. An empty
// due_date string clears the due date.
type TaskUpdateRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	Status      *string   `json:"status,omitempty"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// SubtaskUpdateRequest represents the subtask fields that can be updated
type SubtaskUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}
