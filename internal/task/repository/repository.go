package repository

import (
	"time"

	"taskflow-backend/internal/task/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *domain.Task) error

	// FindByID finds a task by its ID, nil when absent
	FindByID(id string) (*domain.Task, error)

	// FindByUserID returns the user's tasks with subtasks and category
	// loaded, newest first
	FindByUserID(userID string) ([]*domain.Task, error)

	// Update saves an existing task
	Update(task *domain.Task) error

	// Delete deletes a task by ID
	Delete(id string) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(category *domain.Category) error
	FindByID(id string) (*domain.Category, error)
	FindByUserID(userID string) ([]*domain.Category, error)
	Update(category *domain.Category) error
	Delete(id string) error
}

// ReminderRepository defines the interface for reminder data access.
// FindDue and MarkSent back the external automation polling contract.
type ReminderRepository interface {
	// Create persists a new reminder record
	Create(reminder *domain.Reminder) error

	// FindDue returns unsent reminders with remind_at <= now, joined to
	// their task and owning user, ordered by remind_at ascending
	FindDue(now time.Time) ([]*domain.DueReminder, error)

	// MarkSent flips the sent flag for the given reminder IDs
	MarkSent(ids []string) error
}

// PreferenceRepository persists the per-user view snapshot
type PreferenceRepository interface {
	// Find returns the user's preference row, nil when absent
	Find(userID string) (*domain.Preference, error)

	// Save upserts the preference row
	Save(pref *domain.Preference) error
}
