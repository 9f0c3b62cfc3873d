// Package store holds a session's in-memory task state and its derived
// views. One store is constructed per session; there is no process-wide
// instance. The backing persistence layer stays authoritative — callers
// mutate the store only after the corresponding remote call has succeeded,
// or when a push event delivers a remotely-originated change.
package store

import (
	"sync"
	"time"

	"taskflow-backend/internal/task/domain"
)

// TaskUpdate is a partial task mutation. Nil fields are left untouched.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Priority     *domain.Priority
	Status       *domain.TaskStatus
	DueDate      *time.Time
	ClearDueDate bool
	CategoryID   *string
	Tags         []string
	Subtasks     []domain.Subtask
}

// Store mediates all mutations of a session's task collection and exposes
// the filtered view and statistics as computed reads. Mutations run to
// completion under the lock, so derived views always reflect the latest
// mutation with no staleness window.
type Store struct {
	mu         sync.RWMutex
	tasks      []*domain.Task
	categories []*domain.Category

	viewMode       domain.ViewMode
	filters        domain.TaskFilters
	selectedTaskID string
	taskFormOpen   bool
	editingTask    *domain.Task
}

func New() *Store {
	return &Store{
		viewMode: domain.ViewModeList,
		filters: domain.TaskFilters{
			Status:   domain.FilterAll,
			Priority: domain.FilterAll,
		},
	}
}

// SetTasks replaces the whole collection, preserving the source's order.
func (s *Store) SetTasks(tasks []*domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
}

// AddTask prepends the task: new tasks appear first.
func (s *Store) AddTask(task *domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]*domain.Task{task}, s.tasks...)
}

// UpdateTask merges the partial update into the matching task. A missing ID
// is a no-op, not an error: concurrent deletion from another session is an
// expected race. Later updates for the same ID simply re-merge (last write
// wins). Setting status to completed stamps CompletedAt; leaving the
// completed status clears it.
func (s *Store) UpdateTask(id string, updates TaskUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findLocked(id)
	if task == nil {
		return
	}

	if updates.Title != nil {
		task.Title = *updates.Title
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.Priority != nil {
		task.Priority = *updates.Priority
	}
	if updates.Status != nil && *updates.Status != task.Status {
		task.Status = *updates.Status
		if task.Status == domain.TaskStatusCompleted {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}
	if updates.ClearDueDate {
		task.DueDate = nil
	} else if updates.DueDate != nil {
		task.DueDate = updates.DueDate
	}
	if updates.CategoryID != nil {
		task.CategoryID = *updates.CategoryID
	}
	if updates.Tags != nil {
		task.Tags = updates.Tags
	}
	if updates.Subtasks != nil {
		task.Subtasks = updates.Subtasks
	}
	task.UpdatedAt = time.Now()
}

// ReplaceTask overwrites the matching task with a full record, typically a
// push-event payload. No-op if the ID is unknown.
func (s *Store) ReplaceTask(task *domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
}

// DeleteTask removes the matching task. No-op if absent.
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// Task returns the task with the given ID, or nil.
func (s *Store) Task(id string) *domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(id)
}

// Tasks returns the collection in its current order.
func (s *Store) Tasks() []*domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) findLocked(id string) *domain.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) SetCategories(categories []*domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
}

// AddCategory appends: categories keep their creation order.
func (s *Store) AddCategory(category *domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, category)
}

func (s *Store) Categories() []*domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) SetViewMode(mode domain.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewMode = mode
}

func (s *Store) ViewMode() domain.ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

func (s *Store) SetFilters(filters domain.TaskFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = filters
}

func (s *Store) Filters() domain.TaskFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

func (s *Store) SetSelectedTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedTaskID = id
}

func (s *Store) SelectedTask() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedTaskID
}

// OpenTaskForm opens the form in editing mode when given a task, or in
// creating mode when given nil.
func (s *Store) OpenTaskForm(task *domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskFormOpen = true
	s.editingTask = task
}

// CloseTaskForm clears both the open flag and the editing reference,
// whichever mode the form was in.
func (s *Store) CloseTaskForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskFormOpen = false
	s.editingTask = nil
}

func (s *Store) IsTaskFormOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskFormOpen
}

func (s *Store) EditingTask() *domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editingTask
}

// FilteredTasks applies the current filters to the collection.
func (s *Store) FilteredTasks() []*domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FilterTasks(s.tasks, s.filters)
}

// Stats recomputes the counts snapshot against the given instant.
func (s *Store) Stats(now time.Time) domain.TaskStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ComputeStats(s.tasks, now)
}
