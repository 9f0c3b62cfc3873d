package usecase

import (
	"errors"
	"log"
	"time"

	"taskflow-backend/internal/task/domain"
	"taskflow-backend/internal/task/repository"
	"taskflow-backend/pkg/sse"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrSubtaskNotFound  = errors.New("subtask not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidDate      = errors.New("malformed date")
)

// defaultCategories is the starter set created for every new user
var defaultCategories = []struct {
	Name  string
	Color string
	Icon  string
}{
	{"Work", "#3b82f6", "briefcase"},
	{"Personal", "#8b5cf6", "user"},
	{"Shopping", "#f59e0b", "shopping-cart"},
	{"Health", "#22c55e", "heart"},
	{"Finance", "#06b6d4", "dollar-sign"},
}

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo     repository.TaskRepository
	categoryRepo repository.CategoryRepository
	reminderRepo repository.ReminderRepository
	prefRepo     repository.PreferenceRepository
	events       *sse.Manager
}

// NewTaskUsecase creates a new instance of taskUsecase. The SSE manager may
// be nil; mutations then simply emit no push events.
func NewTaskUsecase(
	taskRepo repository.TaskRepository,
	categoryRepo repository.CategoryRepository,
	reminderRepo repository.ReminderRepository,
	prefRepo repository.PreferenceRepository,
	events *sse.Manager,
) TaskUsecase {
	return &taskUsecase{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		reminderRepo: reminderRepo,
		prefRepo:     prefRepo,
		events:       events,
	}
}

func (u *taskUsecase) CreateTask(userID string, input CreateTaskInput) (*domain.Task, error) {
	task := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    parsePriority(input.Priority),
		Status:      parseStatus(input.Status),
		CategoryID:  input.CategoryID,
		Tags:        input.Tags,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if input.DueDate != nil && *input.DueDate != "" {
		t, err := time.Parse(time.RFC3339, *input.DueDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		task.DueDate = &t
	}

	if task.Status == domain.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	for i, st := range input.Subtasks {
		if st.Title == "" {
			continue
		}
		order := st.SortOrder
		if order == 0 {
			order = i
		}
		task.Subtasks = append(task.Subtasks, domain.Subtask{
			ID:        uuid.New().String(),
			TaskID:    task.ID,
			Title:     st.Title,
			SortOrder: order,
			CreatedAt: time.Now(),
		})
	}

	if err := u.taskRepo.Create(task); err != nil {
		return nil, err
	}

	// The reminder is derived only after the task exists durably; a failure
	// here never rolls the task back.
	u.createReminder(task, input.ReminderMinutes, input.Recurrence)

	u.publish(userID, "task_created", task)
	return task, nil
}

// createReminder persists the derived reminder. Missing offset or due date
// is a silent no-op; a persistence failure is logged and swallowed since the
// task is the primary artifact.
func (u *taskUsecase) createReminder(task *domain.Task, offsetMinutes *int, recurrence string) {
	remindAt := domain.RemindAt(task.DueDate, offsetMinutes)
	if remindAt == nil {
		return
	}

	reminder := &domain.Reminder{
		ID:         uuid.New().String(),
		TaskID:     task.ID,
		UserID:     task.UserID,
		RemindAt:   *remindAt,
		Recurrence: parseRecurrence(recurrence),
		IsSent:     false,
	}

	if err := u.reminderRepo.Create(reminder); err != nil {
		log.Printf("[TaskUsecase] Failed to create reminder for task %s: %v", task.ID, err)
		return
	}
	task.Reminders = append(task.Reminders, *reminder)
}

func (u *taskUsecase) GetTaskByID(userID, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.UserID != userID {
		return nil, ErrUnauthorized
	}
	return task, nil
}

func (u *taskUsecase) GetUserTasks(userID string) ([]*domain.Task, error) {
	return u.taskRepo.FindByUserID(userID)
}

func (u *taskUsecase) UpdateTask(userID, taskID string, updates TaskUpdateRequest) (*domain.Task, error) {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		task.Title = *updates.Title
		if err := task.Validate(); err != nil {
			return nil, err
		}
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.Priority != nil {
		task.Priority = parsePriority(*updates.Priority)
	}
	if updates.Status != nil {
		newStatus := parseStatus(*updates.Status)
		if newStatus != task.Status {
			task.Status = newStatus
			// completed_at is paired with the completed status: set on the
			// transition in, cleared on the transition out.
			if newStatus == domain.TaskStatusCompleted {
				now := time.Now()
				task.CompletedAt = &now
			} else {
				task.CompletedAt = nil
			}
		}
	}
	if updates.DueDate != nil {
		if *updates.DueDate == "" {
			task.DueDate = nil
		} else {
			t, err := time.Parse(time.RFC3339, *updates.DueDate)
			if err != nil {
				return nil, ErrInvalidDate
			}
			task.DueDate = &t
		}
	}
	if updates.CategoryID != nil {
		task.CategoryID = *updates.CategoryID
	}
	if updates.Tags != nil {
		task.Tags = *updates.Tags
	}

	task.UpdatedAt = time.Now()
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}

	u.publish(userID, "task_updated", task)
	return task, nil
}

func (u *taskUsecase) DeleteTask(userID, taskID string) error {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return err
	}
	if err := u.taskRepo.Delete(task.ID); err != nil {
		return err
	}
	u.publish(userID, "task_deleted", map[string]string{"id": taskID})
	return nil
}

func (u *taskUsecase) GetStats(userID string, now time.Time) (domain.TaskStats, error) {
	tasks, err := u.taskRepo.FindByUserID(userID)
	if err != nil {
		return domain.TaskStats{}, err
	}
	return domain.ComputeStats(tasks, now), nil
}

func (u *taskUsecase) AddSubtask(userID, taskID, title string, sortOrder int) (*domain.Task, error) {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	task.Subtasks = append(task.Subtasks, domain.Subtask{
		ID:        uuid.New().String(),
		TaskID:    task.ID,
		Title:     title,
		SortOrder: sortOrder,
		CreatedAt: time.Now(),
	})

	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	u.publish(userID, "task_updated", task)
	return task, nil
}

func (u *taskUsecase) UpdateSubtask(userID, taskID, subtaskID string, updates SubtaskUpdateRequest) (*domain.Task, error) {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range task.Subtasks {
		if task.Subtasks[i].ID != subtaskID {
			continue
		}
		if updates.Title != nil {
			task.Subtasks[i].Title = *updates.Title
		}
		if updates.IsCompleted != nil {
			task.Subtasks[i].IsCompleted = *updates.IsCompleted
		}
		if updates.SortOrder != nil {
			task.Subtasks[i].SortOrder = *updates.SortOrder
		}
		found = true
		break
	}
	if !found {
		return nil, ErrSubtaskNotFound
	}

	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	u.publish(userID, "task_updated", task)
	return task, nil
}

func (u *taskUsecase) DeleteSubtask(userID, taskID, subtaskID string) (*domain.Task, error) {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	kept := task.Subtasks[:0]
	found := false
	for _, st := range task.Subtasks {
		if st.ID == subtaskID {
			found = true
			continue
		}
		kept = append(kept, st)
	}
	if !found {
		return nil, ErrSubtaskNotFound
	}
	task.Subtasks = kept

	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	u.publish(userID, "task_updated", task)
	return task, nil
}

func (u *taskUsecase) CreateCategory(userID, name, color, icon string) (*domain.Category, error) {
	if name == "" {
		return nil, domain.ErrEmptyTitle
	}
	category := &domain.Category{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   name,
		Color:  color,
		Icon:   icon,
	}
	if err := u.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (u *taskUsecase) GetUserCategories(userID string) ([]*domain.Category, error) {
	return u.categoryRepo.FindByUserID(userID)
}

func (u *taskUsecase) UpdateCategory(userID, categoryID, name, color, icon string) (*domain.Category, error) {
	category, err := u.categoryRepo.FindByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if category.UserID != userID {
		return nil, ErrUnauthorized
	}

	if name != "" {
		category.Name = name
	}
	if color != "" {
		category.Color = color
	}
	if icon != "" {
		category.Icon = icon
	}

	if err := u.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (u *taskUsecase) DeleteCategory(userID, categoryID string) error {
	category, err := u.categoryRepo.FindByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	if category.UserID != userID {
		return ErrUnauthorized
	}
	return u.categoryRepo.Delete(categoryID)
}

func (u *taskUsecase) SeedDefaultCategories(userID string) {
	for _, c := range defaultCategories {
		category := &domain.Category{
			ID:     uuid.New().String(),
			UserID: userID,
			Name:   c.Name,
			Color:  c.Color,
			Icon:   c.Icon,
		}
		if err := u.categoryRepo.Create(category); err != nil {
			log.Printf("[TaskUsecase] Failed to seed category %q for user %s: %v", c.Name, userID, err)
		}
	}
}

func (u *taskUsecase) GetPreferences(userID string) (*domain.Preference, error) {
	pref, err := u.prefRepo.Find(userID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return &domain.Preference{
			UserID:   userID,
			ViewMode: domain.ViewModeList,
			Filters: domain.TaskFilters{
				Status:   domain.FilterAll,
				Priority: domain.FilterAll,
			},
		}, nil
	}
	return pref, nil
}

func (u *taskUsecase) SavePreferences(userID string, viewMode domain.ViewMode, filters domain.TaskFilters) (*domain.Preference, error) {
	pref := &domain.Preference{
		UserID:   userID,
		ViewMode: viewMode,
		Filters:  filters,
	}
	if err := u.prefRepo.Save(pref); err != nil {
		return nil, err
	}
	return pref, nil
}

func (u *taskUsecase) GetDueReminders(now time.Time) ([]*domain.DueReminder, error) {
	return u.reminderRepo.FindDue(now)
}

func (u *taskUsecase) MarkRemindersSent(ids []string) (int, error) {
	if err := u.reminderRepo.MarkSent(ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (u *taskUsecase) publish(userID, eventType string, payload interface{}) {
	if u.events == nil {
		return
	}
	u.events.SendToUser(userID, sse.Event{Type: eventType, Payload: payload})
}

func parsePriority(p string) domain.Priority {
	switch p {
	case "high":
		return domain.PriorityHigh
	case "low":
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}

func parseStatus(s string) domain.TaskStatus {
	switch s {
	case "in_progress":
		return domain.TaskStatusInProgress
	case "completed":
		return domain.TaskStatusCompleted
	case "archived":
		return domain.TaskStatusArchived
	default:
		return domain.TaskStatusTodo
	}
}

func parseRecurrence(r string) domain.Recurrence {
	switch r {
	case "daily":
		return domain.RecurrenceDaily
	case "weekly":
		return domain.RecurrenceWeekly
	case "monthly":
		return domain.RecurrenceMonthly
	case "custom":
		return domain.RecurrenceCustom
	default:
		return domain.RecurrenceNone
	}
}
