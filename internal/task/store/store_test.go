package store

import (
	"testing"
	"time"

	"taskflow-backend/internal/task/domain"
)

func newTask(id, title string, status domain.TaskStatus) *domain.Task {
	return &domain.Task{
		ID:     id,
		UserID: "u1",
		Title:  title,
		Status: status,
	}
}

func strPtr(v string) *string { return &v }

func statusPtr(v domain.TaskStatus) *domain.TaskStatus { return &v }

func TestAddTaskPrepends(t *testing.T) {
	s := New()
	s.SetTasks([]*domain.Task{newTask("1", "first", domain.TaskStatusTodo)})
	s.AddTask(newTask("2", "second", domain.TaskStatusTodo))

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "2" || tasks[1].ID != "1" {
		t.Fatalf("new task should be first, got order %s, %s", tasks[0].ID, tasks[1].ID)
	}
}

func TestSetTasksReplacesAndKeepsOrder(t *testing.T) {
	s := New()
	s.AddTask(newTask("old", "old", domain.TaskStatusTodo))

	s.SetTasks([]*domain.Task{
		newTask("a", "a", domain.TaskStatusTodo),
		newTask("b", "b", domain.TaskStatusTodo),
	})

	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != "a" || tasks[1].ID != "b" {
		t.Fatalf("unexpected collection after replace: %v", tasks)
	}
}

func TestUpdateTaskMergesFields(t *testing.T) {
	s := New()
	task := newTask("1", "original", domain.TaskStatusTodo)
	task.Description = "keep me"
	s.SetTasks([]*domain.Task{task})

	s.UpdateTask("1", TaskUpdate{Title: strPtr("renamed")})

	got := s.Task("1")
	if got.Title != "renamed" {
		t.Errorf("title = %q, want %q", got.Title, "renamed")
	}
	if got.Description != "keep me" {
		t.Errorf("unset field was touched: description = %q", got.Description)
	}
	if got.Status != domain.TaskStatusTodo {
		t.Errorf("unset field was touched: status = %q", got.Status)
	}
}

func TestUpdateTaskPairsCompletedAt(t *testing.T) {
	s := New()
	s.SetTasks([]*domain.Task{newTask("1", "a", domain.TaskStatusTodo)})

	s.UpdateTask("1", TaskUpdate{Status: statusPtr(domain.TaskStatusCompleted)})
	if got := s.Task("1"); got.CompletedAt == nil {
		t.Fatal("completing a task must stamp completed_at")
	}

	s.UpdateTask("1", TaskUpdate{Status: statusPtr(domain.TaskStatusTodo)})
	if got := s.Task("1"); got.CompletedAt != nil {
		t.Fatal("leaving completed must clear completed_at")
	}
}

func TestUpdateTaskUnknownIDIsNoOp(t *testing.T) {
	s := New()
	task := newTask("1", "a", domain.TaskStatusTodo)
	s.SetTasks([]*domain.Task{task})

	s.UpdateTask("nope", TaskUpdate{Title: strPtr("ghost")})

	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "a" {
		t.Fatalf("update of unknown id changed the collection: %+v", tasks[0])
	}
}

func TestDeleteTask(t *testing.T) {
	s := New()
	s.SetTasks([]*domain.Task{
		newTask("1", "a", domain.TaskStatusTodo),
		newTask("2", "b", domain.TaskStatusTodo),
	})

	s.DeleteTask("1")
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "2" {
		t.Fatalf("unexpected collection after delete: %v", tasks)
	}

	// Deleting an absent id leaves everything untouched
	s.DeleteTask("1")
	tasks = s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "2" || tasks[0].Title != "b" {
		t.Fatalf("delete of absent id changed the collection: %v", tasks)
	}
}

func TestReplaceTask(t *testing.T) {
	s := New()
	s.SetTasks([]*domain.Task{newTask("1", "local", domain.TaskStatusTodo)})

	// A push event for a known task overwrites it in place
	remote := newTask("1", "remote", domain.TaskStatusInProgress)
	s.ReplaceTask(remote)
	if got := s.Task("1"); got.Title != "remote" || got.Status != domain.TaskStatusInProgress {
		t.Fatalf("replace did not take: %+v", got)
	}

	// A push event for an unknown task is a no-op
	s.ReplaceTask(newTask("ghost", "ghost", domain.TaskStatusTodo))
	if len(s.Tasks()) != 1 {
		t.Fatal("replace of unknown id inserted a task")
	}
}

func TestTaskFormModes(t *testing.T) {
	s := New()
	task := newTask("1", "edit me", domain.TaskStatusTodo)

	s.OpenTaskForm(task)
	if !s.IsTaskFormOpen() {
		t.Fatal("form should be open")
	}
	if got := s.EditingTask(); got == nil || got.ID != "1" {
		t.Fatalf("editing task = %v, want task 1", got)
	}

	s.CloseTaskForm()
	if s.IsTaskFormOpen() || s.EditingTask() != nil {
		t.Fatal("close must clear both the open flag and the editing reference")
	}

	// Creating mode: open with no task
	s.OpenTaskForm(nil)
	if !s.IsTaskFormOpen() || s.EditingTask() != nil {
		t.Fatal("creating mode should be open with no editing reference")
	}

	s.CloseTaskForm()
	if s.IsTaskFormOpen() || s.EditingTask() != nil {
		t.Fatal("close must clear creating mode too")
	}
}

func TestFilteredTasksUsesCurrentFilters(t *testing.T) {
	s := New()
	s.SetTasks([]*domain.Task{
		newTask("1", "a", domain.TaskStatusTodo),
		newTask("2", "b", domain.TaskStatusCompleted),
		newTask("3", "c", domain.TaskStatusTodo),
	})

	// Default filters are all/all: identity
	if got := s.FilteredTasks(); len(got) != 3 {
		t.Fatalf("default filters should pass everything, got %d", len(got))
	}

	s.SetFilters(domain.TaskFilters{Status: "todo", Priority: domain.FilterAll})
	got := s.FilteredTasks()
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected filtered view: %v", got)
	}
}

func TestStatsReflectMutationImmediately(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	s := New()
	task := newTask("1", "late", domain.TaskStatusTodo)
	task.DueDate = &past
	s.SetTasks([]*domain.Task{task})

	before := s.Stats(now)
	if before.Overdue != 1 || before.Pending != 1 {
		t.Fatalf("unexpected baseline stats: %+v", before)
	}

	s.UpdateTask("1", TaskUpdate{Status: statusPtr(domain.TaskStatusCompleted)})

	// No staleness window: the very next read sees the change
	after := s.Stats(now)
	if after.Overdue != 0 {
		t.Errorf("overdue = %d, want 0", after.Overdue)
	}
	if after.Completed != before.Completed+1 {
		t.Errorf("completed = %d, want %d", after.Completed, before.Completed+1)
	}
	if after.Total != before.Total {
		t.Errorf("total changed from %d to %d", before.Total, after.Total)
	}
}

func TestViewModeAndSelection(t *testing.T) {
	s := New()
	if s.ViewMode() != domain.ViewModeList {
		t.Fatalf("default view mode = %q, want list", s.ViewMode())
	}

	s.SetViewMode(domain.ViewModeBoard)
	if s.ViewMode() != domain.ViewModeBoard {
		t.Fatalf("view mode = %q, want board", s.ViewMode())
	}

	s.SetSelectedTask("42")
	if s.SelectedTask() != "42" {
		t.Fatalf("selected task = %q, want 42", s.SelectedTask())
	}
}

func TestCategories(t *testing.T) {
	s := New()
	s.SetCategories([]*domain.Category{{ID: "c1", Name: "Work"}})
	s.AddCategory(&domain.Category{ID: "c2", Name: "Home"})

	got := s.Categories()
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c2" {
		t.Fatalf("categories should append in order, got %v", got)
	}
}
