package domain

import (
	"testing"
	"time"
)

func TestComputeStatsCounts(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tasks := []*Task{
		{ID: "1", Status: TaskStatusTodo},
		{ID: "2", Status: TaskStatusTodo, DueDate: &past},
		{ID: "3", Status: TaskStatusInProgress, DueDate: &future},
		{ID: "4", Status: TaskStatusCompleted, DueDate: &past},
		{ID: "5", Status: TaskStatusArchived},
	}

	stats := ComputeStats(tasks, now)

	if stats.Total != 5 {
		t.Errorf("total = %d, want 5", stats.Total)
	}
	if stats.Completed != 1 {
		t.Errorf("completed = %d, want 1", stats.Completed)
	}
	if stats.Pending != 2 {
		t.Errorf("pending = %d, want 2", stats.Pending)
	}
	if stats.InProgress != 1 {
		t.Errorf("in_progress = %d, want 1", stats.InProgress)
	}
	// Task 4 is past due but completed, so only task 2 is overdue
	if stats.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", stats.Overdue)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, time.Now())
	if stats != (TaskStats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestComputeStatsArchivedPastDueIsOverdue(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	tasks := []*Task{
		{ID: "1", Status: TaskStatusArchived, DueDate: &past},
	}

	stats := ComputeStats(tasks, now)

	// Archived tasks sit outside the status buckets but still count toward
	// total, and a past-due archived task counts as overdue.
	if stats.Total != 1 {
		t.Errorf("total = %d, want 1", stats.Total)
	}
	if stats.Completed != 0 || stats.Pending != 0 || stats.InProgress != 0 {
		t.Errorf("archived task leaked into a status bucket: %+v", stats)
	}
	if stats.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", stats.Overdue)
	}
}

func TestComputeStatsCompletionRemovesOverdue(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	tasks := []*Task{
		{ID: "1", Status: TaskStatusTodo, DueDate: &past},
		{ID: "2", Status: TaskStatusTodo},
	}

	before := ComputeStats(tasks, now)
	if before.Overdue != 1 || before.Completed != 0 {
		t.Fatalf("unexpected baseline stats: %+v", before)
	}

	tasks[0].Status = TaskStatusCompleted
	after := ComputeStats(tasks, now)

	if after.Completed != before.Completed+1 {
		t.Errorf("completed = %d, want %d", after.Completed, before.Completed+1)
	}
	if after.Overdue != before.Overdue-1 {
		t.Errorf("overdue = %d, want %d", after.Overdue, before.Overdue-1)
	}
	if after.Total != before.Total {
		t.Errorf("total changed from %d to %d", before.Total, after.Total)
	}
	if after.Pending != before.Pending-1 {
		t.Errorf("pending = %d, want %d", after.Pending, before.Pending-1)
	}
}
