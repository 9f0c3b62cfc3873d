package domain

import "time"

// TaskStats is a derived snapshot of task counts. It is recomputed on every
// call and never persisted.
type TaskStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Overdue    int `json:"overdue"`
}

// ComputeStats counts tasks by bucket against the given reference instant.
// Archived tasks count toward the total but not toward completed, pending or
// in_progress. An archived task with a past due date still counts as overdue
// (only completed exempts a past-due task); product has been asked whether
// that is intended, until then the behavior stands.
func ComputeStats(tasks []*Task, now time.Time) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case TaskStatusCompleted:
			stats.Completed++
		case TaskStatusTodo:
			stats.Pending++
		case TaskStatusInProgress:
			stats.InProgress++
		}
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusCompleted {
			stats.Overdue++
		}
	}
	return stats
}
