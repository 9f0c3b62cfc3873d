package domain

import (
	"strings"
	"time"
)

// FilterAll disables the status or priority criterion.
const FilterAll = "all"

// DateRange bounds a due-date window, inclusive on both ends.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TaskFilters holds the criteria for a filtered task view. Zero values and
// nil pointers mean "criterion not applied"; any combination is legal and the
// set criteria combine with logical AND.
type TaskFilters struct {
	Status     string     `json:"status,omitempty"`
	Priority   string     `json:"priority,omitempty"`
	CategoryID string     `json:"category_id,omitempty"`
	Search     string     `json:"search,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	DateRange  *DateRange `json:"date_range,omitempty"`
}

// IsZero reports whether no criterion is active.
func (f TaskFilters) IsZero() bool {
	return !statusActive(f.Status) &&
		!statusActive(f.Priority) &&
		f.CategoryID == "" &&
		f.Search == "" &&
		len(f.Tags) == 0 &&
		f.DateRange == nil
}

func statusActive(v string) bool {
	return v != "" && v != FilterAll
}

// FilterTasks returns the tasks satisfying every active criterion, preserving
// input order. It is a pure function: no task is mutated and reapplying the
// same filters to its own output yields the same output. With no active
// criteria the input slice is returned unchanged.
func FilterTasks(tasks []*Task, filters TaskFilters) []*Task {
	if filters.IsZero() {
		return tasks
	}

	filtered := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, filters) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func matches(t *Task, f TaskFilters) bool {
	if statusActive(f.Status) && t.Status != TaskStatus(f.Status) {
		return false
	}
	if statusActive(f.Priority) && t.Priority != Priority(f.Priority) {
		return false
	}
	if f.CategoryID != "" && t.CategoryID != f.CategoryID {
		return false
	}
	if f.Search != "" {
		search := strings.ToLower(f.Search)
		title := strings.ToLower(t.Title)
		description := strings.ToLower(t.Description)
		if !strings.Contains(title, search) && !strings.Contains(description, search) {
			return false
		}
	}
	if len(f.Tags) > 0 && !hasAllTags(t.Tags, f.Tags) {
		return false
	}
	if f.DateRange != nil {
		if t.DueDate == nil {
			return false
		}
		if t.DueDate.Before(f.DateRange.Start) || t.DueDate.After(f.DateRange.End) {
			return false
		}
	}
	return true
}

func hasAllTags(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
