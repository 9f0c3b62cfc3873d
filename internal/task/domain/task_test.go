package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestTaskValidateRejectsEmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t"} {
		task := &Task{Title: title}
		if err := task.Validate(); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("Validate(%q) = %v, want ErrEmptyTitle", title, err)
		}
	}

	task := &Task{Title: "Do the thing"}
	if err := task.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestTaskJSONRoundTrip(t *testing.T) {
	due := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	completed := time.Date(2024, 2, 28, 17, 30, 0, 0, time.UTC)
	created := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	task := Task{
		ID:          "t1",
		UserID:      "u1",
		Title:       "Ship release",
		Description: "cut the tag and publish",
		Priority:    PriorityHigh,
		Status:      TaskStatusCompleted,
		DueDate:     &due,
		CategoryID:  "c1",
		Tags:        []string{"release", "ops"},
		CreatedAt:   created,
		UpdatedAt:   created,
		CompletedAt: &completed,
		Subtasks: []Subtask{
			{ID: "s1", TaskID: "t1", Title: "Tag", IsCompleted: true, SortOrder: 0, CreatedAt: created},
			{ID: "s2", TaskID: "t1", Title: "Publish", SortOrder: 1, CreatedAt: created},
		},
		Reminders: []Reminder{
			{ID: "r1", TaskID: "t1", UserID: "u1", RemindAt: due.Add(-30 * time.Minute), Recurrence: RecurrenceNone, CreatedAt: created},
		},
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Task
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(task, back) {
		t.Fatalf("round trip changed the task:\n before %+v\n after  %+v", task, back)
	}
}

func TestTaskJSONAbsentDueDateStaysAbsent(t *testing.T) {
	task := Task{ID: "t1", UserID: "u1", Title: "No deadline", Tags: []string{}}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if bytes.Contains(data, []byte("due_date")) {
		t.Fatalf("absent due_date was serialized: %s", data)
	}
	if bytes.Contains(data, []byte("completed_at")) {
		t.Fatalf("absent completed_at was serialized: %s", data)
	}

	var back Task
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.DueDate != nil {
		t.Errorf("due_date coerced to %v, want nil", back.DueDate)
	}
	if back.CompletedAt != nil {
		t.Errorf("completed_at coerced to %v, want nil", back.CompletedAt)
	}
}
