package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:        "task-1",
		Title:     "Water plants",
		DueString: "every 3 days",
		CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiredFields(t *testing.T) {
	task := Task{Title: "No id", CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)}
	if err := task.Validate(); !errors.Is(err, ErrTaskIDRequired) {
		t.Fatalf("expected ErrTaskIDRequired, got: %v", err)
	}

	task = Task{ID: "task-1", Title: "   ", CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)}
	if err := task.Validate(); !errors.Is(err, ErrTaskTitleRequired) {
		t.Fatalf("expected ErrTaskTitleRequired, got: %v", err)
	}

	task = Task{ID: "task-1", Title: "No timestamp"}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for zero created_at, got nil")
	}
}

func TestCompletionValidate(t *testing.T) {
	completion := Completion{
		ID:          "done-1",
		TaskID:      "task-1",
		CompletedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	if err := completion.Validate(); err != nil {
		t.Fatalf("expected valid completion, got error: %v", err)
	}

	completion.CompletedAt = time.Time{}
	if err := completion.Validate(); err == nil {
		t.Fatal("expected error for zero completion time, got nil")
	}
}
