package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTaskIDRequired    = errors.New("model: task id is required")
	ErrTaskTitleRequired = errors.New("model: task title is required")
)

// Task is a tracked recurring item. DueString holds the human-authored
// recurrence description exactly as entered; parsing happens at stats
// time so an unsupported phrasing is reported instead of lost.
type Task struct {
	ID        string
	Title     string
	DueString string
	CreatedAt time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrTaskIDRequired
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleRequired
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

// Completion is one recorded done event for a task.
type Completion struct {
	ID          string
	TaskID      string
	CompletedAt time.Time
}

func (c Completion) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: completion id is required")
	}
	if strings.TrimSpace(c.TaskID) == "" {
		return errors.New("model: completion task id is required")
	}
	if c.CompletedAt.IsZero() {
		return errors.New("model: completion time is required")
	}
	return nil
}
