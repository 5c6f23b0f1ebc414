package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	AddCompletion(ctx context.Context, in Completion) error
	DeleteCompletion(ctx context.Context, id string) error
	ListCompletions(ctx context.Context, filter CompletionListFilter) ([]Completion, error)

	// CompletionTimes returns the raw completion instants for one task,
	// newest first, optionally bounded below. Day-level deduplication is
	// the engine's job, not the store's.
	CompletionTimes(ctx context.Context, taskID string, since *time.Time) ([]time.Time, error)
}
