package storage

import "time"

type Task struct {
	ID         string
	Title      string
	DueString  string
	CreatedAt  time.Time
	ArchivedAt *time.Time
}

type Completion struct {
	ID          string
	TaskID      string
	CompletedAt time.Time
}

type TaskListFilter struct {
	IncludeArchived bool
	Limit           int
	Offset          int
}

type CompletionListFilter struct {
	TaskID string
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}
