package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cadence-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	task := Task{
		ID:        "task-1",
		Title:     "Water plants",
		DueString: "every 3 days",
		CreatedAt: created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.DueString != "every 3 days" {
		t.Fatalf("unexpected task get result: %#v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at round trip: got %v, want %v", got.CreatedAt, created)
	}

	task.Title = "Water the plants"
	task.DueString = "every other day"
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}

	listed, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(listed) != 1 || listed[0].DueString != "every other day" {
		t.Fatalf("unexpected list result: %#v", listed)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestListTasksExcludesArchivedByDefault(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")
	archived := created.Add(time.Hour)

	if err := repo.CreateTask(ctx, Task{ID: "live", Title: "Live", CreatedAt: created}); err != nil {
		t.Fatalf("create live: %v", err)
	}
	if err := repo.CreateTask(ctx, Task{ID: "old", Title: "Old", CreatedAt: created.Add(time.Minute), ArchivedAt: &archived}); err != nil {
		t.Fatalf("create archived: %v", err)
	}

	active, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != "live" {
		t.Fatalf("unexpected active list: %#v", active)
	}

	all, err := repo.ListTasks(ctx, TaskListFilter{IncludeArchived: true})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tasks including archived, got %d", len(all))
	}
	if all[1].ArchivedAt == nil || !all[1].ArchivedAt.Equal(archived) {
		t.Fatalf("archived_at round trip: %#v", all[1].ArchivedAt)
	}
}

func TestCompletionsOrderedNewestFirst(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-01T08:00:00Z")

	if err := repo.CreateTask(ctx, Task{ID: "task-1", Title: "Stretch", CreatedAt: created}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	for i, stamp := range []string{
		"2026-02-03T09:00:00Z",
		"2026-02-07T09:00:00Z",
		"2026-02-05T09:00:00Z",
	} {
		completion := Completion{
			ID:          "done-" + string(rune('a'+i)),
			TaskID:      "task-1",
			CompletedAt: parseRFC3339(t, stamp),
		}
		if err := repo.AddCompletion(ctx, completion); err != nil {
			t.Fatalf("add completion: %v", err)
		}
	}

	times, err := repo.CompletionTimes(ctx, "task-1", nil)
	if err != nil {
		t.Fatalf("completion times: %v", err)
	}
	if len(times) != 3 {
		t.Fatalf("expected 3 completions, got %d", len(times))
	}
	if times[0].Day() != 7 || times[1].Day() != 5 || times[2].Day() != 3 {
		t.Fatalf("completions not newest first: %v", times)
	}

	since := parseRFC3339(t, "2026-02-04T00:00:00Z")
	bounded, err := repo.CompletionTimes(ctx, "task-1", &since)
	if err != nil {
		t.Fatalf("bounded completion times: %v", err)
	}
	if len(bounded) != 2 {
		t.Fatalf("expected 2 bounded completions, got %d", len(bounded))
	}
}

func TestListCompletionsFilterAndPagination(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-01T08:00:00Z")

	if err := repo.CreateTask(ctx, Task{ID: "task-1", Title: "Read", CreatedAt: created}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	for i := 0; i < 5; i++ {
		completion := Completion{
			ID:          "done-" + string(rune('a'+i)),
			TaskID:      "task-1",
			CompletedAt: created.AddDate(0, 0, i),
		}
		if err := repo.AddCompletion(ctx, completion); err != nil {
			t.Fatalf("add completion: %v", err)
		}
	}

	page, err := repo.ListCompletions(ctx, CompletionListFilter{TaskID: "task-1", Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page))
	}
	if page[0].CompletedAt.Day() != 4 || page[1].CompletedAt.Day() != 3 {
		t.Fatalf("unexpected page contents: %#v", page)
	}
}

func TestDeleteTaskCascadesCompletions(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-01T08:00:00Z")

	if err := repo.CreateTask(ctx, Task{ID: "task-1", Title: "Run", CreatedAt: created}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := repo.AddCompletion(ctx, Completion{ID: "done-1", TaskID: "task-1", CompletedAt: created}); err != nil {
		t.Fatalf("add completion: %v", err)
	}

	if err := repo.DeleteTask(ctx, "task-1"); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	left, err := repo.ListCompletions(ctx, CompletionListFilter{TaskID: "task-1"})
	if err != nil {
		t.Fatalf("list completions: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected cascade delete, %d completions left", len(left))
	}
}

func TestMutationsOnMissingRowsReturnNotFound(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if err := repo.DeleteTask(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := repo.DeleteCompletion(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	task := Task{ID: "ghost", Title: "Ghost", CreatedAt: parseRFC3339(t, "2026-02-01T08:00:00Z")}
	if err := repo.UpdateTask(ctx, task); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
