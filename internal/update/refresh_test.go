package update

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cadence-sh/cadence/internal/model"
	"github.com/cadence-sh/cadence/internal/storage"
)

type fakeRepo struct {
	tasks       []storage.Task
	completions map[string][]time.Time
	added       []storage.Completion
	deleted     []string
}

func (f *fakeRepo) CreateTask(ctx context.Context, in storage.Task) error {
	f.tasks = append(f.tasks, in)
	return nil
}

func (f *fakeRepo) GetTask(ctx context.Context, id string) (storage.Task, error) {
	for _, task := range f.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return storage.Task{}, storage.ErrNotFound
}

func (f *fakeRepo) UpdateTask(ctx context.Context, in storage.Task) error { return nil }

func (f *fakeRepo) DeleteTask(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) ListTasks(ctx context.Context, filter storage.TaskListFilter) ([]storage.Task, error) {
	return f.tasks, nil
}

func (f *fakeRepo) AddCompletion(ctx context.Context, in storage.Completion) error {
	f.added = append(f.added, in)
	return nil
}

func (f *fakeRepo) DeleteCompletion(ctx context.Context, id string) error { return nil }

func (f *fakeRepo) ListCompletions(ctx context.Context, filter storage.CompletionListFilter) ([]storage.Completion, error) {
	return nil, nil
}

func (f *fakeRepo) CompletionTimes(ctx context.Context, taskID string, since *time.Time) ([]time.Time, error) {
	return f.completions[taskID], nil
}

func testConfig() RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.WindowMonths = 1
	return cfg
}

func TestComputeRowsBuildsStatsAndTargets(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		tasks: []storage.Task{
			{ID: "t1", Title: "Water plants", DueString: "every day", CreatedAt: now.AddDate(0, -2, 0)},
		},
		completions: map[string][]time.Time{
			"t1": {
				time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC),
				time.Date(2026, 2, 7, 9, 0, 0, 0, time.UTC),
			},
		},
	}

	rows, err := ComputeRows(context.Background(), repo, testConfig(), now)
	if err != nil {
		t.Fatalf("compute rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.ParseErr != "" {
		t.Fatalf("unexpected parse error: %s", row.ParseErr)
	}
	if row.Stats.TotalCompletions != 2 {
		t.Fatalf("completions = %d, want 2", row.Stats.TotalCompletions)
	}
	if len(row.Targets) == 0 {
		t.Fatal("expected generated targets")
	}
	if !row.Targets[0].Pending {
		t.Fatal("today's unsatisfied target should be pending")
	}
	if len(row.Upcoming) != upcomingPreviewCount {
		t.Fatalf("upcoming = %d entries, want %d", len(row.Upcoming), upcomingPreviewCount)
	}
	if row.Upcoming[0] != "2026-02-10" {
		t.Fatalf("first upcoming = %s, want 2026-02-10", row.Upcoming[0])
	}
}

func TestComputeRowsReportsParseErrorDistinctly(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		tasks: []storage.Task{
			{ID: "bad", Title: "Vague habit", DueString: "whenever", CreatedAt: now},
			{ID: "ok", Title: "Stretch", DueString: "every day", CreatedAt: now},
		},
		completions: map[string][]time.Time{},
	}

	rows, err := ComputeRows(context.Background(), repo, testConfig(), now)
	if err != nil {
		t.Fatalf("compute rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ParseErr == "" {
		t.Fatal("unparseable due string should set ParseErr")
	}
	if rows[0].Stats.TotalCompletions != 0 || len(rows[0].Targets) != 0 {
		t.Fatalf("parse-error row must carry no stats: %+v", rows[0])
	}
	if rows[1].ParseErr != "" {
		t.Fatalf("valid row flagged with parse error: %s", rows[1].ParseErr)
	}
}

func TestNewTaskRejectsInvalidFields(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

	task, err := newTask("Water plants", "every day", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID == "" || !task.CreatedAt.Equal(now) {
		t.Fatalf("unexpected task record: %#v", task)
	}

	if _, err := newTask("   ", "every day", now); !errors.Is(err, model.ErrTaskTitleRequired) {
		t.Fatalf("expected ErrTaskTitleRequired, got: %v", err)
	}
}

func TestNewCompletionRejectsZeroTime(t *testing.T) {
	completion, err := newCompletion("t1", time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completion.TaskID != "t1" || completion.ID == "" {
		t.Fatalf("unexpected completion record: %#v", completion)
	}

	if _, err := newCompletion("t1", time.Time{}); err == nil {
		t.Fatal("expected error for zero completion time")
	}
}

func TestRunCommandAddValidatesDueString(t *testing.T) {
	repo := &fakeRepo{completions: map[string][]time.Time{}}
	m := NewModel(repo, nil, testConfig())

	m, _ = m.runCommand("/add Water plants due:every 3 days")
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %s", m.Status.Text)
	}
	if len(repo.tasks) != 1 || repo.tasks[0].Title != "Water plants" {
		t.Fatalf("task not stored: %#v", repo.tasks)
	}
	if repo.tasks[0].ID == "" {
		t.Fatal("task should get a generated id")
	}

	m, _ = m.runCommand("/add Bad habit due:whenever")
	if !m.Status.IsError {
		t.Fatal("unsupported due string should surface as an error")
	}
	if len(repo.tasks) != 1 {
		t.Fatalf("invalid task must not be stored, have %d", len(repo.tasks))
	}
}

func TestRunCommandDoneResolvesTaskByTitle(t *testing.T) {
	repo := &fakeRepo{completions: map[string][]time.Time{}}
	m := NewModel(repo, nil, testConfig())
	m.Rows = []TaskRow{{ID: "t1", Title: "Water plants", Due: "every day"}}

	m, _ = m.runCommand("done water on 2026-02-08")
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %s", m.Status.Text)
	}
	if len(repo.added) != 1 || repo.added[0].TaskID != "t1" {
		t.Fatalf("completion not recorded: %#v", repo.added)
	}
	if repo.added[0].CompletedAt.Day() != 8 {
		t.Fatalf("completion date = %v, want the 8th", repo.added[0].CompletedAt)
	}

	m, _ = m.runCommand("done nothing-matches")
	if !m.Status.IsError {
		t.Fatal("unknown task reference should surface as an error")
	}
}

func TestRunCommandWindowUpdatesConfig(t *testing.T) {
	repo := &fakeRepo{completions: map[string][]time.Time{}}
	m := NewModel(repo, nil, testConfig())

	m, _ = m.runCommand("window 3")
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %s", m.Status.Text)
	}
	if m.Config.WindowMonths != 3 {
		t.Fatalf("window months = %d, want 3", m.Config.WindowMonths)
	}
}

func TestRunCommandRemoveDeletesTask(t *testing.T) {
	repo := &fakeRepo{completions: map[string][]time.Time{}}
	m := NewModel(repo, nil, testConfig())
	m.Rows = []TaskRow{{ID: "t1", Title: "Water plants", Due: "every day"}}

	m, _ = m.runCommand("remove water")
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %s", m.Status.Text)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "t1" {
		t.Fatalf("task not deleted: %#v", repo.deleted)
	}
}

func TestFindRowPrefersExactThenUniqueSubstring(t *testing.T) {
	m := Model{Rows: []TaskRow{
		{ID: "t1", Title: "Water plants"},
		{ID: "t2", Title: "Plant seedlings"},
		{ID: "t3", Title: "Stretch"},
	}}

	row, ok := m.findRow("Water plants")
	if !ok || row.ID != "t1" {
		t.Fatalf("exact title lookup failed: %#v", row)
	}
	row, ok = m.findRow("t3")
	if !ok || row.Title != "Stretch" {
		t.Fatalf("id lookup failed: %#v", row)
	}
	row, ok = m.findRow("stretch")
	if !ok || row.ID != "t3" {
		t.Fatalf("case-insensitive lookup failed: %#v", row)
	}
	if _, ok := m.findRow("plant"); ok {
		t.Fatal("ambiguous substring must not resolve")
	}
	if _, ok := m.findRow(""); ok {
		t.Fatal("empty reference must not resolve")
	}
}
