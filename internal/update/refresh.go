package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cadence-sh/cadence/internal/model"
	"github.com/cadence-sh/cadence/internal/parse"
	"github.com/cadence-sh/cadence/internal/schedule"
	"github.com/cadence-sh/cadence/internal/scheduler"
	"github.com/cadence-sh/cadence/internal/stats"
	"github.com/cadence-sh/cadence/internal/storage"
)

const upcomingPreviewCount = 5

// windowTaskID is the synthetic engine entry that slides the analysis
// window at the next midnight.
const windowTaskID = "@window"

func refreshCmd(repo storage.Repository, cfg RuntimeConfig) tea.Cmd {
	return func() tea.Msg {
		now := time.Now().UTC()
		rows, err := ComputeRows(context.Background(), repo, cfg, now)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return StatsComputedMsg{Rows: rows, At: now}
	}
}

// ComputeRows runs the engine for every stored task against a single
// reference instant, so all rows in one pass agree on "now".
func ComputeRows(ctx context.Context, repo storage.Repository, cfg RuntimeConfig, now time.Time) ([]TaskRow, error) {
	tasks, err := repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	opts := stats.Options{
		WindowMonths:      cfg.WindowMonths,
		HoldPendingWeekly: cfg.HoldPendingWeekly,
		RateCap:           cfg.RateCap,
	}

	rows := make([]TaskRow, 0, len(tasks))
	for _, task := range tasks {
		row := TaskRow{ID: task.ID, Title: task.Title, Due: task.DueString}
		completions, err := repo.CompletionTimes(ctx, task.ID, nil)
		if err != nil {
			return nil, fmt.Errorf("completions for %s: %w", task.ID, err)
		}

		pattern, parseErr := parse.Parse(task.DueString)
		if parseErr != nil {
			row.ParseErr = parseErr.Error()
			rows = append(rows, row)
			continue
		}

		row.Stats = stats.Aggregate(pattern, completions, now, opts)
		row.Targets = targetRows(pattern, completions, now, opts)
		deduped := model.DedupDays(completions)
		for _, next := range schedule.Preview(pattern, now, deduped, upcomingPreviewCount) {
			row.Upcoming = append(row.Upcoming, next.Format("2006-01-02"))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func targetRows(pattern model.RecurrencePattern, completions []time.Time, now time.Time, opts stats.Options) []TargetRow {
	w := schedule.NewWindow(now, opts.WindowMonths)
	deduped := model.DedupDays(completions)
	targets := schedule.Generate(pattern, w, deduped)
	matched := stats.Match(targets, deduped)

	out := make([]TargetRow, 0, len(targets))
	for i, target := range targets {
		out = append(out, TargetRow{
			Date:    target.Date.Format("2006-01-02 (Mon)"),
			Hit:     matched[i],
			Pending: !matched[i] && target.Pending(now),
		})
	}
	return out
}

// scheduleRefreshes arms the engine with one trigger per task at its
// next expected occurrence, plus the midnight window slide.
func scheduleRefreshes(engine *scheduler.Engine, rows []TaskRow, now time.Time) {
	if engine == nil {
		return
	}
	for _, row := range rows {
		if row.ParseErr != "" || row.Stats.NextTarget == nil {
			continue
		}
		at := *row.Stats.NextTarget
		if !at.After(now) {
			continue
		}
		_ = engine.Schedule(row.ID, at)
	}
	midnight := model.DayOf(now).AddDate(0, 0, 1)
	_ = engine.Schedule(windowTaskID, midnight)
}

func waitForRefreshCmd(ch <-chan scheduler.RefreshEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return RefreshDueMsg{Event: ev}
	}
}
