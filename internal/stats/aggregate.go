package stats

import (
	"time"

	"github.com/cadence-sh/cadence/internal/model"
	"github.com/cadence-sh/cadence/internal/schedule"
)

// TraceFunc is an optional hook the caller may supply to observe
// aggregation phases. It replaces embedded debug printing; the engine
// itself never writes anywhere.
type TraceFunc func(event string, args ...any)

type Options struct {
	WindowMonths int
	// HoldPendingWeekly keeps a weekly streak alive while today's
	// occurrence is still pending. Product intent is unsettled, so it
	// stays configurable; the default holds the streak.
	HoldPendingWeekly bool
	// RateCap bounds the completion rate. 100 caps over-completion;
	// 200 grants over-completion credit.
	RateCap int
	Trace   TraceFunc
}

func DefaultOptions() Options {
	return Options{
		WindowMonths:      schedule.DefaultWindowMonths,
		HoldPendingWeekly: true,
		RateCap:           100,
	}
}

// Aggregate computes the full statistics record for one task. It is a
// pure function of its inputs: the reference instant is captured once
// in the window so target generation and streak calculation agree.
func Aggregate(p model.RecurrencePattern, completions []time.Time, now time.Time, opts Options) model.TaskStats {
	if opts.WindowMonths <= 0 {
		opts.WindowMonths = schedule.DefaultWindowMonths
	}
	if opts.RateCap <= 0 {
		opts.RateCap = 100
	}
	w := schedule.NewWindow(now, opts.WindowMonths)
	history := model.DedupDays(completions)
	deduped := inWindow(history, w)
	trace(opts, "window", "start", w.Start, "completions", len(deduped))

	out := model.TaskStats{
		TotalCompletions: len(deduped),
		IntervalMonths:   p.IntervalMonths(),
		// The next expected date anchors to the full history: a relative
		// task whose last completion predates the window is overdue, not
		// unscheduled.
		NextTarget: schedule.Next(p, w.Now, history),
	}

	if out.IntervalMonths > opts.WindowMonths {
		// Long-term rule: the window cannot hold two occurrences, so
		// the rate is binary and the streak is at most one.
		out.IsLongTerm = true
		if len(deduped) > 0 {
			out.CompletionRate = 100
		}
		streaks := LongTermStreaks(len(deduped))
		out.CurrentStreak, out.LongestStreak = streaks.Current, streaks.Longest
		trace(opts, "long_term", "rate", out.CompletionRate)
		return out
	}

	targets := schedule.Generate(p, w, deduped)
	matched := Match(targets, deduped)
	satisfied := 0
	for _, ok := range matched {
		if ok {
			satisfied++
		}
	}
	trace(opts, "targets", "expected", len(targets), "satisfied", satisfied)

	if len(targets) > 0 {
		numerator := satisfied
		if opts.RateCap > 100 {
			// Over-completion credit: count every in-window completion,
			// not just the ones that landed on a target.
			numerator = len(deduped)
		}
		rate := int(float64(numerator)/float64(len(targets))*100 + 0.5)
		if rate > opts.RateCap {
			rate = opts.RateCap
		}
		out.CompletionRate = rate
	}

	streaks := Streaks(p, targets, matched, w.Now, opts.HoldPendingWeekly)
	out.CurrentStreak, out.LongestStreak = streaks.Current, streaks.Longest
	out.Trend = TrendSeries(p, targets, matched)
	return out
}

func inWindow(completions []time.Time, w schedule.Window) []time.Time {
	out := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		if c.Before(w.Start) || c.After(w.Now) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func trace(opts Options, event string, args ...any) {
	if opts.Trace != nil {
		opts.Trace(event, args...)
	}
}
