package schedule

import (
	"testing"
	"time"

	"github.com/cadence-sh/cadence/internal/model"
)

func TestNextDaily(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternDaily, Interval: 1}
	next := Next(p, refNow, nil)
	if next == nil || !next.Equal(day(2026, 2, 10)) {
		t.Fatalf("next = %v, want 2026-02-10", next)
	}
}

func TestNextDailyIntervalHonorsCompletionParity(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternDaily, Interval: 2}
	completions := []time.Time{day(2026, 2, 8).Add(9 * time.Hour)}

	next := Next(p, refNow, completions)
	if next == nil || !next.Equal(day(2026, 2, 10)) {
		t.Fatalf("next = %v, want 2026-02-10 (two days after the anchor)", next)
	}
}

func TestNextWorkdaySkipsWeekend(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternDaily, Interval: 1, Special: model.DailyWorkdays}
	friday := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)

	next := Next(p, friday, nil)
	if next == nil || !next.Equal(day(2026, 2, 16)) {
		t.Fatalf("next = %v, want monday 2026-02-16", next)
	}
}

func TestNextWeekday(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternWeekly, Interval: 1, Weekdays: []time.Weekday{time.Wednesday}}
	next := Next(p, refNow, nil)
	if next == nil || !next.Equal(day(2026, 2, 11)) {
		t.Fatalf("next = %v, want 2026-02-11", next)
	}
}

func TestNextWeekdayOnItsOwnDayMovesAWeek(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternWeekly, Interval: 1, Weekdays: []time.Weekday{time.Monday}}
	next := Next(p, refNow, nil)
	if next == nil || !next.Equal(day(2026, 2, 16)) {
		t.Fatalf("next = %v, want 2026-02-16", next)
	}
}

func TestNextWeekAnyIsFollowingMonday(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternWeekly, Interval: 1, AnyWeekday: true}
	next := Next(p, refNow, nil)
	if next == nil || !next.Equal(day(2026, 2, 16)) {
		t.Fatalf("next = %v, want 2026-02-16", next)
	}
}

func TestNextMonthlyOnDay(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternMonthly, Interval: 1, MonthlyMode: model.MonthlyOnDay, DayOfMonth: 15}
	next := Next(p, refNow, nil)
	if next == nil || !next.Equal(day(2026, 2, 15)) {
		t.Fatalf("next = %v, want 2026-02-15", next)
	}

	late := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	next = Next(p, late, nil)
	if next == nil || !next.Equal(day(2026, 3, 15)) {
		t.Fatalf("next = %v, want 2026-03-15", next)
	}
}

func TestNextMonthlyLastDay(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternMonthly, Interval: 1, MonthlyMode: model.MonthlyLastDay}
	next := Next(p, refNow, nil)
	if next == nil || !next.Equal(day(2026, 2, 28)) {
		t.Fatalf("next = %v, want 2026-02-28", next)
	}
}

func TestNextYearly(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternYearly, Interval: 1, Month: time.December, Day: 25}
	next := Next(p, refNow, nil)
	if next == nil || !next.Equal(day(2026, 12, 25)) {
		t.Fatalf("next = %v, want 2026-12-25", next)
	}

	late := time.Date(2026, 12, 26, 12, 0, 0, 0, time.UTC)
	next = Next(p, late, nil)
	if next == nil || !next.Equal(day(2027, 12, 25)) {
		t.Fatalf("next = %v, want 2027-12-25", next)
	}
}

func TestNextRelativePointsAtOverdueDate(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternRelative, Interval: 4, DaysAfter: 4}
	completions := []time.Time{day(2026, 2, 1).Add(8 * time.Hour)}

	// Feb 5 already passed at the reference instant; an overdue relative
	// task keeps pointing at the date it fell due.
	next := Next(p, refNow, completions)
	if next == nil || !next.Equal(day(2026, 2, 5)) {
		t.Fatalf("next = %v, want 2026-02-05", next)
	}
}

func TestNextRelativeWithoutHistory(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternRelative, Interval: 4, DaysAfter: 4}
	if next := Next(p, refNow, nil); next != nil {
		t.Fatalf("expected nil without completions, got %v", next)
	}
}

func TestNextRespectsEndClause(t *testing.T) {
	p := model.RecurrencePattern{
		Kind:     model.PatternDaily,
		Interval: 1,
		End:      &model.DateClause{Year: 2026, Month: time.February, Day: 10},
	}
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	if next := Next(p, now, nil); next != nil {
		t.Fatalf("expected nil past the end clause, got %v", next)
	}
}

func TestPreviewDaily(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternDaily, Interval: 1}
	got := Preview(p, refNow, nil, 3)
	want := []time.Time{day(2026, 2, 10), day(2026, 2, 11), day(2026, 2, 12)}
	if len(got) != len(want) {
		t.Fatalf("preview length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("preview[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPreviewCompletionDrivenChain(t *testing.T) {
	p := model.RecurrencePattern{Kind: model.PatternCompletion, Interval: 3, DaysAfter: 3}
	completions := []time.Time{day(2026, 2, 9).Add(9 * time.Hour)}

	got := Preview(p, refNow, completions, 3)
	want := []time.Time{day(2026, 2, 12), day(2026, 2, 15), day(2026, 2, 18)}
	if len(got) != len(want) {
		t.Fatalf("preview length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("preview[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
