package schedule

import (
	"time"

	"github.com/cadence-sh/cadence/internal/model"
)

// Next returns the first occurrence strictly after the reference
// instant, or nil when none can be derived. For completion-relative
// patterns the result is lastCompletion + N days even when that date
// has already passed: an overdue relative task keeps pointing at the
// date it fell due.
func Next(p model.RecurrencePattern, now time.Time, completions []time.Time) *time.Time {
	base := model.DayOf(now)
	var next time.Time
	switch p.Kind {
	case model.PatternRelative, model.PatternCompletion:
		if len(completions) == 0 {
			return nil
		}
		next = model.DayOf(completions[0]).AddDate(0, 0, p.DaysAfter)
	case model.PatternDaily:
		next = nextDaily(p, base, completions)
	case model.PatternWeekly:
		if p.AnyWeekday {
			next = model.StartOfISOWeek(base).AddDate(0, 0, 7)
		} else {
			next = nextWeekday(p, base, completions)
		}
	case model.PatternMonthly:
		next = nextMonthly(p, base, completions)
	case model.PatternYearly:
		next = resolveYearly(p, base.Year())
		if !next.After(base) {
			next = resolveYearly(p, base.Year()+p.Interval)
		}
	default:
		return nil
	}
	if p.End != nil && next.After(p.End.Resolve(now)) {
		return nil
	}
	return &next
}

func nextDaily(p model.RecurrencePattern, base time.Time, completions []time.Time) time.Time {
	switch p.Special {
	case model.DailyWorkdays:
		day := base.AddDate(0, 0, 1)
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		return day
	case model.DailyWeekends:
		day := base.AddDate(0, 0, 1)
		for day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		return day
	}
	if p.Interval > 1 && len(completions) > 0 {
		offset := model.DaysBetween(completions[0], base) % p.Interval
		if offset < 0 {
			offset += p.Interval
		}
		return base.AddDate(0, 0, p.Interval-offset)
	}
	return base.AddDate(0, 0, p.Interval)
}

func nextWeekday(p model.RecurrencePattern, base time.Time, completions []time.Time) time.Time {
	step := 7 * p.Interval
	var best time.Time
	for _, wd := range p.Weekdays {
		delta := (int(wd) - int(base.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		candidate := base.AddDate(0, 0, delta)
		if p.Interval > 1 {
			if anchor, ok := latestCompletionOn(completions, wd); ok {
				if offset := model.DaysBetween(anchor, candidate) % step; offset != 0 {
					candidate = candidate.AddDate(0, 0, (step-offset+step)%step)
				}
			}
		}
		if best.IsZero() || candidate.Before(best) {
			best = candidate
		}
	}
	return best
}

func nextMonthly(p model.RecurrencePattern, base time.Time, completions []time.Time) time.Time {
	month := startOfMonth(base)
	for i := 0; ; i++ {
		target, ok := monthTarget(p, month, completions)
		if ok && target.Date.After(base) {
			return target.Date
		}
		month = month.AddDate(0, p.Interval, 0)
		if i > 24 {
			return month
		}
	}
}

// Preview lists the next count occurrences after from, for the
// recurrence inspector. Completion-relative chains extend from the
// projected date rather than the calendar.
func Preview(p model.RecurrencePattern, from time.Time, completions []time.Time, count int) []time.Time {
	if count <= 0 {
		return nil
	}
	out := make([]time.Time, 0, count)
	if p.CompletionDriven() {
		next := Next(p, from, completions)
		if next == nil {
			return nil
		}
		cursor := *next
		for len(out) < count {
			out = append(out, cursor)
			cursor = cursor.AddDate(0, 0, p.DaysAfter)
		}
		return out
	}
	cursor := from
	for len(out) < count {
		next := Next(p, cursor, completions)
		if next == nil {
			return out
		}
		out = append(out, *next)
		cursor = *next
	}
	return out
}
