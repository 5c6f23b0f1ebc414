package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/cadence-sh/cadence/internal/model"
)

// clockSlack is the allowed drift either side of a time-of-day target.
const clockSlack = 30 * time.Minute

// Generate produces the expected occurrence dates for a pattern inside
// the window, newest first and deduplicated by calendar day.
// Completions must be deduplicated per day and sorted newest first
// (model.DedupDays); they anchor parity for every-other-day cadences
// and drive completion-relative patterns. Patterns whose month
// cadence exceeds the window produce no conventional targets; the
// aggregator applies the long-term rule instead.
//
// Generate panics on an invalid pattern: the parser guarantees every
// pattern it returns validates, so an invalid one here is a programmer
// error, not an input error.
func Generate(p model.RecurrencePattern, w Window, completions []time.Time) []model.Target {
	if err := p.Validate(); err != nil {
		panic(fmt.Sprintf("schedule: invalid pattern: %v", err))
	}
	if m := p.IntervalMonths(); m > w.Months {
		return nil
	}
	lo, hi, ok := w.bounds(p)
	if !ok {
		return nil
	}

	var targets []model.Target
	switch p.Kind {
	case model.PatternDaily:
		targets = dailyTargets(p, lo, hi, completions)
	case model.PatternWeekly:
		if p.AnyWeekday {
			targets = weekAnyTargets(lo, hi)
		} else {
			targets = weekdayTargets(p, lo, hi, completions)
		}
	case model.PatternMonthly:
		targets = monthlyTargets(p, lo, hi, completions)
	case model.PatternYearly:
		targets = yearlyTargets(p, lo, hi)
	case model.PatternRelative, model.PatternCompletion:
		targets = relativeTargets(p, lo, hi, completions)
	}
	return dedupDescending(targets)
}

func dailyTargets(p model.RecurrencePattern, lo, hi time.Time, completions []time.Time) []model.Target {
	switch p.Special {
	case model.DailyWorkdays:
		return filteredDayTargets(p, lo, hi, func(d time.Weekday) bool {
			return d >= time.Monday && d <= time.Friday
		})
	case model.DailyWeekends:
		return filteredDayTargets(p, lo, hi, func(d time.Weekday) bool {
			return d == time.Saturday || d == time.Sunday
		})
	}

	first := hi
	if p.Interval > 1 && len(completions) > 0 {
		// Anchor the cadence to the most recent completion so a
		// history that started on an odd offset from the reference
		// date does not look permanently off schedule.
		offset := model.DaysBetween(completions[0], hi) % p.Interval
		if offset < 0 {
			offset += p.Interval
		}
		first = hi.AddDate(0, 0, -offset)
	}

	out := make([]model.Target, 0, model.DaysBetween(lo, hi)/p.Interval+1)
	for day := first; !day.Before(lo); day = day.AddDate(0, 0, -p.Interval) {
		out = append(out, dayTarget(day, p.At))
	}
	return out
}

func filteredDayTargets(p model.RecurrencePattern, lo, hi time.Time, keep func(time.Weekday) bool) []model.Target {
	out := make([]model.Target, 0, model.DaysBetween(lo, hi)+1)
	for day := hi; !day.Before(lo); day = day.AddDate(0, 0, -1) {
		if keep(day.Weekday()) {
			out = append(out, dayTarget(day, p.At))
		}
	}
	return out
}

func weekdayTargets(p model.RecurrencePattern, lo, hi time.Time, completions []time.Time) []model.Target {
	step := 7 * p.Interval
	var out []model.Target
	for _, wd := range p.Weekdays {
		delta := (int(hi.Weekday()) - int(wd) + 7) % 7
		first := hi.AddDate(0, 0, -delta)
		if p.Interval > 1 {
			if anchor, ok := latestCompletionOn(completions, wd); ok {
				if offset := model.DaysBetween(anchor, first) % step; offset != 0 {
					first = first.AddDate(0, 0, -((offset + step) % step))
				}
			}
		}
		for day := first; !day.Before(lo); day = day.AddDate(0, 0, -step) {
			out = append(out, dayTarget(day, p.At))
		}
	}
	return out
}

func latestCompletionOn(completions []time.Time, wd time.Weekday) (time.Time, bool) {
	for _, c := range completions {
		if c.UTC().Weekday() == wd {
			return model.DayOf(c), true
		}
	}
	return time.Time{}, false
}

func weekAnyTargets(lo, hi time.Time) []model.Target {
	floor := model.StartOfISOWeek(lo)
	var out []model.Target
	for monday := model.StartOfISOWeek(hi); !monday.Before(floor); monday = monday.AddDate(0, 0, -7) {
		out = append(out, model.Target{
			Date:      monday,
			From:      monday,
			To:        monday.AddDate(0, 0, 7).Add(-time.Nanosecond),
			Tolerance: model.ToleranceSameWeek,
		})
	}
	return out
}

func monthlyTargets(p model.RecurrencePattern, lo, hi time.Time, completions []time.Time) []model.Target {
	floor := startOfMonth(lo)
	var out []model.Target
	for month := startOfMonth(hi); !month.Before(floor); month = month.AddDate(0, -p.Interval, 0) {
		target, ok := monthTarget(p, month, completions)
		if !ok {
			continue
		}
		if target.Tolerance == model.ToleranceSameMonth {
			out = append(out, target)
			continue
		}
		if target.Date.After(hi) || target.Date.Before(lo) {
			continue
		}
		out = append(out, target)
	}
	return out
}

func monthTarget(p model.RecurrencePattern, month time.Time, completions []time.Time) (model.Target, bool) {
	year, m := month.Year(), month.Month()
	switch p.MonthlyMode {
	case model.MonthlyOnDay:
		// Short months clamp the requested day to their final day
		// rather than dropping the occurrence.
		day := p.DayOfMonth
		if last := model.LastDayOfMonth(year, m); day > last {
			day = last
		}
		return dayTarget(time.Date(year, m, day, 0, 0, 0, 0, time.UTC), p.At), true
	case model.MonthlyLastDay:
		day := time.Date(year, m, model.LastDayOfMonth(year, m), 0, 0, 0, 0, time.UTC)
		return model.Target{
			Date:      day,
			From:      day,
			To:        model.EndOfDay(day),
			Tolerance: model.ToleranceLastDay,
		}, true
	case model.MonthlyOrdinalWeekday:
		day, ok := ordinalWeekdayIn(year, m, p.WeekOrdinal, p.OrdinalWeekday)
		if !ok {
			return model.Target{}, false
		}
		return dayTarget(day, p.At), true
	default:
		date := month
		if len(completions) > 0 {
			day := model.DayOf(completions[0]).Day()
			if last := model.LastDayOfMonth(year, m); day > last {
				day = last
			}
			date = time.Date(year, m, day, 0, 0, 0, 0, time.UTC)
		}
		return model.Target{
			Date:      date,
			From:      month,
			To:        month.AddDate(0, 1, 0).Add(-time.Nanosecond),
			Tolerance: model.ToleranceSameMonth,
		}, true
	}
}

// ordinalWeekdayIn resolves "first monday" style selectors; ordinal -1
// counts back from the end of the month.
func ordinalWeekdayIn(year int, month time.Month, ordinal int, wd time.Weekday) (time.Time, bool) {
	if ordinal == -1 {
		day := time.Date(year, month, model.LastDayOfMonth(year, month), 0, 0, 0, 0, time.UTC)
		for day.Weekday() != wd {
			day = day.AddDate(0, 0, -1)
		}
		return day, true
	}
	day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day.Weekday() != wd {
		day = day.AddDate(0, 0, 1)
	}
	day = day.AddDate(0, 0, 7*(ordinal-1))
	if day.Month() != month {
		return time.Time{}, false
	}
	return day, true
}

func yearlyTargets(p model.RecurrencePattern, lo, hi time.Time) []model.Target {
	var out []model.Target
	for year := hi.Year(); year >= lo.Year(); year -= p.Interval {
		day := resolveYearly(p, year)
		if day.After(hi) || day.Before(lo) {
			continue
		}
		out = append(out, dayTarget(day, p.At))
	}
	return out
}

func resolveYearly(p model.RecurrencePattern, year int) time.Time {
	if p.WeekOrdinal != 0 {
		day, _ := ordinalWeekdayIn(year, p.Month, p.WeekOrdinal, p.OrdinalWeekday)
		return day
	}
	day := p.Day
	if last := model.LastDayOfMonth(year, p.Month); day > last {
		day = last
	}
	return time.Date(year, p.Month, day, 0, 0, 0, 0, time.UTC)
}

// relativeTargets reconstructs the due chain from the completion
// history: each completion spawns the next expected date. The final
// link is included once it falls due.
func relativeTargets(p model.RecurrencePattern, lo, hi time.Time, completions []time.Time) []model.Target {
	var out []model.Target
	for _, c := range completions {
		due := model.DayOf(c).AddDate(0, 0, p.DaysAfter)
		if due.After(hi) || due.Before(lo) {
			continue
		}
		out = append(out, graceTarget(due))
	}
	return out
}

func dayTarget(day time.Time, at *model.TimeOfDay) model.Target {
	if at != nil {
		instant := day.Add(time.Duration(at.Hour)*time.Hour + time.Duration(at.Minute)*time.Minute)
		return model.Target{
			Date:      day,
			From:      instant.Add(-clockSlack),
			To:        instant.Add(clockSlack),
			Tolerance: model.ToleranceClock,
		}
	}
	return model.Target{
		Date:      day,
		From:      day,
		To:        model.EndOfDay(day),
		Tolerance: model.ToleranceExactDay,
	}
}

func graceTarget(day time.Time) model.Target {
	return model.Target{
		Date:      day,
		From:      day.AddDate(0, 0, -1),
		To:        model.EndOfDay(day.AddDate(0, 0, 1)),
		Tolerance: model.ToleranceGrace,
	}
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dedupDescending(targets []model.Target) []model.Target {
	if len(targets) == 0 {
		return nil
	}
	seen := make(map[time.Time]bool, len(targets))
	out := make([]model.Target, 0, len(targets))
	for _, t := range targets {
		if seen[t.Date] {
			continue
		}
		seen[t.Date] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
