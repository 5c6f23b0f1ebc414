package model

import (
	"sort"
	"time"
)

// DayOf truncates an instant to midnight UTC of its calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay is the last nanosecond of the instant's calendar day.
func EndOfDay(t time.Time) time.Time {
	return DayOf(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// StartOfISOWeek is midnight UTC of the Monday of t's ISO week.
func StartOfISOWeek(t time.Time) time.Time {
	day := DayOf(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// SameISOWeek reports whether two instants fall in the same ISO week.
func SameISOWeek(a, b time.Time) bool {
	ay, aw := a.UTC().ISOWeek()
	by, bw := b.UTC().ISOWeek()
	return ay == by && aw == bw
}

// DaysBetween is the whole-day distance from a to b, negative when b is
// earlier. Both arguments are truncated to their calendar day first.
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)) / (24 * time.Hour))
}

// DedupDays collapses completion instants to one representative per
// calendar day and returns them newest first. The input slice is not
// modified.
func DedupDays(completions []time.Time) []time.Time {
	if len(completions) == 0 {
		return nil
	}
	sorted := make([]time.Time, len(completions))
	copy(sorted, completions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	out := make([]time.Time, 0, len(sorted))
	seen := make(map[time.Time]bool, len(sorted))
	for _, c := range sorted {
		day := DayOf(c)
		if seen[day] {
			continue
		}
		seen[day] = true
		out = append(out, c)
	}
	return out
}
