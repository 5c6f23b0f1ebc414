package model

import (
	"testing"
	"time"
)

func TestDayOfTruncatesToMidnightUTC(t *testing.T) {
	instant := time.Date(2026, 2, 9, 23, 45, 12, 999, time.UTC)
	got := DayOf(instant)
	want := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DayOf = %v, want %v", got, want)
	}
}

func TestEndOfDayIsLastNanosecond(t *testing.T) {
	day := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	end := EndOfDay(day)
	if end.Day() != 9 {
		t.Fatalf("end of day landed on day %d", end.Day())
	}
	if !end.Add(time.Nanosecond).Equal(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end of day + 1ns should be next midnight, got %v", end)
	}
}

func TestLastDayOfMonth(t *testing.T) {
	if got := LastDayOfMonth(2026, time.February); got != 28 {
		t.Fatalf("feb 2026 = %d days, want 28", got)
	}
	if got := LastDayOfMonth(2028, time.February); got != 29 {
		t.Fatalf("feb 2028 = %d days, want 29", got)
	}
	if got := LastDayOfMonth(2026, time.April); got != 30 {
		t.Fatalf("apr 2026 = %d days, want 30", got)
	}
}

func TestStartOfISOWeek(t *testing.T) {
	monday := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

	wednesday := time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)
	if got := StartOfISOWeek(wednesday); !got.Equal(monday) {
		t.Fatalf("start of week for wednesday = %v, want %v", got, monday)
	}
	sunday := time.Date(2026, 2, 15, 1, 0, 0, 0, time.UTC)
	if got := StartOfISOWeek(sunday); !got.Equal(monday) {
		t.Fatalf("start of week for sunday = %v, want %v", got, monday)
	}
	if got := StartOfISOWeek(monday); !got.Equal(monday) {
		t.Fatalf("start of week for monday = %v, want itself", got)
	}
}

func TestSameISOWeek(t *testing.T) {
	monday := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 2, 15, 23, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)

	if !SameISOWeek(monday, sunday) {
		t.Fatal("monday and following sunday should share a week")
	}
	if SameISOWeek(monday, nextMonday) {
		t.Fatal("consecutive mondays should not share a week")
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 2, 9, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 12, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 3 {
		t.Fatalf("DaysBetween = %d, want 3", got)
	}
	if got := DaysBetween(b, a); got != -3 {
		t.Fatalf("reversed DaysBetween = %d, want -3", got)
	}
}

func TestDedupDaysKeepsOnePerDayNewestFirst(t *testing.T) {
	input := []time.Time{
		time.Date(2026, 2, 7, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 9, 20, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC),
	}
	got := DedupDays(input)
	if len(got) != 3 {
		t.Fatalf("expected 3 deduped completions, got %d", len(got))
	}
	if got[0].Day() != 9 || got[1].Day() != 8 || got[2].Day() != 7 {
		t.Fatalf("unexpected order: %v", got)
	}
	if got[0].Hour() != 20 {
		t.Fatalf("should keep the newest instant of the day, got hour %d", got[0].Hour())
	}
	if input[0].Day() != 7 {
		t.Fatal("input slice must not be reordered")
	}
}

func TestDedupDaysEmpty(t *testing.T) {
	if got := DedupDays(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}
