package model

import "time"

type Tolerance string

const (
	// ToleranceExactDay requires a completion on the target's calendar day.
	ToleranceExactDay Tolerance = "exact_day"
	// ToleranceSameWeek accepts any completion inside the target's ISO week.
	ToleranceSameWeek Tolerance = "same_week"
	// ToleranceSameMonth accepts any completion inside the target's month.
	ToleranceSameMonth Tolerance = "same_month"
	// ToleranceLastDay requires a completion on the last day of the
	// target's month.
	ToleranceLastDay Tolerance = "last_day"
	// ToleranceGrace accepts a completion within one day either side of
	// the target, used for completion-relative cadences.
	ToleranceGrace Tolerance = "grace"
	// ToleranceClock requires a completion within thirty minutes of the
	// pattern's time of day.
	ToleranceClock Tolerance = "clock"
)

// Target is one expected occurrence. Date is midnight UTC of the
// occurrence day; From/To bound the instants a completion may land on
// and always contain Date's day.
type Target struct {
	Date      time.Time
	From      time.Time
	To        time.Time
	Tolerance Tolerance
}

// Pending reports whether the target's allowed range has not yet fully
// elapsed at the reference instant. A pending unsatisfied target must
// not break a streak.
func (t Target) Pending(now time.Time) bool {
	return !now.After(t.To)
}

type StreakResult struct {
	Current int
	Longest int
}

// TrendPoint is one bucket of the satisfied/expected series consumed by
// chart renderers. Start is the bucket's first day.
type TrendPoint struct {
	Start     time.Time
	Expected  int
	Satisfied int
}

// Rate is the bucket's completion percentage, zero when nothing was
// expected.
func (p TrendPoint) Rate() int {
	if p.Expected == 0 {
		return 0
	}
	return int(float64(p.Satisfied)/float64(p.Expected)*100 + 0.5)
}

// TaskStats is the projection returned to callers. It is recomputed
// from the live completion list on every request and never persisted.
type TaskStats struct {
	TotalCompletions int
	CompletionRate   int
	CurrentStreak    int
	LongestStreak    int
	IsLongTerm       bool
	IntervalMonths   int
	NextTarget       *time.Time
	Trend            []TrendPoint
}
