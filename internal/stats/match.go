package stats

import (
	"time"

	"github.com/cadence-sh/cadence/internal/model"
)

// Satisfied reports whether any of the completions lands inside the
// target's tolerance. Completions are expected deduplicated per day.
func Satisfied(target model.Target, completions []time.Time) bool {
	for _, c := range completions {
		if satisfies(target, c) {
			return true
		}
	}
	return false
}

// Match pairs targets with completions, newest target first. Each
// completion may satisfy at most one target so a single real action
// cannot inflate several counters. The returned slice is parallel to
// targets.
func Match(targets []model.Target, completions []time.Time) []bool {
	matched := make([]bool, len(targets))
	used := make([]bool, len(completions))
	for i, target := range targets {
		for j, c := range completions {
			if used[j] || !satisfies(target, c) {
				continue
			}
			matched[i] = true
			used[j] = true
			break
		}
	}
	return matched
}

func satisfies(target model.Target, completion time.Time) bool {
	switch target.Tolerance {
	case model.ToleranceSameWeek:
		return model.SameISOWeek(target.Date, completion)
	case model.ToleranceSameMonth:
		cy, cm, _ := completion.UTC().Date()
		return target.Date.Year() == cy && target.Date.Month() == cm
	case model.ToleranceLastDay:
		day := model.DayOf(completion)
		return day.Day() == model.LastDayOfMonth(day.Year(), day.Month()) &&
			day.Year() == target.Date.Year() && day.Month() == target.Date.Month()
	case model.ToleranceGrace, model.ToleranceClock:
		return !completion.Before(target.From) && !completion.After(target.To)
	default:
		return model.DayOf(completion).Equal(target.Date)
	}
}
