package stats

import (
	"time"

	"github.com/cadence-sh/cadence/internal/model"
)

// Streaks walks matched targets newest to oldest and computes the
// current and longest consecutive-satisfaction runs. An unsatisfied
// target whose allowed range has not yet elapsed is pending, not
// broken: today's not-yet-done occurrence must not zero out a streak.
// Whether that grace applies to weekly patterns is configurable
// (Options.HoldPendingWeekly); for all other patterns it always holds.
func Streaks(p model.RecurrencePattern, targets []model.Target, matched []bool, now time.Time, holdPendingWeekly bool) model.StreakResult {
	var result model.StreakResult
	temp := 0
	active := true
	for i, target := range targets {
		if matched[i] {
			temp++
			if temp > result.Longest {
				result.Longest = temp
			}
			if active {
				result.Current = temp
			}
			continue
		}
		if target.Pending(now) && holdsPending(p, holdPendingWeekly) {
			continue
		}
		active = false
		temp = 0
	}
	if result.Current > result.Longest {
		result.Longest = result.Current
	}
	return result
}

func holdsPending(p model.RecurrencePattern, holdPendingWeekly bool) bool {
	if p.Kind == model.PatternWeekly && !p.AnyWeekday {
		return holdPendingWeekly
	}
	return true
}

// LongTermStreaks is the long-interval rule: a cadence wider than the
// analysis window can show at most one in-window occurrence, so a
// single completion is the only obtainable evidence.
func LongTermStreaks(completionsInWindow int) model.StreakResult {
	if completionsInWindow > 0 {
		return model.StreakResult{Current: 1, Longest: 1}
	}
	return model.StreakResult{}
}
