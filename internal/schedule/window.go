package schedule

import (
	"time"

	"github.com/cadence-sh/cadence/internal/model"
)

// DefaultWindowMonths is the rolling analysis period used when the
// caller does not choose one.
const DefaultWindowMonths = 6

// Window is the slice of history targets are generated for. Now is the
// caller-supplied reference instant; Start is Months before it.
type Window struct {
	Start  time.Time
	Now    time.Time
	Months int
}

func NewWindow(now time.Time, months int) Window {
	if months <= 0 {
		months = DefaultWindowMonths
	}
	now = now.UTC()
	return Window{
		Start:  model.DayOf(now.AddDate(0, -months, 0)),
		Now:    now,
		Months: months,
	}
}

// bounds applies the pattern's "starting"/"until" clauses to the
// window and reports whether any range remains.
func (w Window) bounds(p model.RecurrencePattern) (time.Time, time.Time, bool) {
	lo := w.Start
	hi := model.DayOf(w.Now)
	if p.Start != nil {
		if s := p.Start.Resolve(w.Now); s.After(lo) {
			lo = s
		}
	}
	if p.End != nil {
		if e := p.End.Resolve(w.Now); e.Before(hi) {
			hi = e
		}
	}
	return lo, hi, !hi.Before(lo)
}
