package stats

import (
	"sort"
	"time"

	"github.com/cadence-sh/cadence/internal/model"
)

// TrendSeries buckets the satisfied/expected ratio across the window,
// per ISO week for day-grained patterns and per month for month-grained
// ones, oldest bucket first. Chart renderers consume it directly.
func TrendSeries(p model.RecurrencePattern, targets []model.Target, matched []bool) []model.TrendPoint {
	if len(targets) == 0 {
		return nil
	}
	monthly := p.Kind == model.PatternMonthly || p.Kind == model.PatternYearly
	bucketOf := func(t time.Time) time.Time {
		if monthly {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
		return model.StartOfISOWeek(t)
	}

	buckets := make(map[time.Time]*model.TrendPoint)
	for i, target := range targets {
		key := bucketOf(target.Date)
		point, ok := buckets[key]
		if !ok {
			point = &model.TrendPoint{Start: key}
			buckets[key] = point
		}
		point.Expected++
		if matched[i] {
			point.Satisfied++
		}
	}

	out := make([]model.TrendPoint, 0, len(buckets))
	for _, point := range buckets {
		out = append(out, *point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
