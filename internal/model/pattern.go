package model

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

type PatternKind string

const (
	PatternDaily      PatternKind = "daily"
	PatternWeekly     PatternKind = "weekly"
	PatternMonthly    PatternKind = "monthly"
	PatternYearly     PatternKind = "yearly"
	PatternRelative   PatternKind = "relative"
	PatternCompletion PatternKind = "completion"
)

type DailySpecial string

const (
	DailyEveryDay DailySpecial = ""
	DailyWorkdays DailySpecial = "workdays"
	DailyWeekends DailySpecial = "weekends"
)

type MonthlyMode string

const (
	MonthlyOnDay          MonthlyMode = "on_day"
	MonthlyLastDay        MonthlyMode = "last_day"
	MonthlyOrdinalWeekday MonthlyMode = "ordinal_weekday"
	MonthlyAnyDay         MonthlyMode = "any_day"
)

var (
	ErrInvalidPatternKind = errors.New("model: invalid pattern kind")
	ErrInvalidInterval    = errors.New("model: invalid pattern interval")
	ErrInvalidSelector    = errors.New("model: pattern selector is required")
	ErrInvalidTimeOfDay   = errors.New("model: invalid time of day")
)

// TimeOfDay narrows a target's allowed range to a clock window.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeOfDay, t.Hour, t.Minute)
	}
	return nil
}

// DateClause is a "starting ..."/"until ..." boundary from a due string.
// Year is zero when the due string named only a month and day.
type DateClause struct {
	Year  int
	Month time.Month
	Day   int
}

// Resolve pins a year-less clause to the reference year.
func (d DateClause) Resolve(reference time.Time) time.Time {
	year := d.Year
	if year == 0 {
		year = reference.Year()
	}
	return time.Date(year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// RecurrencePattern is the parsed form of a due string. Kind selects the
// variant; only the fields belonging to that variant are meaningful.
type RecurrencePattern struct {
	Kind PatternKind

	// Interval counts days for daily, weeks for weekly cadences folded
	// into daily, months for monthly, years for yearly.
	Interval int

	// Daily.
	Special DailySpecial

	// Weekly. AnyWeekday marks a bare "every week" pattern that is
	// satisfied anywhere inside the ISO week.
	Weekdays   []time.Weekday
	AnyWeekday bool

	// Monthly.
	MonthlyMode    MonthlyMode
	DayOfMonth     int
	WeekOrdinal    int // 1..4, -1 for the last occurrence in the month
	OrdinalWeekday time.Weekday

	// Yearly. Holiday names the lexicon entry the month/day (or
	// ordinal-weekday) fields were resolved from.
	Month   time.Month
	Day     int
	Holiday string

	// Relative and completion kinds.
	DaysAfter int

	At    *TimeOfDay
	Start *DateClause
	End   *DateClause
}

func (p RecurrencePattern) Validate() error {
	if p.Interval <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, p.Interval)
	}
	if p.At != nil {
		if err := p.At.Validate(); err != nil {
			return err
		}
	}
	switch p.Kind {
	case PatternDaily:
		switch p.Special {
		case DailyEveryDay, DailyWorkdays, DailyWeekends:
		default:
			return fmt.Errorf("%w: unknown daily selector %q", ErrInvalidSelector, p.Special)
		}
	case PatternWeekly:
		if len(p.Weekdays) == 0 && !p.AnyWeekday {
			return fmt.Errorf("%w: weekly pattern without weekdays", ErrInvalidSelector)
		}
		if err := validateWeekdays(p.Weekdays); err != nil {
			return err
		}
	case PatternMonthly:
		switch p.MonthlyMode {
		case MonthlyOnDay:
			if p.DayOfMonth < 1 || p.DayOfMonth > 31 {
				return fmt.Errorf("%w: day of month %d", ErrInvalidSelector, p.DayOfMonth)
			}
		case MonthlyOrdinalWeekday:
			if p.WeekOrdinal != -1 && (p.WeekOrdinal < 1 || p.WeekOrdinal > 4) {
				return fmt.Errorf("%w: week ordinal %d", ErrInvalidSelector, p.WeekOrdinal)
			}
		case MonthlyLastDay, MonthlyAnyDay:
		default:
			return fmt.Errorf("%w: monthly pattern without selector", ErrInvalidSelector)
		}
	case PatternYearly:
		if p.Holiday != "" && p.WeekOrdinal != 0 {
			if err := validateOrdinal(p.WeekOrdinal); err != nil {
				return err
			}
			if p.Month < time.January || p.Month > time.December {
				return fmt.Errorf("%w: month %d", ErrInvalidSelector, p.Month)
			}
			return nil
		}
		if p.Month < time.January || p.Month > time.December {
			return fmt.Errorf("%w: month %d", ErrInvalidSelector, p.Month)
		}
		if p.Day < 1 || p.Day > 31 {
			return fmt.Errorf("%w: day %d", ErrInvalidSelector, p.Day)
		}
	case PatternRelative, PatternCompletion:
		if p.DaysAfter <= 0 {
			return fmt.Errorf("%w: days after completion %d", ErrInvalidInterval, p.DaysAfter)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPatternKind, p.Kind)
	}
	return nil
}

// CompletionDriven reports whether occurrences depend on the completion
// history rather than the calendar alone.
func (p RecurrencePattern) CompletionDriven() bool {
	return p.Kind == PatternRelative || p.Kind == PatternCompletion
}

// IntervalMonths is the pattern cadence expressed in whole months, or
// zero for sub-monthly cadences. Patterns whose result exceeds the
// analysis window are treated as long-term by the aggregator.
func (p RecurrencePattern) IntervalMonths() int {
	switch p.Kind {
	case PatternMonthly:
		return p.Interval
	case PatternYearly:
		return 12 * p.Interval
	default:
		return 0
	}
}

func validateWeekdays(days []time.Weekday) error {
	s := make([]int, 0, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: weekday %d", ErrInvalidSelector, d)
		}
		s = append(s, int(d))
	}
	sort.Ints(s)
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			return errors.New("model: duplicate weekday in pattern")
		}
	}
	return nil
}

func validateOrdinal(ord int) error {
	if ord != -1 && (ord < 1 || ord > 4) {
		return fmt.Errorf("%w: week ordinal %d", ErrInvalidSelector, ord)
	}
	return nil
}
