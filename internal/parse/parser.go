package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cadence-sh/cadence/internal/model"
)

var (
	ErrEmptyPattern      = errors.New("parse: empty due string")
	ErrUnsupportedFormat = errors.New("parse: unsupported due string format")
	ErrInvalidDayOfMonth = errors.New("parse: day of month out of range")
)

var (
	nDaysRe    = regexp.MustCompile(`^(\d+) days?$`)
	everyNRe   = regexp.MustCompile(`^every (\d+) (days?|weeks?|months?)$`)
	afterRe    = regexp.MustCompile(`^after (\d+) days?$`)
	dayOfMonRe = regexp.MustCompile(`^every (\d{1,2})(st|nd|rd|th)?$`)
	listSplit  = regexp.MustCompile(`\s*(?:,|&|\band\b)\s*`)
)

// Parse converts a due string into a recurrence pattern. The grammar
// families overlap lexically, so dispatch order matters: completion
// marker, relative, daily, weekly, yearly, then monthly.
func Parse(due string) (model.RecurrencePattern, error) {
	s := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(due))), " ")
	if s == "" {
		return model.RecurrencePattern{}, ErrEmptyPattern
	}

	s, at, err := stripTimeClause(s)
	if err != nil {
		return model.RecurrencePattern{}, err
	}
	s, start, end, err := stripDateClauses(s)
	if err != nil {
		return model.RecurrencePattern{}, err
	}
	if at == nil {
		// "every day at 9am starting jan 5" hides the end-anchored time
		// clause behind the date clause; retry once the dates are gone.
		s, at, err = stripTimeClause(s)
		if err != nil {
			return model.RecurrencePattern{}, err
		}
	}
	if s == "" {
		return model.RecurrencePattern{}, ErrEmptyPattern
	}

	pattern, err := parseCore(s)
	if err != nil {
		return model.RecurrencePattern{}, err
	}
	pattern.At = at
	pattern.Start = start
	pattern.End = end
	if err := pattern.Validate(); err != nil {
		return model.RecurrencePattern{}, err
	}
	return pattern, nil
}

func parseCore(s string) (model.RecurrencePattern, error) {
	if rest, ok := strings.CutPrefix(s, "every!"); ok {
		return parseCompletionRelative(strings.TrimSpace(rest))
	}
	if m := afterRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return model.RecurrencePattern{Kind: model.PatternRelative, Interval: n, DaysAfter: n}, nil
	}
	if s == "every other" {
		return model.RecurrencePattern{Kind: model.PatternRelative, Interval: 2, DaysAfter: 2}, nil
	}

	if p, ok := parseDaily(s); ok {
		return p, nil
	}
	if p, ok := parseWeekly(s); ok {
		return p, nil
	}
	if p, ok, err := parseYearly(s); ok {
		return p, err
	}
	if p, ok, err := parseMonthly(s); ok {
		return p, err
	}
	return model.RecurrencePattern{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func parseCompletionRelative(rest string) (model.RecurrencePattern, error) {
	p := model.RecurrencePattern{Kind: model.PatternCompletion}
	switch rest {
	case "day":
		p.Interval, p.DaysAfter = 1, 1
		return p, nil
	case "other day":
		p.Interval, p.DaysAfter = 2, 2
		return p, nil
	}
	if m := nDaysRe.FindStringSubmatch(rest); m != nil {
		n, _ := strconv.Atoi(m[1])
		p.Interval, p.DaysAfter = n, n
		return p, nil
	}
	return model.RecurrencePattern{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, "every! "+rest)
}

func parseDaily(s string) (model.RecurrencePattern, bool) {
	switch s {
	case "every day", "daily":
		return model.RecurrencePattern{Kind: model.PatternDaily, Interval: 1}, true
	case "every other day":
		return model.RecurrencePattern{Kind: model.PatternDaily, Interval: 2}, true
	case "every workday", "every workdays", "every weekday", "every weekdays":
		return model.RecurrencePattern{Kind: model.PatternDaily, Interval: 1, Special: model.DailyWorkdays}, true
	case "every weekend", "every weekends":
		return model.RecurrencePattern{Kind: model.PatternDaily, Interval: 1, Special: model.DailyWeekends}, true
	}
	if m := everyNRe.FindStringSubmatch(s); m != nil && strings.HasPrefix(m[2], "day") {
		n, _ := strconv.Atoi(m[1])
		return model.RecurrencePattern{Kind: model.PatternDaily, Interval: n}, true
	}
	return model.RecurrencePattern{}, false
}

func parseWeekly(s string) (model.RecurrencePattern, bool) {
	switch s {
	case "every week", "weekly":
		return model.RecurrencePattern{Kind: model.PatternWeekly, Interval: 1, AnyWeekday: true}, true
	case "every other week":
		// Biweekly cadences fold into a 14-day daily step so the
		// generator can anchor parity to the completion history.
		return model.RecurrencePattern{Kind: model.PatternDaily, Interval: 14}, true
	}
	if m := everyNRe.FindStringSubmatch(s); m != nil && strings.HasPrefix(m[2], "week") {
		n, _ := strconv.Atoi(m[1])
		return model.RecurrencePattern{Kind: model.PatternDaily, Interval: 7 * n}, true
	}
	if rest, ok := strings.CutPrefix(s, "every other "); ok {
		if wd, found := weekdayNames[rest]; found {
			return model.RecurrencePattern{Kind: model.PatternWeekly, Interval: 2, Weekdays: []time.Weekday{wd}}, true
		}
		return model.RecurrencePattern{}, false
	}
	rest, ok := strings.CutPrefix(s, "every ")
	if !ok {
		return model.RecurrencePattern{}, false
	}
	tokens := listSplit.Split(rest, -1)
	days := make([]time.Weekday, 0, len(tokens))
	for _, token := range tokens {
		wd, found := weekdayNames[strings.TrimSpace(token)]
		if !found {
			return model.RecurrencePattern{}, false
		}
		days = append(days, wd)
	}
	if len(days) == 0 {
		return model.RecurrencePattern{}, false
	}
	return model.RecurrencePattern{Kind: model.PatternWeekly, Interval: 1, Weekdays: days}, true
}

func parseYearly(s string) (model.RecurrencePattern, bool, error) {
	rest, ok := strings.CutPrefix(s, "every ")
	if !ok {
		return model.RecurrencePattern{}, false, nil
	}
	if h, found := holidayNames[rest]; found {
		p := model.RecurrencePattern{
			Kind:     model.PatternYearly,
			Interval: 1,
			Month:    h.Month,
			Day:      h.Day,
			Holiday:  rest,
		}
		if h.Ordinal != 0 {
			p.WeekOrdinal = h.Ordinal
			p.OrdinalWeekday = h.Weekday
		}
		return p, true, nil
	}

	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return model.RecurrencePattern{}, false, nil
	}
	month, monthFirst := monthNames[fields[0]]
	dayToken := fields[1]
	if !monthFirst {
		month, monthFirst = monthNames[fields[1]]
		dayToken = fields[0]
	}
	if !monthFirst {
		return model.RecurrencePattern{}, false, nil
	}
	day, ok := parseDayToken(dayToken)
	if !ok {
		return model.RecurrencePattern{}, false, nil
	}
	if day < 1 || day > 31 {
		return model.RecurrencePattern{}, true, fmt.Errorf("%w: %d", ErrInvalidDayOfMonth, day)
	}
	return model.RecurrencePattern{Kind: model.PatternYearly, Interval: 1, Month: month, Day: day}, true, nil
}

func parseMonthly(s string) (model.RecurrencePattern, bool, error) {
	switch s {
	case "every month", "monthly":
		return model.RecurrencePattern{Kind: model.PatternMonthly, Interval: 1, MonthlyMode: model.MonthlyAnyDay}, true, nil
	case "every other month":
		return model.RecurrencePattern{Kind: model.PatternMonthly, Interval: 2, MonthlyMode: model.MonthlyAnyDay}, true, nil
	case "every year", "yearly":
		return model.RecurrencePattern{Kind: model.PatternMonthly, Interval: 12, MonthlyMode: model.MonthlyAnyDay}, true, nil
	case "every last day", "every last day of month", "every last day of the month":
		return model.RecurrencePattern{Kind: model.PatternMonthly, Interval: 1, MonthlyMode: model.MonthlyLastDay}, true, nil
	}
	if m := everyNRe.FindStringSubmatch(s); m != nil && strings.HasPrefix(m[2], "month") {
		n, _ := strconv.Atoi(m[1])
		return model.RecurrencePattern{Kind: model.PatternMonthly, Interval: n, MonthlyMode: model.MonthlyAnyDay}, true, nil
	}

	rest, ok := strings.CutPrefix(s, "every ")
	if !ok {
		return model.RecurrencePattern{}, false, nil
	}
	fields := strings.Fields(rest)
	if len(fields) == 2 {
		if ord, found := ordinalWords[fields[0]]; found {
			if wd, wdFound := weekdayNames[fields[1]]; wdFound {
				return model.RecurrencePattern{
					Kind:           model.PatternMonthly,
					Interval:       1,
					MonthlyMode:    model.MonthlyOrdinalWeekday,
					WeekOrdinal:    ord,
					OrdinalWeekday: wd,
				}, true, nil
			}
		}
	}
	if m := dayOfMonRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		if day < 1 || day > 31 {
			return model.RecurrencePattern{}, true, fmt.Errorf("%w: %d", ErrInvalidDayOfMonth, day)
		}
		return model.RecurrencePattern{
			Kind:        model.PatternMonthly,
			Interval:    1,
			MonthlyMode: model.MonthlyOnDay,
			DayOfMonth:  day,
		}, true, nil
	}
	return model.RecurrencePattern{}, false, nil
}
