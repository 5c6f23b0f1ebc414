package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cadence-sh/cadence/internal/model"
)

var (
	timeClauseRe = regexp.MustCompile(`^(.*?)\s+at\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
	endClauseRe  = regexp.MustCompile(`^(.*?)\s+(?:until|ending)\s+(.+)$`)
	fromClauseRe = regexp.MustCompile(`^(.*?)\s+(?:starting|from)\s+(.+)$`)
	isoDateRe    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	dayTokenRe   = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?$`)
)

// stripTimeClause removes a trailing "at 3pm" / "at 15:30" clause.
func stripTimeClause(s string) (string, *model.TimeOfDay, error) {
	m := timeClauseRe.FindStringSubmatch(s)
	if m == nil {
		return s, nil, nil
	}
	hour, err := strconv.Atoi(m[2])
	if err != nil {
		return s, nil, nil
	}
	minute := 0
	if m[3] != "" {
		minute, _ = strconv.Atoi(m[3])
	}
	switch m[4] {
	case "pm":
		if hour < 1 || hour > 12 {
			return "", nil, fmt.Errorf("%w: hour %d", model.ErrInvalidTimeOfDay, hour)
		}
		hour = hour%12 + 12
	case "am":
		if hour < 1 || hour > 12 {
			return "", nil, fmt.Errorf("%w: hour %d", model.ErrInvalidTimeOfDay, hour)
		}
		hour = hour % 12
	}
	at := model.TimeOfDay{Hour: hour, Minute: minute}
	if err := at.Validate(); err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(m[1]), &at, nil
}

// stripDateClauses removes trailing "starting ..." and "until ..."
// clauses in either order.
func stripDateClauses(s string) (string, *model.DateClause, *model.DateClause, error) {
	var start, end *model.DateClause
	for {
		if m := endClauseRe.FindStringSubmatch(s); m != nil && end == nil {
			clause, err := parseDateClause(m[2])
			if err != nil {
				return "", nil, nil, err
			}
			end = clause
			s = strings.TrimSpace(m[1])
			continue
		}
		if m := fromClauseRe.FindStringSubmatch(s); m != nil && start == nil {
			clause, err := parseDateClause(m[2])
			if err != nil {
				return "", nil, nil, err
			}
			start = clause
			s = strings.TrimSpace(m[1])
			continue
		}
		return s, start, end, nil
	}
}

// parseDateClause accepts "2026-01-05", "jan 5", "5 jan", "jan 5th".
func parseDateClause(expr string) (*model.DateClause, error) {
	expr = strings.TrimSpace(expr)
	if m := isoDateRe.FindStringSubmatch(expr); m != nil {
		if _, err := time.Parse("2006-01-02", expr); err != nil {
			return nil, fmt.Errorf("%w: date %q", ErrUnsupportedFormat, expr)
		}
		year, _ := strconv.Atoi(m[1])
		monthNum, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return &model.DateClause{Year: year, Month: time.Month(monthNum), Day: day}, nil
	}

	fields := strings.Fields(expr)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: date %q", ErrUnsupportedFormat, expr)
	}
	month, monthFirst := monthNames[fields[0]]
	dayToken := fields[1]
	if !monthFirst {
		month, monthFirst = monthNames[fields[1]]
		dayToken = fields[0]
		if !monthFirst {
			return nil, fmt.Errorf("%w: date %q", ErrUnsupportedFormat, expr)
		}
	}
	day, ok := parseDayToken(dayToken)
	if !ok {
		return nil, fmt.Errorf("%w: date %q", ErrUnsupportedFormat, expr)
	}
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDayOfMonth, day)
	}
	return &model.DateClause{Month: month, Day: day}, nil
}

// parseDayToken matches digits followed by nothing or an ordinal
// suffix, so weekday-pattern digits are never captured as days.
func parseDayToken(token string) (int, bool) {
	m := dayTokenRe.FindStringSubmatch(token)
	if m == nil {
		return 0, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return day, true
}
