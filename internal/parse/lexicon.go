package parse

import "time"

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"thur":      time.Thursday,
	"thurs":     time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
	"sun":       time.Sunday,
}

var monthNames = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
	"jan":       time.January,
	"feb":       time.February,
	"mar":       time.March,
	"apr":       time.April,
	"jun":       time.June,
	"jul":       time.July,
	"aug":       time.August,
	"sep":       time.September,
	"sept":      time.September,
	"oct":       time.October,
	"nov":       time.November,
	"dec":       time.December,
}

var ordinalWords = map[string]int{
	"first":  1,
	"1st":    1,
	"second": 2,
	"2nd":    2,
	"third":  3,
	"3rd":    3,
	"fourth": 4,
	"4th":    4,
	"last":   -1,
}

// holiday is a yearly named date. Fixed entries carry Month and Day;
// floating entries carry Month, Ordinal and Weekday instead.
type holiday struct {
	Month   time.Month
	Day     int
	Ordinal int
	Weekday time.Weekday
}

var holidayNames = map[string]holiday{
	"new year":        {Month: time.January, Day: 1},
	"new years":       {Month: time.January, Day: 1},
	"new year's day":  {Month: time.January, Day: 1},
	"valentines":      {Month: time.February, Day: 14},
	"valentines day":  {Month: time.February, Day: 14},
	"valentine's day": {Month: time.February, Day: 14},
	"april fools":     {Month: time.April, Day: 1},
	"halloween":       {Month: time.October, Day: 31},
	"thanksgiving":    {Month: time.November, Ordinal: 4, Weekday: time.Thursday},
	"christmas":       {Month: time.December, Day: 25},
	"christmas eve":   {Month: time.December, Day: 24},
	"new years eve":   {Month: time.December, Day: 31},
	"new year's eve":  {Month: time.December, Day: 31},
}
