package views

import (
	"fmt"
	"strings"

	"github.com/cadence-sh/cadence/internal/model"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders the trend buckets as one character per bucket,
// scaled by completion rate. Empty buckets render as a dot.
func Sparkline(points []model.TrendPoint) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range points {
		if p.Expected == 0 {
			b.WriteRune('·')
			continue
		}
		idx := p.Rate() * (len(sparkRunes) - 1) / 100
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

type DashboardRow struct {
	Title  string
	Due    string
	Rate   string
	Streak string
	Next   string
	Err    string
}

type DashboardPanelData struct {
	Rows         []DashboardRow
	Cursor       int
	WindowMonths int
}

func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tasks (%d-month window)\n\n", data.WindowMonths)
	if len(data.Rows) == 0 {
		b.WriteString(dimStyle.Render("no tasks yet — /add <title> due:<recurrence>"))
		return b.String()
	}
	for i, row := range data.Rows {
		prefix := "  "
		if i == data.Cursor {
			prefix = "> "
		}
		if row.Err != "" {
			fmt.Fprintf(&b, "%s%-24s %s\n", prefix, truncate(row.Title, 24), errorStyle.Render(row.Err))
			continue
		}
		fmt.Fprintf(&b, "%s%-24s %5s  %-8s %s\n", prefix, truncate(row.Title, 24), row.Rate, row.Streak, row.Next)
	}
	return b.String()
}

type DetailPanelData struct {
	Title    string
	Due      string
	ParseErr string
	Stats    model.TaskStats
	Upcoming []string
}

func RenderDetailPanel(data DetailPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", data.Title)
	fmt.Fprintf(&b, "recurrence: %s\n\n", data.Due)
	if data.ParseErr != "" {
		b.WriteString(errorStyle.Render("unsupported pattern: " + data.ParseErr))
		return b.String()
	}
	if data.Stats.IsLongTerm {
		fmt.Fprintf(&b, "long-term cadence (%d months)\n", data.Stats.IntervalMonths)
	}
	fmt.Fprintf(&b, "completions: %d\n", data.Stats.TotalCompletions)
	fmt.Fprintf(&b, "rate:        %d%%\n", data.Stats.CompletionRate)
	fmt.Fprintf(&b, "streak:      %d (best %d)\n", data.Stats.CurrentStreak, data.Stats.LongestStreak)
	if data.Stats.NextTarget != nil {
		fmt.Fprintf(&b, "next:        %s\n", data.Stats.NextTarget.Format("2006-01-02"))
	}
	if spark := Sparkline(data.Stats.Trend); spark != "" {
		fmt.Fprintf(&b, "trend:       %s\n", spark)
	}
	if len(data.Upcoming) > 0 {
		b.WriteString("\nupcoming:\n")
		for _, u := range data.Upcoming {
			fmt.Fprintf(&b, "  %s\n", u)
		}
	}
	return b.String()
}

type CalendarDay struct {
	Date    string
	Hit     bool
	Pending bool
}

type CalendarPanelData struct {
	Title string
	Days  []CalendarDay
}

// RenderCalendarPanel lists the task's recent targets with their
// outcome, newest first.
func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Targets — %s\n\n", data.Title)
	if len(data.Days) == 0 {
		b.WriteString(dimStyle.Render("no targets in window"))
		return b.String()
	}
	for _, day := range data.Days {
		switch {
		case day.Hit:
			fmt.Fprintf(&b, "%s %s\n", hitStyle.Render("✓"), day.Date)
		case day.Pending:
			fmt.Fprintf(&b, "%s %s\n", pendingStyle.Render("…"), day.Date)
		default:
			fmt.Fprintf(&b, "%s %s\n", missStyle.Render("✗"), day.Date)
		}
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return "/" + input + "▌"
}

const helpMarkdown = `# cadence

Track how consistently recurring tasks actually get done.

## Keys

- ` + "`1`" + ` dashboard, ` + "`2`" + ` detail, ` + "`3`" + ` targets
- ` + "`j`/`k`" + ` move selection
- ` + "`/`" + ` command palette, ` + "`?`" + ` toggle help, ` + "`q`" + ` quit

## Commands

- ` + "`/add <title> due:<recurrence>`" + ` — e.g. ` + "`/add Water plants due:every 3 days`" + `
- ` + "`/done <task> [on 2006-01-02]`" + ` — log a completion
- ` + "`/show stats|targets|trend <task>`" + `
- ` + "`/window <months>`" + ` — resize the analysis window
- ` + "`/remove <task>`" + `

## Recurrence grammar

` + "`every day`" + `, ` + "`every 3 days`" + `, ` + "`every other day`" + `,
` + "`every workday`" + `, ` + "`every monday, friday`" + `, ` + "`every other tuesday`" + `,
` + "`every 15th`" + `, ` + "`every last day`" + `, ` + "`every first monday`" + `,
` + "`every january 1st`" + `, ` + "`every christmas`" + `, ` + "`after 4 days`" + `,
` + "`every! 2 days`" + `, with optional ` + "`at 9am`" + ` and ` + "`starting jan 5`" + ` clauses.
`

func RenderHelpPanel() string {
	return RenderMarkdown(helpMarkdown)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
