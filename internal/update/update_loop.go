package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cadence-sh/cadence/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spin.Tick,
		refreshCmd(m.Repo, m.Config),
	}
	if m.Engine != nil {
		cmds = append(cmds, waitForRefreshCmd(m.Engine.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case StatsComputedMsg:
		m.Rows = msg.Rows
		m.RefreshedAt = msg.At
		m.refreshing = false
		m.LastError = nil
		if m.Cursor >= len(m.Rows) {
			m.Cursor = len(m.Rows) - 1
		}
		if m.Cursor < 0 {
			m.Cursor = 0
		}
		scheduleRefreshes(m.Engine, m.Rows, msg.At)
		return m, nil

	case RefreshDueMsg:
		m.refreshing = true
		cmds := []tea.Cmd{m.spin.Tick, refreshCmd(m.Repo, m.Config)}
		if m.Engine != nil {
			cmds = append(cmds, waitForRefreshCmd(m.Engine.C()))
		}
		return m, tea.Batch(cmds...)

	case SwitchViewMsg:
		m.CurrentView = msg.View
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: msg.Text, IsError: msg.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.refreshing = false
		m.LastError = msg.Err
		m.Status = StatusBar{Text: fmt.Sprintf("error: %v", msg.Err), IsError: true}
		return m, nil

	case spinner.TickMsg:
		if !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Palette.Active {
		next, cmd := m.handlePaletteKey(msg)
		return next, cmd
	}
	if m.HelpVisible {
		switch msg.String() {
		case "?", "esc", "q":
			m.HelpVisible = false
			return m, nil
		default:
			var cmd tea.Cmd
			m.helpViewport, cmd = m.helpViewport.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Dashboard:
		m.CurrentView = ViewDashboard
	case m.Keys.Detail:
		m.CurrentView = ViewDetail
	case m.Keys.Targets:
		m.CurrentView = ViewTargets
	case m.Keys.Help:
		m.HelpVisible = true
		m.helpViewport.SetContent(views.RenderHelpPanel())
		m.helpViewport.GotoTop()
	case "j", "down":
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "/":
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}
	if m.HelpVisible {
		return m.helpViewport.View()
	}

	data := views.AppData{
		Header:     m.headerLine(),
		LeftPane:   m.leftPane(),
		RightPane:  m.rightPane(),
		StatusLine: m.Status.Text,
		Footer:     "1 dashboard · 2 detail · 3 targets · / command · ? help · q quit",
		Palette:    views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value()),
	}
	return views.RenderApp(data)
}

func (m Model) headerLine() string {
	header := fmt.Sprintf("cadence — %s", m.CurrentView)
	if m.refreshing {
		header += " " + m.spin.View()
	} else if !m.RefreshedAt.IsZero() {
		header += " · refreshed " + m.RefreshedAt.Format(time.Kitchen)
	}
	return header
}

func (m Model) leftPane() string {
	rows := make([]views.DashboardRow, 0, len(m.Rows))
	for _, row := range m.Rows {
		dr := views.DashboardRow{Title: row.Title, Due: row.Due, Err: row.ParseErr}
		if row.ParseErr == "" {
			dr.Rate = fmt.Sprintf("%d%%", row.Stats.CompletionRate)
			dr.Streak = fmt.Sprintf("%d/%d", row.Stats.CurrentStreak, row.Stats.LongestStreak)
			if row.Stats.NextTarget != nil {
				dr.Next = row.Stats.NextTarget.Format("2006-01-02")
			}
		}
		rows = append(rows, dr)
	}
	return views.RenderDashboardPanel(views.DashboardPanelData{
		Rows:         rows,
		Cursor:       m.Cursor,
		WindowMonths: m.Config.WindowMonths,
	})
}

func (m Model) rightPane() string {
	row, ok := m.selectedRow()
	if !ok {
		return "select a task"
	}

	switch m.CurrentView {
	case ViewTargets:
		days := make([]views.CalendarDay, 0, len(row.Targets))
		for _, t := range row.Targets {
			days = append(days, views.CalendarDay{Date: t.Date, Hit: t.Hit, Pending: t.Pending})
		}
		return views.RenderCalendarPanel(views.CalendarPanelData{Title: row.Title, Days: days})
	default:
		return views.RenderDetailPanel(views.DetailPanelData{
			Title:    row.Title,
			Due:      row.Due,
			ParseErr: row.ParseErr,
			Stats:    row.Stats,
			Upcoming: row.Upcoming,
		})
	}
}
