package update

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/cadence-sh/cadence/internal/model"
	"github.com/cadence-sh/cadence/internal/scheduler"
	"github.com/cadence-sh/cadence/internal/storage"
)

type View string

const (
	ViewDashboard View = "Dashboard"
	ViewDetail    View = "Detail"
	ViewTargets   View = "Targets"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard string
	Detail    string
	Targets   string
	Help      string
	Quit      string
}

// TargetRow is one generated occurrence with its outcome, prepared for
// the targets panel.
type TargetRow struct {
	Date    string
	Hit     bool
	Pending bool
}

// TaskRow carries everything the views need for one task. ParseErr is
// set when the due string failed to parse, which the dashboard reports
// distinctly from a valid pattern with zero history.
type TaskRow struct {
	ID       string
	Title    string
	Due      string
	ParseErr string
	Stats    model.TaskStats
	Targets  []TargetRow
	Upcoming []string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	Rows        []TaskRow
	Cursor      int
	Config      RuntimeConfig
	Repo        storage.Repository
	Engine      *scheduler.Engine
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	RefreshedAt time.Time
	Quitting    bool
	LastError   error

	commandInput textinput.Model
	helpViewport viewport.Model
	spin         spinner.Model
	refreshing   bool
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// StatsComputedMsg delivers a finished recomputation pass.
type StatsComputedMsg struct {
	Rows []TaskRow
	At   time.Time
}

// RefreshDueMsg arrives from the refresh engine when a task's next
// target elapses or the window slides past midnight.
type RefreshDueMsg struct {
	Event scheduler.RefreshEvent
}

func NewModel(repo storage.Repository, engine *scheduler.Engine, cfg RuntimeConfig) Model {
	input := textinput.New()
	input.Prompt = "/"
	input.CharLimit = 120

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		CurrentView: ViewDashboard,
		Config:      cfg,
		Repo:        repo,
		Engine:      engine,
		Keys: GlobalKeyMap{
			Dashboard: "1",
			Detail:    "2",
			Targets:   "3",
			Help:      "?",
			Quit:      "q",
		},
		commandInput: input,
		helpViewport: vp,
		spin:         sp,
		refreshing:   true,
	}
}

func (m Model) selectedRow() (TaskRow, bool) {
	if len(m.Rows) == 0 || m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return TaskRow{}, false
	}
	return m.Rows[m.Cursor], true
}
