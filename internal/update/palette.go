package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/cadence-sh/cadence/internal/commands"
	"github.com/cadence-sh/cadence/internal/model"
	"github.com/cadence-sh/cadence/internal/parse"
	"github.com/cadence-sh/cadence/internal/storage"
)

// newTask builds a validated store record for a palette add.
func newTask(title, due string, now time.Time) (storage.Task, error) {
	task := model.Task{
		ID:        uuid.NewString(),
		Title:     title,
		DueString: due,
		CreatedAt: now,
	}
	if err := task.Validate(); err != nil {
		return storage.Task{}, err
	}
	return storage.Task{
		ID:        task.ID,
		Title:     task.Title,
		DueString: task.DueString,
		CreatedAt: task.CreatedAt,
	}, nil
}

func newCompletion(taskID string, at time.Time) (storage.Completion, error) {
	completion := model.Completion{
		ID:          uuid.NewString(),
		TaskID:      taskID,
		CompletedAt: at,
	}
	if err := completion.Validate(); err != nil {
		return storage.Completion{}, err
	}
	return storage.Completion{
		ID:          completion.ID,
		TaskID:      completion.TaskID,
		CompletedAt: completion.CompletedAt,
	}, nil
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command cancelled"}
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		m.commandInput.SetValue("")
		return m.runCommand(input)
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m Model) runCommand(input string) (Model, tea.Cmd) {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("error: %v", err), IsError: true}
		return m, nil
	}

	mutated := false
	result, err := commands.Execute(cmd, commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			if _, parseErr := parse.Parse(args.Due); parseErr != nil {
				return commands.Result{}, parseErr
			}
			task, buildErr := newTask(args.Title, args.Due, time.Now().UTC())
			if buildErr != nil {
				return commands.Result{}, buildErr
			}
			if createErr := m.Repo.CreateTask(context.Background(), task); createErr != nil {
				return commands.Result{}, createErr
			}
			mutated = true
			return commands.Result{Message: fmt.Sprintf("added %q (%s)", args.Title, args.Due)}, nil
		},
		Done: func(args commands.DoneArgs) (commands.Result, error) {
			row, ok := m.findRow(args.Target)
			if !ok {
				return commands.Result{}, fmt.Errorf("no task matches %q", args.Target)
			}
			at := time.Now().UTC()
			if args.On != "" {
				day, parseErr := time.Parse("2006-01-02", args.On)
				if parseErr != nil {
					return commands.Result{}, fmt.Errorf("invalid date %q", args.On)
				}
				at = day
			}
			completion, buildErr := newCompletion(row.ID, at)
			if buildErr != nil {
				return commands.Result{}, buildErr
			}
			if addErr := m.Repo.AddCompletion(context.Background(), completion); addErr != nil {
				return commands.Result{}, addErr
			}
			mutated = true
			return commands.Result{Message: fmt.Sprintf("done: %s on %s", row.Title, at.Format("2006-01-02"))}, nil
		},
		Show: func(args commands.ShowArgs) (commands.Result, error) {
			if args.Target != "" {
				row, ok := m.findRow(args.Target)
				if !ok {
					return commands.Result{}, fmt.Errorf("no task matches %q", args.Target)
				}
				for i := range m.Rows {
					if m.Rows[i].ID == row.ID {
						m.Cursor = i
					}
				}
			}
			switch args.Subject {
			case "targets":
				m.CurrentView = ViewTargets
			default:
				m.CurrentView = ViewDetail
			}
			return commands.Result{Message: "showing " + args.Subject}, nil
		},
		Window: func(args commands.WindowArgs) (commands.Result, error) {
			m.Config.WindowMonths = args.Months
			mutated = true
			return commands.Result{Message: fmt.Sprintf("window set to %d months", args.Months)}, nil
		},
		Remove: func(args commands.RemoveArgs) (commands.Result, error) {
			row, ok := m.findRow(args.Target)
			if !ok {
				return commands.Result{}, fmt.Errorf("no task matches %q", args.Target)
			}
			if delErr := m.Repo.DeleteTask(context.Background(), row.ID); delErr != nil {
				return commands.Result{}, delErr
			}
			if m.Engine != nil {
				m.Engine.Cancel(row.ID)
			}
			mutated = true
			return commands.Result{Message: "removed " + row.Title}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("error: %v", err), IsError: true}
		return m, nil
	}

	m.Status = StatusBar{Text: result.Message}
	if mutated {
		m.refreshing = true
		return m, tea.Batch(m.spin.Tick, refreshCmd(m.Repo, m.Config))
	}
	return m, nil
}

// findRow resolves a palette task reference by exact ID, then exact
// title, then unique title substring.
func (m Model) findRow(ref string) (TaskRow, bool) {
	needle := strings.ToLower(strings.TrimSpace(ref))
	if needle == "" {
		return TaskRow{}, false
	}
	for _, row := range m.Rows {
		if row.ID == ref || strings.ToLower(row.Title) == needle {
			return row, true
		}
	}
	var match TaskRow
	found := 0
	for _, row := range m.Rows {
		if strings.Contains(strings.ToLower(row.Title), needle) {
			match = row
			found++
		}
	}
	if found == 1 {
		return match, true
	}
	return TaskRow{}, false
}
