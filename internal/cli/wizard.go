package cli

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/swoodhull82/labflow/internal/cli/formatter"
	"github.com/swoodhull82/labflow/internal/domain"
	"github.com/swoodhull82/labflow/internal/service"
)

// labflowHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func labflowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// quickEditValues backs the quick-edit form inputs.
type quickEditValues struct {
	title    string
	status   string
	progress string
}

// validateProgress accepts empty or an integer in [0, 100].
func validateProgress(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 100 {
		return fmt.Errorf("enter a number between 0 and 100")
	}
	return nil
}

// newQuickEditForm builds the click-to-edit form for a task: title, status,
// and progress. Status options cover the stored statuses only; overdue is
// derived at render time and never written.
func newQuickEditForm(t domain.Task, vals *quickEditValues) *huh.Form {
	vals.title = t.Title
	vals.status = string(t.Status)
	vals.progress = strconv.Itoa(t.Progress)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&vals.title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Todo", string(domain.TaskTodo)),
					huh.NewOption("In Progress", string(domain.TaskInProgress)),
					huh.NewOption("Done", string(domain.TaskDone)),
					huh.NewOption("Blocked", string(domain.TaskBlocked)),
				).
				Value(&vals.status),
			huh.NewInput().
				Title("Progress (%)").
				Value(&vals.progress).
				Validate(validateProgress),
		),
	).WithTheme(labflowHuhTheme()).WithShowHelp(false)
}

// openQuickEdit pushes a quick-edit wizard for the given task. The done
// callback diffs the inputs against the task and commits only what changed.
func (v *ganttView) openQuickEdit(task domain.Task) tea.Cmd {
	vals := &quickEditValues{}
	form := newQuickEditForm(task, vals)
	app := v.state.App

	done := func() tea.Cmd {
		var fields service.QuickEditFields
		if vals.title != task.Title {
			fields.Title = &vals.title
		}
		if s := domain.NormalizeStatus(vals.status); s != task.Status {
			fields.Status = &s
		}
		if p, err := strconv.Atoi(vals.progress); err == nil {
			if p = domain.ClampProgress(p); p != task.Progress {
				fields.Progress = &p
			}
		}
		if fields.IsEmpty() {
			return nil
		}
		v.syncing = true
		return commitQuickEdit(app, task.ID, fields)
	}

	return pushView(newWizardView(v.state, formatter.Truncate(task.Title, 24), form, done))
}
