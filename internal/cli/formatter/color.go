package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/swoodhull82/labflow/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the lipgloss style corresponding to a task status.
func StatusColor(status domain.TaskStatus) lipgloss.Style {
	switch status {
	case domain.TaskDone:
		return StyleGreen
	case domain.TaskInProgress:
		return StyleBlue
	case domain.TaskBlocked:
		return StyleYellow
	case domain.TaskOverdue:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusPill returns a colored status indicator such as "● In Progress".
func StatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskTodo:
		return StyleDim.Render("○ Todo")
	case domain.TaskInProgress:
		return StyleBlue.Render("● In Progress")
	case domain.TaskDone:
		return StyleGreen.Render("✔ Done")
	case domain.TaskBlocked:
		return StyleYellow.Render("■ Blocked")
	case domain.TaskOverdue:
		return StyleRed.Render("▲ Overdue")
	default:
		return StyleDim.Render(string(status))
	}
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
