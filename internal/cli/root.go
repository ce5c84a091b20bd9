package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/swoodhull82/labflow/internal/domain"
	"github.com/swoodhull82/labflow/internal/service"
)

// categoryFlag is a pflag.Value accepting only known lab categories.
type categoryFlag string

var _ pflag.Value = (*categoryFlag)(nil)

func (f *categoryFlag) String() string { return string(*f) }
func (f *categoryFlag) Type() string   { return "category" }

func (f *categoryFlag) Set(s string) error {
	if !domain.ValidTaskCategories[s] {
		known := make([]string, 0, len(domain.ValidTaskCategories))
		for k := range domain.ValidTaskCategories {
			known = append(known, k)
		}
		sort.Strings(known)
		return fmt.Errorf("unknown category %q (one of %s)", s, strings.Join(known, ", "))
	}
	*f = categoryFlag(s)
	return nil
}

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Tasks service.TaskService

	// IsInteractive reports whether stdin is a terminal. The schedule TUI
	// refuses to start on a non-interactive stdin.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "labflow" command. Running it with no
// subcommand opens the interactive schedule.
func NewRootCmd(app *App) *cobra.Command {
	var category categoryFlag

	root := &cobra.Command{
		Use:   "labflow",
		Short: "Interactive lab task schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the schedule needs an interactive terminal; try `labflow tasks`")
			}
			p := tea.NewProgram(
				newAppModel(app, string(category)),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			_, err := p.Run()
			return err
		},
	}

	root.PersistentFlags().VarP(&category, "category", "c", "filter tasks by category")

	root.AddCommand(
		newTasksCmd(app, (*string)(&category)),
		newSeedCmd(app),
	)

	return root
}
