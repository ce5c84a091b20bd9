package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/swoodhull82/labflow/internal/domain"
)

// newSeedCmd loads a demo schedule into the local store.
func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo schedule into the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := sampleTasks(time.Now())
			if err := app.Tasks.Seed(cmd.Context(), tasks); err != nil {
				return fmt.Errorf("seeding tasks: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d tasks.\n", len(tasks))
			return nil
		},
	}
}

// sampleTasks builds a small connected schedule around the given anchor
// date, covering bars, a milestone, and a dependency chain.
func sampleTasks(anchor time.Time) []domain.Task {
	day := func(offset int) *time.Time {
		d := domain.DateOnly(anchor).AddDate(0, 0, offset)
		return &d
	}
	return []domain.Task{
		{
			ID: "seed-prep", Title: "Sample preparation",
			StartDate: day(-3), EndDate: day(1),
			Status: domain.TaskInProgress, Progress: 40,
			Category: "sampling", Assignee: "moshe",
		},
		{
			ID: "seed-calibration", Title: "Instrument calibration",
			StartDate: day(0), EndDate: day(2),
			Status:   domain.TaskTodo,
			Category: "calibration", Assignee: "dana",
		},
		{
			ID: "seed-run", Title: "Analytical run",
			StartDate: day(2), EndDate: day(7),
			Status:       domain.TaskTodo,
			Dependencies: []string{"seed-prep", "seed-calibration"},
			Category:     "analysis", Assignee: "moshe",
		},
		{
			ID: "seed-review", Title: "Data review",
			StartDate: day(8), EndDate: day(10),
			Status:       domain.TaskTodo,
			Dependencies: []string{"seed-run"},
			Category:     "analysis", Assignee: "priya",
		},
		{
			ID: "seed-report", Title: "Report sign-off",
			StartDate: day(12), EndDate: day(12),
			Milestone:    true,
			Status:       domain.TaskTodo,
			Dependencies: []string{"seed-review"},
			Category:     "reporting", Assignee: "priya",
		},
	}
}
