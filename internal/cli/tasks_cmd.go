package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/swoodhull82/labflow/internal/cli/formatter"
	"github.com/swoodhull82/labflow/internal/domain"
	"github.com/swoodhull82/labflow/internal/store"
)

// statusFlag is a pflag.Value accepting only known task statuses.
type statusFlag string

var _ pflag.Value = (*statusFlag)(nil)

func (f *statusFlag) String() string { return string(*f) }
func (f *statusFlag) Type() string   { return "status" }

func (f *statusFlag) Set(s string) error {
	if !domain.ValidTaskStatuses[s] {
		known := make([]string, 0, len(domain.ValidTaskStatuses))
		for k := range domain.ValidTaskStatuses {
			known = append(known, k)
		}
		sort.Strings(known)
		return fmt.Errorf("unknown status %q (one of %s)", s, strings.Join(known, ", "))
	}
	*f = statusFlag(s)
	return nil
}

// newTasksCmd lists the schedule as a plain table, for scripts and
// non-interactive terminals.
func newTasksCmd(app *App, category *string) *cobra.Command {
	var status statusFlag

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks without the interactive schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(cmd.Context(), store.Filter{Category: *category})
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
			if status != "" {
				filtered := tasks[:0]
				for _, t := range tasks {
					if t.Status == domain.TaskStatus(status) {
						filtered = append(filtered, t)
					}
				}
				tasks = filtered
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No tasks."))
				return nil
			}

			today := domain.DateOnly(time.Now())
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				dates := formatter.Dim("unscheduled")
				due := formatter.Dim("—")
				if t.Schedulable() {
					dates = formatter.DateSpan(*t.StartDate, *t.EndDate)
					due = formatter.RelativeDate(*t.EndDate)
				}
				title := t.Title
				if t.IsMilestone() {
					title += " " + formatter.StylePurple.Render("◆")
				}
				rows = append(rows, []string{
					formatter.TruncID(t.ID),
					title,
					dates,
					due,
					formatter.StatusPill(t.EffectiveStatus(today)),
					formatter.RenderProgress(float64(t.Progress)/100, 6) + " " + strconv.Itoa(t.Progress) + "%",
					strconv.Itoa(len(t.Dependencies)),
				})
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "Title", "Dates", "Due", "Status", "Progress", "Deps"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().Var(&status, "status", "filter tasks by status")
	return cmd
}
