package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/usecase"
)

// newTaskCommand creates the task command group.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage editing tasks",
		Long: `Manage editing tasks.

A task is one episode of a program cut by one editor between a start and an
end date, both inclusive. Program and editor are stored by name.`,
	}

	cmd.AddCommand(
		newTaskAddCommand(c),
		newTaskEditCommand(c),
		newTaskRmCommand(c),
		newTaskListCommand(c),
		newTaskShowCommand(c),
	)
	return cmd
}

// taskFlags holds the task field flags shared by add and edit.
type taskFlags struct {
	Show    string
	Episode string
	Editor  string
	Start   string
	End     string
	Note    string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Show, "show", "", "Program name")
	cmd.Flags().StringVar(&f.Episode, "episode", "", "Episode number or label")
	cmd.Flags().StringVar(&f.Editor, "editor", "", "Editor name")
	cmd.Flags().StringVar(&f.Start, "start", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.End, "end", "", "End date (YYYY-MM-DD, inclusive; default start)")
	cmd.Flags().StringVar(&f.Note, "note", "", "Free-form note")
}

// input builds the use case input from the flags the user actually set.
func (f *taskFlags) input(cmd *cobra.Command, id string) usecase.SaveTaskInput {
	in := usecase.SaveTaskInput{ID: id}
	set := func(name string, v *string) *string {
		if cmd.Flags().Changed(name) {
			return v
		}
		return nil
	}
	in.Show = set("show", &f.Show)
	in.Episode = set("episode", &f.Episode)
	in.Editor = set("editor", &f.Editor)
	in.StartDate = set("start", &f.Start)
	in.EndDate = set("end", &f.End)
	in.Note = set("note", &f.Note)
	return in
}

// newTaskAddCommand creates the task add subcommand.
func newTaskAddCommand(c *app.Container) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Long: `Create a task.

Show, editor and start date are required. The end date defaults to the start
date, giving a single-day task.

Examples:
  # Three days on episode 12
  editflow task add --show Correspondents --episode 12 --editor James \
    --start 2024-05-13 --end 2024-05-15

  # A single-day task
  editflow task add --show "DC Insiders" --editor Eason --start 2024-05-20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := flags.input(cmd, "")
			if in.EndDate == nil {
				in.EndDate = in.StartDate
			}
			// Unset fields become empty so validation reports them.
			for _, p := range []**string{&in.Show, &in.Editor, &in.StartDate, &in.EndDate} {
				if *p == nil {
					empty := ""
					*p = &empty
				}
			}

			out, err := c.SaveTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s (%s, %s → %s)\n",
				out.Task.ID, out.Task.Title(), out.Task.Editor, out.Task.StartDate, out.Task.EndDate)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

// newTaskEditCommand creates the task edit subcommand.
func newTaskEditCommand(c *app.Container) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a task",
		Long: `Update the given fields of a task. Fields without a flag keep their value.

Examples:
  # Move a task by a day
  editflow task edit cq1v2 --start 2024-05-14 --end 2024-05-16

  # Hand a task to another editor
  editflow task edit cq1v2 --editor Dolphine`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.SaveTaskUseCase().Execute(cmd.Context(), flags.input(cmd, args[0]))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s (version %d)\n",
				out.Task.ID, out.Task.Title(), out.Task.Version)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

// newTaskRmCommand creates the task rm subcommand.
func newTaskRmCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{ID: args[0]})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", out.Task.ID, out.Task.Title())
			return nil
		},
	}

	return cmd
}

// newTaskListCommand creates the task ls subcommand.
func newTaskListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Editor string
		Show   string
		Month  string
		Status string
		JSON   bool
	}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Long: `Display tasks ordered by start date.

Output format is tab-separated with columns:
  ID, STATUS, START, END, EDITOR, TITLE

--month keeps tasks that start or end in the given month.

Examples:
  # Everything Eason has on in May
  editflow task ls --editor Eason --month 2024-05

  # Tasks running today
  editflow task ls --status active`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.ListTasksInput{
				Filter: domain.TaskFilter{Editor: opts.Editor, Show: opts.Show},
				Status: domain.TaskStatus(opts.Status),
			}
			if opts.Month != "" {
				month, err := domain.ParseMonthKey(opts.Month)
				if err != nil {
					return err
				}
				in.Filter.Month = month
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			if opts.JSON {
				return printTaskListJSON(cmd.OutOrStdout(), out.Items)
			}
			printTaskList(cmd.OutOrStdout(), out.Items)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Editor, "editor", "", "Filter by editor name")
	cmd.Flags().StringVar(&opts.Show, "show", "", "Filter by program name")
	cmd.Flags().StringVar(&opts.Month, "month", "", "Filter by month (YYYY-MM)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status (upcoming, active, completed, unknown)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

// printTaskList prints tasks in TSV format.
func printTaskList(w io.Writer, items []usecase.TaskListItem) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tSTART\tEND\tEDITOR\tTITLE")

	for _, item := range items {
		t := item.Task
		_, _ = fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\n",
			t.ID,
			item.Status.Icon(),
			item.Status,
			orDash(t.StartDate),
			orDash(t.EndDate),
			orDash(t.Editor),
			t.Title(),
		)
	}
}

type taskListJSON struct {
	*domain.Task
	Status domain.TaskStatus `json:"status"`
}

// printTaskListJSON prints tasks as a JSON array.
func printTaskListJSON(w io.Writer, items []usecase.TaskListItem) error {
	out := make([]taskListJSON, 0, len(items))
	for _, item := range items {
		out = append(out, taskListJSON{Task: item.Task, Status: item.Status})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// newTaskShowCommand creates the task show subcommand.
func newTaskShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{ID: args[0]})
			if err != nil {
				return err
			}
			printTaskDetails(cmd.OutOrStdout(), out)
			return nil
		},
	}

	return cmd
}

// printTaskDetails prints one task with its resolved editor and status.
func printTaskDetails(w io.Writer, out *usecase.ShowTaskOutput) {
	task := out.Task

	_, _ = fmt.Fprintf(w, "# Task %s: %s\n\n", task.ID, task.Title())

	_, _ = fmt.Fprintf(w, "Status: %s %s\n", out.Status.Icon(), out.Status.Display())
	_, _ = fmt.Fprintf(w, "Show: %s\n", task.Show)
	_, _ = fmt.Fprintf(w, "Episode: %s\n", orDash(task.Episode))

	editorNote := ""
	if out.Editor.ID == domain.UnknownEditorID {
		editorNote = " (not in roster)"
	}
	_, _ = fmt.Fprintf(w, "Editor: %s [%s]%s\n", task.Editor, out.Theme, editorNote)

	if out.Days > 0 {
		_, _ = fmt.Fprintf(w, "Dates: %s → %s (%d day(s))\n", task.StartDate, task.EndDate, out.Days)
	} else {
		_, _ = fmt.Fprintf(w, "Dates: %s → %s (unusable)\n", orDash(task.StartDate), orDash(task.EndDate))
	}

	if task.LastEditedAt != "" {
		_, _ = fmt.Fprintf(w, "Last edited: %s (version %d)\n", task.LastEditedAt, task.Version)
	}

	if task.Note != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", task.Note)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
