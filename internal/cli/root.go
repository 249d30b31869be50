// Package cli provides the command-line interface for editflow.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/tui"
)

// Command group IDs.
const (
	groupSetup    = "setup"
	groupSchedule = "schedule"
	groupViews    = "views"
)

// DataDirFlag is the persistent flag selecting the data directory.
const DataDirFlag = "data-dir"

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = tui.Run

// NewRootCommand creates the root command for editflow.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:   "editflow",
		Short: "Editing schedule for a video team",
		Long: `editflow keeps the editing schedule of a video team: which editor cuts which
episode of which program, and when.

Tasks are laid out on a month calendar in lanes so overlapping work never
collides, and the insights view counts each editor's workload per month.
The schedule lives in a JSON file, a SQLite database or PostgreSQL; every
view follows changes made by other processes as they happen.

Run without arguments to open the terminal calendar.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "init" || c == nil || c.Settings == nil {
				return nil
			}
			for _, w := range c.Settings.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), c)
		},
	}

	root.PersistentFlags().StringVar(&dataDir, DataDirFlag, "", "Data directory (default $EDITFLOW_DIR or ./.editflow)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupSchedule, Title: "Schedule Management:"},
		&cobra.Group{ID: groupViews, Title: "Views:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupSetup

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupSetup

	// Schedule management commands
	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupSchedule

	programCmd := newProgramCommand(c)
	programCmd.GroupID = groupSchedule

	editorCmd := newEditorCommand(c)
	editorCmd.GroupID = groupSchedule

	// Views
	calendarCmd := newCalendarCommand(c)
	calendarCmd.GroupID = groupViews

	statsCmd := newStatsCommand(c)
	statsCmd.GroupID = groupViews

	watchCmd := newWatchCommand(c)
	watchCmd.GroupID = groupViews

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupViews

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupViews

	root.AddCommand(
		initCmd,
		configCmd,
		importCmd,
		exportCmd,
		taskCmd,
		programCmd,
		editorCmd,
		calendarCmd,
		statsCmd,
		watchCmd,
		serveCmd,
		tuiCmd,
	)

	return root
}

// DataDirFromArgs returns the --data-dir value from raw arguments, before cobra parses them.
// The container has to exist before the command tree is built.
func DataDirFromArgs(args []string) string {
	flag := "--" + DataDirFlag
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, flag+"="); ok {
			return v
		}
	}
	return ""
}
