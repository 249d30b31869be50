package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/editflow/internal/app"
)

// newTUICommand creates the tui command for launching the interactive calendar.
// Running `editflow` without arguments does the same.
func newTUICommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive calendar",
		Long: `Launch the terminal calendar.

The calendar follows the store: changes made from other terminals, the HTTP
server or another machine sharing the database appear as soon as they land.
An empty roster or program list is seeded with the defaults on first open.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), c)
		},
	}
	return cmd
}
