package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	var noSeed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the data directory and store",
		Long: `Initialize editflow.

This command creates the data directory with:
- config.toml: commented configuration (kept if it already exists)
- the store selected by [store]: schedule.json, schedule.db or the
  PostgreSQL tables
- logs/: directory for log files (created on first entry)

Empty editor and program collections are seeded with the default roster
unless --no-seed is given. Running init again is safe.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitStoreUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitStoreInput{SkipSeed: noSeed})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Initialized editflow in %s\n", c.Config.DataDir)
			if out.ConfigCreated {
				_, _ = fmt.Fprintf(w, "Created config file: %s\n", out.ConfigPath)
			}
			if out.Seeded.Editors > 0 || out.Seeded.Programs > 0 {
				_, _ = fmt.Fprintf(w, "Seeded %d editor(s) and %d program(s)\n", out.Seeded.Editors, out.Seeded.Programs)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Leave empty editor and program collections empty")

	return cmd
}
