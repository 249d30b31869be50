package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/usecase"
)

const statsBarWidth = 20

// newStatsCommand creates the stats command.
func newStatsCommand(c *app.Container) *cobra.Command {
	var month, membership string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show editor workload",
		Long: `Show task counts per editor, for one month and overall.

By default a task counts toward a month when it starts or ends in it
([stats] membership = "boundary"). --membership overlap counts it in every
month it touches instead.

Examples:
  editflow stats --month 2024-05
  editflow stats --membership overlap`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.ComputeStatsInput{Options: c.Settings.StatsOptions()}
			if month != "" {
				m, err := domain.ParseMonthKey(month)
				if err != nil {
					return err
				}
				in.Month = m
			}
			if cmd.Flags().Changed("membership") {
				m, err := domain.ParseMonthMembership(membership)
				if err != nil {
					return err
				}
				in.Options.Membership = m
			}

			report, err := c.ComputeStatsUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), report, in.Options.Membership)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to report (YYYY-MM, default current)")
	cmd.Flags().StringVar(&membership, "membership", "", "Month membership rule (boundary, overlap)")

	return cmd
}

// printStats prints the workload table with a bar scaled to the busiest editor.
func printStats(w io.Writer, r *usecase.StatsReport, membership domain.MonthMembership) {
	_, _ = fmt.Fprintf(w, "%s (%s)\n", r.Stats.Month.Start().Format("January 2006"), membership)
	_, _ = fmt.Fprintf(w, "Programs: %d  Tasks: %d  This month: %d\n\n",
		r.ProgramCount, r.TaskCount, r.Stats.MonthlyCount)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "EDITOR\tMONTHLY\tTOTAL\t")
	for _, row := range r.Rows {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n",
			row.Editor.Name, row.Monthly, row.Total, workloadBar(row.Monthly, r.MonthlyMax))
	}
}

func workloadBar(n, most int) string {
	if most <= 0 {
		most = 1
	}
	filled := n * statsBarWidth / most
	if n > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", statsBarWidth-filled)
}
