package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/usecase"
)

// newWatchCommand creates the watch command.
func newWatchCommand(c *app.Container) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow schedule changes",
		Long: `Print one summary line every time the schedule changes, until interrupted.

Changes made by other processes sharing the store (another terminal, the web
server, a second machine on the same PostgreSQL database) show up as they
happen.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.WatchScheduleInput{Options: c.Settings.StatsOptions()}
			if month != "" {
				m, err := domain.ParseMonthKey(month)
				if err != nil {
					return err
				}
				in.Month = m
			}

			w := cmd.OutOrStdout()
			in.OnBoard = func(b *domain.Board) {
				printBoardSummary(w, b)
			}

			err := c.WatchScheduleUseCase().Execute(cmd.Context(), in)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month for monthly figures (YYYY-MM, default current)")

	return cmd
}

// printBoardSummary prints a single line describing b.
func printBoardSummary(w io.Writer, b *domain.Board) {
	line := fmt.Sprintf("%s  %d task(s), %d lane(s), %d in %s",
		b.Snapshot.ReceivedAt.Format("15:04:05"),
		len(b.Snapshot.Tasks), b.LaneCount, b.Stats.MonthlyCount, b.Stats.Month)
	if len(b.Invalid) > 0 {
		line += fmt.Sprintf(", %d unusable", len(b.Invalid))
	}
	_, _ = fmt.Fprintln(w, line)
}
