package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/usecase"
)

// calendarCellWidth is the width of one day column in plain-text output.
const calendarCellWidth = 14

// newCalendarCommand creates the calendar command.
func newCalendarCommand(c *app.Container) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Print the month calendar",
		Long: `Print the month calendar as plain text.

Each week is a block: the day numbers, then one line per lane. A task keeps
its lane on every day it covers, so a multi-day task reads as one row.
Continuation days show "·".

Examples:
  editflow calendar
  editflow calendar --month 2024-05`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.BuildCalendarInput{WeekStart: c.WeekStart()}
			if month != "" {
				m, err := domain.ParseMonthKey(month)
				if err != nil {
					return err
				}
				in.Month = m
			}

			cal, err := c.BuildCalendarUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			printCalendar(cmd.OutOrStdout(), cal)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to print (YYYY-MM, default current)")

	return cmd
}

// printCalendar renders cal week by week.
func printCalendar(w io.Writer, cal *usecase.Calendar) {
	title := cal.Month.Start().Format("January 2006")
	_, _ = fmt.Fprintf(w, "%s\n\n", title)

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	if len(cal.Weeks) > 0 {
		names := make([]string, 0, 7)
		for _, day := range cal.Weeks[0] {
			names = append(names, day.Date.Format("Mon"))
		}
		_, _ = fmt.Fprintln(tw, strings.Join(names, "\t")+"\t")
	}

	for _, week := range cal.Weeks {
		nums := make([]string, 0, len(week))
		lanes := 0
		for _, day := range week {
			nums = append(nums, dayNumber(day))
			if len(day.Slots) > lanes {
				lanes = len(day.Slots)
			}
		}
		_, _ = fmt.Fprintln(tw, strings.Join(nums, "\t")+"\t")

		for lane := 0; lane < lanes; lane++ {
			cells := make([]string, 0, len(week))
			for _, day := range week {
				cells = append(cells, calendarCell(day, lane))
			}
			_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
		}
		_, _ = fmt.Fprintln(tw)
	}
	_ = tw.Flush()

	if len(cal.Invalid) > 0 {
		_, _ = fmt.Fprintf(w, "%d task(s) with unusable dates are not shown:\n", len(cal.Invalid))
		for _, inv := range cal.Invalid {
			_, _ = fmt.Fprintf(w, "  %s %s: %v\n", inv.Task.ID, inv.Task.Title(), inv.Err)
		}
	}
}

func dayNumber(day usecase.CalendarDay) string {
	switch {
	case day.IsToday:
		return fmt.Sprintf("[%d]", day.Date.Day())
	case !day.InMonth:
		return fmt.Sprintf("(%d)", day.Date.Day())
	default:
		return fmt.Sprintf("%d", day.Date.Day())
	}
}

func calendarCell(day usecase.CalendarDay, lane int) string {
	if lane >= len(day.Slots) || day.Slots[lane] == nil {
		return "."
	}
	e := day.Slots[lane]
	if !e.Label {
		return "·"
	}
	return truncate.StringWithTail(e.Status.Icon()+" "+e.Task.Title(), calendarCellWidth, "…")
}
