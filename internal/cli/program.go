package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/usecase"
)

// newProgramCommand creates the program command group.
func newProgramCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "program",
		Aliases: []string{"p"},
		Short:   "Manage programs",
		Long: `Manage the programs tasks are scheduled for.

Tasks refer to programs by name; renaming or deleting a program leaves
existing tasks untouched.`,
	}

	cmd.AddCommand(
		newProgramAddCommand(c),
		newProgramEditCommand(c),
		newProgramRmCommand(c),
		newProgramListCommand(c),
	)
	return cmd
}

// programFlags holds the program field flags shared by add and edit.
type programFlags struct {
	Name        string
	Duration    string
	PremiereDay string
	WorkDays    int
}

func (f *programFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Name, "name", "", "Program name")
	cmd.Flags().StringVar(&f.Duration, "duration", "", "Episode duration (e.g. 10min)")
	cmd.Flags().StringVar(&f.PremiereDay, "premiere", "", "Premiere weekday (e.g. Fri)")
	cmd.Flags().IntVar(&f.WorkDays, "work-days", 0, "Planned working days per episode")
}

func (f *programFlags) input(cmd *cobra.Command, id string) usecase.SaveProgramInput {
	in := usecase.SaveProgramInput{ID: id}
	if cmd.Flags().Changed("name") {
		in.Name = &f.Name
	}
	if cmd.Flags().Changed("duration") {
		in.Duration = &f.Duration
	}
	if cmd.Flags().Changed("premiere") {
		in.PremiereDay = &f.PremiereDay
	}
	if cmd.Flags().Changed("work-days") {
		in.WorkDays = &f.WorkDays
	}
	return in
}

// newProgramAddCommand creates the program add subcommand.
func newProgramAddCommand(c *app.Container) *cobra.Command {
	var flags programFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a program",
		Long: `Create a program.

Examples:
  editflow program add --name "Finding Formosa" --duration 15min --premiere Sun --work-days 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := flags.input(cmd, "")
			in.Name = &flags.Name
			out, err := c.SaveProgramUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created program %s: %s\n", out.Program.ID, out.Program.Name)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

// newProgramEditCommand creates the program edit subcommand.
func newProgramEditCommand(c *app.Container) *cobra.Command {
	var flags programFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.SaveProgramUseCase().Execute(cmd.Context(), flags.input(cmd, args[0]))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated program %s: %s\n", out.Program.ID, out.Program.Name)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

// newProgramRmCommand creates the program rm subcommand.
func newProgramRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a program",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.DeleteProgramUseCase().Execute(cmd.Context(), usecase.DeleteProgramInput{ID: args[0]})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted program %s: %s\n", p.ID, p.Name)
			return nil
		},
	}
}

// newProgramListCommand creates the program ls subcommand.
func newProgramListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List programs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			programs, err := c.ListProgramsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			printProgramList(cmd.OutOrStdout(), programs)
			return nil
		},
	}
}

// printProgramList prints programs in TSV format.
func printProgramList(w io.Writer, programs []*domain.Program) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tNAME\tDURATION\tPREMIERE\tWORK DAYS")
	for _, p := range programs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			p.ID, p.Name, orDash(p.Duration), orDash(p.PremiereDay), p.WorkDays)
	}
}
