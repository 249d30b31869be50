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

// newEditorCommand creates the editor command group.
func newEditorCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "editor",
		Aliases: []string{"e"},
		Short:   "Manage the editor roster",
		Long: `Manage the editor roster.

Each editor carries a color tag that decides the color of their tasks.
Tasks refer to editors by name; a task whose editor is missing from the
roster is shown in slate.`,
	}

	cmd.AddCommand(
		newEditorAddCommand(c),
		newEditorEditCommand(c),
		newEditorRmCommand(c),
		newEditorListCommand(c),
	)
	return cmd
}

func colorHelp() string {
	labels := make([]string, 0, len(domain.ColorOptions))
	for _, opt := range domain.ColorOptions {
		labels = append(labels, strings.ToLower(opt.Label))
	}
	return "Color label (" + strings.Join(labels, ", ") + ") or a full color tag"
}

// newEditorAddCommand creates the editor add subcommand.
func newEditorAddCommand(c *app.Container) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an editor",
		Long: `Add an editor to the roster. Without --color the first color (sky) is used.

Examples:
  editflow editor add --name Mia --color violet`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.SaveEditorInput{Name: &name}
			if cmd.Flags().Changed("color") {
				in.Color = &color
			}
			out, err := c.SaveEditorUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added editor %s: %s [%s]\n",
				out.Editor.ID, out.Editor.Name, domain.ThemeFor(out.Editor.Color))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Editor name")
	cmd.Flags().StringVar(&color, "color", "", colorHelp())

	return cmd
}

// newEditorEditCommand creates the editor edit subcommand.
func newEditorEditCommand(c *app.Container) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an editor",
		Long: `Update an editor. Renaming does not touch existing tasks, which keep the old name.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.SaveEditorInput{ID: args[0]}
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("color") {
				in.Color = &color
			}
			out, err := c.SaveEditorUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated editor %s: %s [%s]\n",
				out.Editor.ID, out.Editor.Name, domain.ThemeFor(out.Editor.Color))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Editor name")
	cmd.Flags().StringVar(&color, "color", "", colorHelp())

	return cmd
}

// newEditorRmCommand creates the editor rm subcommand.
func newEditorRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove an editor",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.DeleteEditorUseCase().Execute(cmd.Context(), usecase.DeleteEditorInput{ID: args[0]})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed editor %s: %s\n", e.ID, e.Name)
			return nil
		},
	}
}

// newEditorListCommand creates the editor ls subcommand.
func newEditorListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List editors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			editors, err := c.ListEditorsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			printEditorList(cmd.OutOrStdout(), editors)
			return nil
		},
	}
}

// printEditorList prints editors in TSV format.
func printEditorList(w io.Writer, editors []*domain.Editor) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tNAME\tTHEME")
	for _, e := range editors {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Name, domain.ThemeFor(e.Color))
	}
}
