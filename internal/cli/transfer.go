package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/infra/transfer"
	"github.com/runoshun/editflow/internal/usecase"
)

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Load a schedule from YAML",
		Long: `Load programs, editors and tasks from a YAML document written by export.

Documents keep their IDs, so importing the same file twice overwrites rather
than duplicates. Tasks with unusable dates are skipped and listed.
With --replace, existing documents are deleted first.

Examples:
  editflow export -o backup.yaml
  editflow --data-dir /tmp/copy import backup.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			doc, err := transfer.Decode(r)
			if err != nil {
				return err
			}

			out, err := c.ImportScheduleUseCase().Execute(cmd.Context(), usecase.ImportScheduleInput{
				Programs: doc.Programs,
				Editors:  doc.Editors,
				Tasks:    doc.Tasks,
				Replace:  replace,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Imported %d program(s), %d editor(s), %d task(s)\n", out.Programs, out.Editors, out.Tasks)
			for _, s := range out.Skipped {
				_, _ = fmt.Fprintf(w, "Skipped task %s: %v\n", s.Task.ID, s.Err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Delete existing documents before importing")

	return cmd
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the schedule as YAML",
		Long: `Write every program, editor and task as one YAML document.

Writes to stdout unless -o is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := c.ExportScheduleUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			doc := transfer.FromSnapshot(snap, c.Clock.Now().Format(time.RFC3339))

			if output == "" || output == "-" {
				return transfer.Encode(cmd.OutOrStdout(), doc)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := transfer.Encode(f, doc); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d task(s) to %s\n", len(doc.Tasks), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}
