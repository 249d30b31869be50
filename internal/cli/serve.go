package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/web"
)

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schedule over HTTP",
		Long: `Serve the schedule as a JSON API.

Routes (under /api/v1):
  GET    /tasks, /tasks/:id, /tasks/:id/status
  POST   /tasks          PUT /tasks/:id     DELETE /tasks/:id
  GET    /programs, /editors (same verbs as tasks)
  GET    /layout         lane of every task
  GET    /calendar       month grid (?month=YYYY-MM)
  GET    /stats          editor workload (?month=YYYY-MM)
  GET    /board/stream   server-sent board updates

The listen address defaults to [server] addr.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Settings.Server.Addr
			}
			return web.NewServer(c, serverLogger(c)).Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

// serverLogger returns the zerolog logger behind the container's logger, if any.
func serverLogger(c *app.Container) zerolog.Logger {
	if zl, ok := c.Logger.(interface{ Zerolog() zerolog.Logger }); ok {
		return zl.Zerolog()
	}
	return zerolog.Nop()
}
