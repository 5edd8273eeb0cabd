package cli

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/chazu/casework/internal/server"
	"github.com/chazu/casework/internal/studio"
)

// serveCommand creates the serve command, which runs the HTTP API until the
// process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cabinet API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			logger := loggerFromContext(ctx)
			srv := server.New(studio.New(c.cfg, logger), logger)

			printInfo(out, "Listening on %s", StyleValue.Render(addr))
			printNextStep(out, "Try", "curl -d '{\"prompt\":\"oak wall cabinet\"}' http://"+dialAddr(addr)+"/api/cabinets")
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// dialAddr turns a listen address such as ":8080" into one a client can
// reach.
func dialAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
