package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchor/internal/api"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placement engine over HTTP",
		Long: `Serve the placement engine over HTTP until interrupted.

Routes:
  GET  /healthz              liveness and build version
  GET  /v1/profiles          widget profiles
  GET  /v1/profiles/{name}   one widget profile
  POST /v1/placements        compute a placement`,
		Example: `  anchor serve --addr :8080
  curl -s localhost:8080/v1/placements -d '{"profile":"dropdown","trigger":{"x":50,"y":100,"width":100,"height":30},"content":{"width":120,"height":80},"boundary":{"width":800,"height":600}}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, _, err := c.profiles()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return api.NewServer(profiles, loggerFromContext(ctx)).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}
