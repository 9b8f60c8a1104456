package cli

import (
	"github.com/spf13/cobra"

	"github.com/nuss3d/foldserver/pkg/api"
)

// serveCommand creates the command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the fold API until interrupted.

Jobs are written under jobs_dir; results are cached according to the cache
section of the configuration. On SIGINT or SIGTERM the server stops accepting
connections and gives in-flight requests up to 10 seconds to finish.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, orch, err := c.openOrchestrator(ctx)
			if err != nil {
				return err
			}
			defer orch.Close()

			if addr != "" {
				cfg.Addr = addr
			}
			logger := loggerFromContext(ctx)
			logger.Info("starting api",
				"addr", cfg.Addr,
				"solver", cfg.SolverBin,
				"jobs", cfg.JobsDir,
				"cache", cfg.Cache.Backend,
				"store", cfg.Store.Backend)

			return api.NewServer(cfg, orch, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
