package cli

import (
	"github.com/spf13/cobra"

	"github.com/nuss3d/foldserver/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands
// registered. Before any subcommand runs, the CLI logger is attached to the
// command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "foldserver runs the nuss3d RNA folding solver and serves its results",
		Long: `foldserver wraps the nuss3d solver: it validates sequences, runs the solver in
per-job directories, converts its text output into upper-triangular S.json
matrices and serves them over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "path to a TOML config file (default $"+configEnv+" or ~/.config/foldserver/config.toml)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.foldCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.resultCommand())
	root.AddCommand(c.jobsCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
