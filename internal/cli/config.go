package cli

import (
	"github.com/spf13/cobra"
)

// configCommand creates the command printing the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration after defaults, the config file and FOLDSERVER_*
environment variables have been applied. The output is a valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showPath {
				path, err := userConfigPath()
				if err != nil {
					return err
				}
				if c.ConfigPath != "" {
					path = c.ConfigPath
				}
				cmd.Println(path)
				return nil
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.TOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "print the config file path instead")
	return cmd
}
