package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nuss3d/foldserver/pkg/cache"
	"github.com/nuss3d/foldserver/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the fold result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached fold results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			var count int
			switch cfg.Cache.Backend {
			case config.CacheNone:
				printInfo("Caching is disabled")
				return nil
			case config.CacheRedis:
				rc, err := cache.NewRedisCache(cmd.Context(), cfg.Cache.RedisAddr)
				if err != nil {
					return err
				}
				defer rc.Close()
				if count, err = rc.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear redis cache: %w", err)
				}
			default:
				fc, err := cache.NewFileCache(cfg.CacheDir)
				if err != nil {
					return err
				}
				if count, err = fc.Clear(); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
			}

			if count == 0 {
				printInfo("Cache is empty")
			} else {
				printSuccess("Cleared %d cached results", count)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached results are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			where := cfg.CacheDir
			if cfg.Cache.Backend == config.CacheRedis {
				where = "redis://" + cfg.Cache.RedisAddr
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), where)
			return err
		},
	}
}
