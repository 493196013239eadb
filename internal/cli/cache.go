package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/cache"
	"github.com/matzehuels/questgraph/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, where, err := c.clearCache(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("%s", where)
			return nil
		},
	}
}

// clearCache empties the configured backend and returns the entry count and
// a description of where the entries lived.
func (c *CLI) clearCache(ctx context.Context) (int, string, error) {
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return 0, "cache disabled", nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
			Prefix:   appName + ":",
		})
		if err != nil {
			return 0, "", fmt.Errorf("connect redis: %w", err)
		}
		defer rc.Close()
		n, err := rc.Clear(ctx)
		return n, "Redis: " + c.cfg.Cache.RedisAddr, err
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return 0, "", fmt.Errorf("get cache dir: %w", err)
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return 0, "Directory: " + dir, nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return 0, "", err
		}
		n, err := fc.Clear()
		return n, "Directory: " + dir, err
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(out, dir)
			return nil
		},
	}
}
