package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the parsed-events and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. With --redis it
// clears the shared cache a server writes to instead of the local one.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var (
		redisURL, redisPrefix string
		expired               bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached events and rendered artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := newPrinter(cmd)

			if redisURL != "" {
				rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: redisURL, Prefix: redisPrefix})
				if err != nil {
					return err
				}
				defer rc.Close()
				count, err := rc.Clear(ctx)
				if err != nil {
					return err
				}
				p.success("Cleared %d cached entries", count)
				p.detail("Redis prefix: %s", redisPrefix)
				return nil
			}

			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				p.info("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			sweep := fc.Clear
			if expired {
				sweep = fc.Prune
			}
			count, err := sweep()
			if err != nil {
				return err
			}

			p.success("Cleared %d cached entries", count)
			p.detail("Directory: %s", fc.Dir())
			return nil
		},
	}

	cmd.Flags().BoolVar(&expired, "expired", false, "only remove entries whose ttl has passed")
	cmd.Flags().StringVar(&redisURL, "redis", "", "clear a Redis cache instead (redis://host:port/db)")
	cmd.Flags().StringVar(&redisPrefix, "redis-prefix", defaultRedisPrefix, "key prefix of the Redis cache")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
