package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/internal/server"
	"github.com/matzehuels/timeline/pkg/cache"
	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/pipeline"
)

// defaultRedisPrefix namespaces the server's keys in a shared Redis.
const defaultRedisPrefix = "timeline:"

type serveOpts struct {
	addr        string
	configPath  string
	redisURL    string
	redisPrefix string
	noCache     bool
}

// serveCommand creates the serve command, which runs the HTTP API used by
// the browser editor.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the timeline HTTP API",
		Long: `Serve exposes preview, export and CSV import endpoints over HTTP.

Rendered artifacts are cached on disk by default. Pass --redis to share a
cache between several instances. Configuration changes made through
PUT /api/config are written back to the --config file.`,
		Example: `  timeline serve
  timeline serve --addr :9000 --redis redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "configuration file, updated by PUT /api/config (default ~/.config/timeline/config.json)")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for a shared cache (redis://host:port/db)")
	cmd.Flags().StringVar(&opts.redisPrefix, "redis-prefix", defaultRedisPrefix, "key prefix in Redis")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := loggerFromContext(ctx)

	if opts.configPath == "" {
		if dir, err := configDir(); err == nil {
			opts.configPath = filepath.Join(dir, config.DefaultFilename)
		}
	}
	cfg, err := loadConfig(opts.configPath, logger)
	if err != nil {
		return err
	}

	store, keyer, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, keyer, logger)
	defer runner.Close()

	srv := server.New(runner, cfg,
		server.WithLogger(logger),
		server.WithConfigPath(opts.configPath),
	)
	newPrinter(cmd).info("Listening on %s", opts.addr)
	return srv.ListenAndServe(ctx, opts.addr)
}

// serveCache picks the server's cache backend. Redis keys are scoped by
// prefix so one instance can serve several deployments.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, cache.Keyer, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil, nil
	}
	if opts.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: opts.redisURL, Prefix: opts.redisPrefix})
		if err != nil {
			return nil, nil, err
		}
		return rc, cache.NewScopedKeyer(nil, "server:"), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}
