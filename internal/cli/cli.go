package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/pkg/buildinfo"
	"github.com/matzehuels/timeline/pkg/cache"
	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/observability"
	"github.com/matzehuels/timeline/pkg/pipeline"
)

const appName = "timeline"

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI is the state shared by every subcommand: at the moment only the
// logger, whose level --verbose raises.
type CLI struct {
	Logger *log.Logger
}

func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) { c.Logger.SetLevel(level) }

// RootCommand assembles the command tree. Call it once per execution;
// flags are bound to fresh variables each time.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           appName,
		Short:         "Timeline lays out dated events along a horizontal axis",
		Long:          `Timeline renders dated events as a horizontal timeline with alternating, collision-free labels. Events come from CSV, JSON, iCalendar or vCard files; output is SVG, PNG, JSON, CSV or ICS.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
				observability.SetPipelineHooks(observability.NewLogHooks(c.Logger))
				observability.SetCacheHooks(observability.NewLogHooks(c.Logger))
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(
		c.renderCommand(),
		c.bandsCommand(),
		c.inspectCommand(),
		c.configCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)
	return root
}

// newRunner builds a pipeline runner backed by the on-disk cache. If the
// cache directory cannot be determined the run simply goes uncached.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store := cache.NewNullCache()
	if !noCache {
		if dir, err := cacheDir(); err == nil {
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return nil, err
			}
			store = fc
		}
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// xdgDir resolves an XDG base directory for the application: $env/timeline
// when the variable is set, ~/fallback/timeline otherwise.
func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

func cacheDir() (string, error)  { return xdgDir("XDG_CACHE_HOME", ".cache") }
func configDir() (string, error) { return xdgDir("XDG_CONFIG_HOME", ".config") }

// defaultConfigPath is where "config init" writes a file of the given
// format when --path is not given.
func defaultConfigPath(format config.Format) (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config."+string(format)), nil
}

// loadConfig reads the configuration for a command. An explicit path that
// does not exist logs a warning and falls back to defaults. Without a path
// the first of config.json, config.toml and config.yaml found in the
// config directory is used, and none at all means defaults.
func loadConfig(path string, logger *log.Logger) (config.Config, error) {
	if path != "" {
		return config.LoadOrDefault(path, logger)
	}
	dir, err := configDir()
	if err != nil {
		return config.Default(), nil
	}
	for _, format := range []config.Format{config.FormatJSON, config.FormatTOML, config.FormatYAML} {
		candidate := filepath.Join(dir, "config."+string(format))
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		logger.Debug("using config", "path", candidate)
		return config.Load(candidate)
	}
	return config.Default(), nil
}

// basePath is the output path without its extension. Without -o it is the
// input path minus its extension; an -o ending in a known format loses
// that suffix, anything else is kept verbatim.
func basePath(output, input string) string {
	path := output
	if path == "" {
		path = input
	}
	ext := filepath.Ext(path)
	if output != "" && !pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return output
	}
	return strings.TrimSuffix(path, ext)
}
