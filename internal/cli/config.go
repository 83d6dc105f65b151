package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/errors"
)

// configCommand creates the config command for managing the layout and
// style configuration file.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the timeline configuration file",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configInitCommand writes the default configuration to disk so it can be
// edited.
func (c *CLI) configInitCommand() *cobra.Command {
	var (
		path   string
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Example: `  timeline config init
  timeline config init --format toml
  timeline config init --path ./timeline.yaml --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				p, err := defaultConfigPath(config.Format(format))
				if err != nil {
					return fmt.Errorf("get config dir: %w", err)
				}
				path = p
			}
			if _, err := config.FormatFromPath(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			p := newPrinter(cmd)
			p.success("Wrote default configuration")
			p.file(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "destination file (default ~/.config/timeline/config.<format>)")
	cmd.Flags().StringVar(&format, "format", string(config.FormatJSON), "file format when --path is not given: json, toml, yaml")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configShowCommand prints the effective configuration.
func (c *CLI) configShowCommand() *cobra.Command {
	var (
		path   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			data, err := cfg.Marshal(config.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "configuration file (.json, .toml, .yaml)")
	cmd.Flags().StringVar(&format, "format", string(config.FormatJSON), "output format: json, toml, yaml")
	return cmd
}

// configPathCommand prints the configuration directory.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := configDir()
			if err != nil {
				return fmt.Errorf("get config dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
