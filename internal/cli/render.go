package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file (single format) or base path (multiple)
	formats     []string // output formats: svg, png, json, csv, ics
	configPath  string   // configuration file, default ~/.config/timeline/config.json
	noDates     bool     // hide date captions
	noCache     bool     // bypass the artifact cache
	refresh     bool     // recompute and overwrite cached artifacts
	width       float64  // page width override in inches
	height      float64  // page height override in inches
	dpi         float64  // PNG resolution override
	transparent bool     // omit the background
	embedFonts  bool     // embed the fonts into SVG output
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <events-file>",
		Short: "Render an events file as a timeline",
		Long: `Render reads events from a CSV, JSON, iCalendar or vCard file and writes
the laid out timeline.

CSV files need "name" and "date" columns (DD.MM.YYYY) and may carry a
"position" column with "above" or "below". Events without a position
alternate sides in date order.`,
		Example: `  timeline render events.csv
  timeline render events.csv -f svg,png -o out/history
  timeline render birthdays.vcf --no-dates --config timeline.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := pipeline.ParseFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.formats = formats
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "svg", "output format(s): svg, png, json, csv, ics (comma-separated)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (.json, .toml, .yaml)")
	cmd.Flags().BoolVar(&opts.noDates, "no-dates", false, "hide date captions")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "page width in inches (overrides config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "page height in inches (overrides config)")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", 0, "PNG resolution (overrides config)")
	cmd.Flags().BoolVar(&opts.transparent, "transparent", false, "transparent background")
	cmd.Flags().BoolVar(&opts.embedFonts, "embed-fonts", false, "embed fonts in SVG output")

	return cmd
}

// applyOverrides copies command-line overrides into cfg.
func (o *renderOpts) applyOverrides(cfg *config.Config) {
	if o.noDates {
		cfg.Visual.ShowDates = false
	}
	if o.width > 0 {
		cfg.Dimensions.Width = o.width
	}
	if o.height > 0 {
		cfg.Dimensions.Height = o.height
	}
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := readInput(input)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath, logger)
	if err != nil {
		return err
	}
	opts.applyOverrides(&cfg)
	prog.step("inputs loaded", "bytes", len(data))

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s", input))
	if !c.verbose() {
		spinner.Start()
	}
	res, err := runner.Execute(ctx, pipeline.Options{
		Source:      input,
		Input:       data,
		Config:      &cfg,
		Formats:     opts.formats,
		DPI:         opts.dpi,
		Transparent: opts.transparent,
		EmbedFonts:  opts.embedFonts,
		Refresh:     opts.refresh,
		Logger:      logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.step("pipeline finished", "events", res.Stats.Events, "cached", res.CacheInfo.RenderHit)

	paths := outputPaths(opts.output, input, opts.formats)
	if err := checkOverwrite(paths, input); err != nil {
		return err
	}
	for _, format := range opts.formats {
		if err := writeOutput(paths[format], res.Artifacts[format]); err != nil {
			return err
		}
	}

	prog.done("render finished", "input", input, "formats", len(opts.formats))
	p := newPrinter(cmd)
	p.success("Rendered %d events", res.Stats.Events)
	p.stats(res.Stats.Events, res.Stats.Swapped, res.Stats.Unresolved, res.CacheInfo.RenderHit)
	for _, format := range opts.formats {
		p.file(paths[format])
	}
	if res.Stats.Unresolved > 0 {
		p.warn("%d labels could not be placed without overlap", res.Stats.Unresolved)
		p.hint("See which ones", "timeline inspect "+input)
	}
	return nil
}

// outputPaths maps each format to its output file. A single format with
// an explicit output uses it verbatim; otherwise files are named
// base.format.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// checkOverwrite refuses output paths that would replace the input file,
// as happens with "render events.csv -f csv".
func checkOverwrite(paths map[string]string, input string) error {
	in, err := filepath.Abs(input)
	if err != nil {
		return nil
	}
	for _, p := range paths {
		if out, err := filepath.Abs(p); err == nil && out == in {
			return errors.New(errors.ErrCodeInvalidPath, "output %s would overwrite the input (use -o)", p)
		}
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "events file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// verbose reports whether debug logging is on; the spinner is hidden then
// so it does not interleave with log lines.
func (c *CLI) verbose() bool {
	return c.Logger.GetLevel() <= LogDebug
}
