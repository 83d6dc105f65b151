// Package pipeline provides the timeline pipeline shared by the CLI and
// the HTTP API.
//
// # Architecture
//
// A run has three stages:
//
//  1. Load: decode the event file (CSV, JSON, iCalendar, vCard) into records
//  2. Layout: build the sorted sequence, map it onto the axis and resolve
//     label collisions, producing a [sink.Scene]
//  3. Render: draw the scene as SVG or PNG, or export it as JSON, CSV or ICS
//
// Decoded records and rendered artifacts are cached by content hash, so
// re-rendering an unchanged file with an unchanged configuration only
// costs a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "events.csv",
//	    Input:   data,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeline/pkg/cache"
	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/errors"
	tlio "github.com/matzehuels/timeline/pkg/io"
	"github.com/matzehuels/timeline/pkg/render/sink"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// Output formats. SVG and PNG are drawings; the rest are data exports.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatICS  = "ics"
)

// ValidFormats doubles as the list of extensions basePath strips.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatCSV:  true,
	FormatICS:  true,
}

var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
	FormatCSV:  "text/csv; charset=utf-8",
	FormatICS:  "text/calendar; charset=utf-8",
}

// ContentType returns the MIME type of an output format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Options contains all configuration for one pipeline run.
// Events come either as raw file bytes (Input) or as already decoded
// records (Records); Input wins when both are set.
type Options struct {
	// Load options
	Source  string            `json:"source,omitempty"` // file name, used for format detection and logs
	Input   []byte            `json:"-"`
	Format  tlio.Format       `json:"format,omitempty"` // input format, derived from Source when empty
	Records []timeline.Record `json:"events,omitempty"`

	// SkipIncomplete drops records without a name or date instead of
	// failing, as the interactive editor does for blank rows.
	SkipIncomplete bool `json:"skip_incomplete,omitempty"`

	// Layout options. Nil means config.Default().
	Config *config.Config `json:"config,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	DPI         float64  `json:"dpi,omitempty"` // PNG resolution, defaults to the configured dpi
	Transparent bool     `json:"transparent,omitempty"`
	EmbedFonts  bool     `json:"embed_fonts,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and API responses.
	ID string

	// Records are the loaded records after SkipIncomplete filtering.
	Records []timeline.Record

	// Events is the validated, date-sorted sequence.
	Events timeline.Sequence

	// Scene is the laid out timeline. It is nil when every artifact was
	// served from the cache and no layout was computed.
	Scene *sink.Scene

	Artifacts map[string][]byte // keyed by format
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats counts what a run did and how long each stage took.
type Stats struct {
	Events       int
	Measurements int
	Swapped      int
	Unresolved   int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

type CacheInfo struct {
	LoadHit   bool // Whether the decoded records came from cache
	RenderHit bool // Whether all artifacts came from cache
}

func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json, csv, ics)", format)
	}
	return nil
}

// ValidateFormats fails with INVALID_FORMAT on the first unknown format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma separated format list such as "svg,png".
func ParseFormats(s string) ([]string, error) {
	var formats []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats, nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Repeated calls are no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that events were supplied and resolves the
// input format.
func (o *Options) ValidateForLoad() error {
	if o.Input == nil && o.Records == nil {
		return errors.New(errors.ErrCodeInvalidSchema, "events are required")
	}
	if o.Input != nil && o.Format == "" {
		if o.Source == "" {
			return errors.New(errors.ErrCodeInvalidFormat, "format is required when the source has no name")
		}
		f, err := tlio.FormatFromPath(o.Source)
		if err != nil {
			return err
		}
		o.Format = f
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for layout and rendering.
func (o *Options) SetRenderDefaults() {
	if o.Config == nil {
		cfg := config.Default()
		o.Config = &cfg
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.DPI == 0 {
		o.DPI = o.Config.Dimensions.DPI
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for layout and rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.DPI < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dpi must be positive, got %g", o.DPI)
	}
	if err := o.Config.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		ConfigHash: cache.HashValue(o.Config),
	}
	switch format {
	case FormatPNG:
		opts.DPI = o.DPI
		opts.Transparent = o.Transparent
	case FormatSVG:
		opts.Transparent = o.Transparent
		opts.EmbedFonts = o.EmbedFonts
	}
	return opts
}
