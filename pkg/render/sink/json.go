package sink

import (
	"encoding/json"

	"github.com/matzehuels/timeline/pkg/axis"
	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/render/layout"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	withConfig bool
	indent     bool
}

// WithJSONConfig embeds the configuration the scene was built with, so
// the export can be re-rendered identically.
func WithJSONConfig() JSONOption { return func(r *jsonRenderer) { r.withConfig = true } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Width   float64           `json:"width"`
	Height  float64           `json:"height"`
	DPI     float64           `json:"dpi"`
	Span    jsonSpan          `json:"span"`
	Extent  float64           `json:"extent"`
	Bands   []axis.MonthBand  `json:"bands"`
	Events  []jsonEvent       `json:"events"`
	Stats   jsonStats         `json:"stats"`
	Config  *config.Config    `json:"config,omitempty"`
	Records []timeline.Record `json:"records,omitempty"`
}

type jsonSpan struct {
	Min     string  `json:"min"`
	Max     string  `json:"max"`
	Padding float64 `json:"padding"`
}

type jsonEvent struct {
	Index        int           `json:"index"`
	Name         string        `json:"name"`
	Date         string        `json:"date"`
	Lane         timeline.Lane `json:"lane"`
	FinalLane    timeline.Lane `json:"final_lane"`
	Anchor       float64       `json:"anchor"`
	Offset       float64       `json:"offset"`
	MarkerOffset float64       `json:"marker_offset"`
	Rect         layout.Rect   `json:"rect"`
	Attempts     int           `json:"attempts"`
	Seed         bool          `json:"seed,omitempty"`
	Swapped      bool          `json:"swapped,omitempty"`
	Resolved     bool          `json:"resolved"`
}

type jsonStats struct {
	Events       int `json:"events"`
	Measurements int `json:"measurements"`
	Swapped      int `json:"swapped"`
	Unresolved   int `json:"unresolved"`
}

// RenderJSON exports the scene's layout: span, bands and one entry per
// event with its resolved placement.
func RenderJSON(s *Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:  s.Width,
		Height: s.Height,
		DPI:    s.DPI,
		Extent: s.Result.MaxExtent,
		Bands:  s.Bands,
		Events: make([]jsonEvent, len(s.Events)),
		Stats: jsonStats{
			Events:       len(s.Events),
			Measurements: s.Result.Measurements,
			Swapped:      s.Result.Swapped(),
			Unresolved:   s.Result.Unresolved(),
		},
	}
	if !s.Span.Empty() {
		out.Span = jsonSpan{
			Min:     timeline.FormatDate(s.Span.MinDate),
			Max:     timeline.FormatDate(s.Span.MaxDate),
			Padding: s.Span.Padding,
		}
	}
	if out.Bands == nil {
		out.Bands = []axis.MonthBand{}
	}
	for i, p := range s.Result.Placements {
		e := s.Events[i]
		out.Events[i] = jsonEvent{
			Index:        e.Index,
			Name:         e.Name,
			Date:         timeline.FormatDate(e.Date),
			Lane:         e.Lane,
			FinalLane:    p.FinalLane,
			Anchor:       p.Anchor,
			Offset:       p.Offset,
			MarkerOffset: s.Layout.MarkerOffset(p.Offset),
			Rect:         p.Rect,
			Attempts:     p.Attempts,
			Seed:         p.Seed,
			Swapped:      p.Swapped,
			Resolved:     p.Resolved,
		}
	}
	if r.withConfig {
		cfg := s.Config
		out.Config = &cfg
		out.Records = s.Events.Records()
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
