package config

import (
	"math"

	"github.com/matzehuels/timeline/pkg/fonts"
	"github.com/matzehuels/timeline/pkg/render/layout"
)

// Config is the full timeline configuration.
type Config struct {
	Dimensions Dimensions `json:"dimensions" yaml:"dimensions" toml:"dimensions"`
	Colors     Colors     `json:"colors" yaml:"colors" toml:"colors"`
	Fonts      Fonts      `json:"fonts" yaml:"fonts" toml:"fonts"`
	Visual     Visual     `json:"visual" yaml:"visual" toml:"visual"`
	Engine     Engine     `json:"layout" yaml:"layout" toml:"layout"`
}

// Dimensions describe the page in inches.
type Dimensions struct {
	Width        float64 `json:"width" yaml:"width" toml:"width"`
	Height       float64 `json:"height" yaml:"height" toml:"height"`
	DPI          float64 `json:"dpi" yaml:"dpi" toml:"dpi"`
	MarginLeft   float64 `json:"margin_left" yaml:"margin_left" toml:"margin_left"`
	MarginRight  float64 `json:"margin_right" yaml:"margin_right" toml:"margin_right"`
	MarginTop    float64 `json:"margin_top" yaml:"margin_top" toml:"margin_top"`
	MarginBottom float64 `json:"margin_bottom" yaml:"margin_bottom" toml:"margin_bottom"`
}

// PlotWidth is the page width minus horizontal margins, in points.
func (d Dimensions) PlotWidth() float64 { return (d.Width - d.MarginLeft - d.MarginRight) * 72 }

// PlotHeight is the page height minus vertical margins, in points.
func (d Dimensions) PlotHeight() float64 { return (d.Height - d.MarginTop - d.MarginBottom) * 72 }

// Colors are "#RRGGBB" (or "#RRGGBBAA") hex strings.
type Colors struct {
	Background     string `json:"background" yaml:"background" toml:"background"`
	TimelineLine   string `json:"timeline_line" yaml:"timeline_line" toml:"timeline_line"`
	AboveItems     string `json:"above_items" yaml:"above_items" toml:"above_items"`
	BelowItems     string `json:"below_items" yaml:"below_items" toml:"below_items"`
	Text           string `json:"text" yaml:"text" toml:"text"`
	DateText       string `json:"date_text" yaml:"date_text" toml:"date_text"`
	MonthBoundary  string `json:"month_boundary" yaml:"month_boundary" toml:"month_boundary"`
	MonthLabel     string `json:"month_label" yaml:"month_label" toml:"month_label"`
	YearLabel      string `json:"year_label" yaml:"year_label" toml:"year_label"`
	YearBoxFill    string `json:"year_box_fill" yaml:"year_box_fill" toml:"year_box_fill"`
	YearBoxOutline string `json:"year_box_outline" yaml:"year_box_outline" toml:"year_box_outline"`
	MarkerOutline  string `json:"marker_outline" yaml:"marker_outline" toml:"marker_outline"`
}

// Fonts configures text sizes (points) and weights.
type Fonts struct {
	Family         string  `json:"family" yaml:"family" toml:"family"`
	TitleSize      float64 `json:"title_size" yaml:"title_size" toml:"title_size"`
	LabelSize      float64 `json:"label_size" yaml:"label_size" toml:"label_size"`
	DateSize       float64 `json:"date_size" yaml:"date_size" toml:"date_size"`
	MonthLabelSize float64 `json:"month_label_size" yaml:"month_label_size" toml:"month_label_size"`
	YearLabelSize  float64 `json:"year_label_size" yaml:"year_label_size" toml:"year_label_size"`
	LabelBold      bool    `json:"label_bold" yaml:"label_bold" toml:"label_bold"`
	LabelItalic    bool    `json:"label_italic" yaml:"label_italic" toml:"label_italic"`
	DateBold       bool    `json:"date_bold" yaml:"date_bold" toml:"date_bold"`
	DateItalic     bool    `json:"date_italic" yaml:"date_italic" toml:"date_italic"`
	MonthLabelBold bool    `json:"month_label_bold" yaml:"month_label_bold" toml:"month_label_bold"`
	YearLabelBold  bool    `json:"year_label_bold" yaml:"year_label_bold" toml:"year_label_bold"`
}

// LabelStyle is the font style of event labels.
func (f Fonts) LabelStyle() fonts.Style { return fonts.Style{Bold: f.LabelBold, Italic: f.LabelItalic} }

// DateStyle is the font style of date captions.
func (f Fonts) DateStyle() fonts.Style { return fonts.Style{Bold: f.DateBold, Italic: f.DateItalic} }

// MonthStyle is the font style of month names.
func (f Fonts) MonthStyle() fonts.Style { return fonts.Style{Bold: f.MonthLabelBold} }

// YearStyle is the font style of year boxes.
func (f Fonts) YearStyle() fonts.Style { return fonts.Style{Bold: f.YearLabelBold} }

// Visual holds line widths, alphas and offsets. Offsets are in the
// layout's vertical units.
type Visual struct {
	TimelineLineWidth  float64 `json:"timeline_line_width" yaml:"timeline_line_width" toml:"timeline_line_width"`
	MarkerSize         float64 `json:"marker_size" yaml:"marker_size" toml:"marker_size"`
	ConnectorLineWidth float64 `json:"connector_line_width" yaml:"connector_line_width" toml:"connector_line_width"`
	ConnectorLineAlpha float64 `json:"connector_line_alpha" yaml:"connector_line_alpha" toml:"connector_line_alpha"`
	VerticalSpacing    float64 `json:"vertical_spacing" yaml:"vertical_spacing" toml:"vertical_spacing"`
	DateFormatDisplay  string  `json:"date_format_display" yaml:"date_format_display" toml:"date_format_display"`
	MonthBoundaryWidth float64 `json:"month_boundary_width" yaml:"month_boundary_width" toml:"month_boundary_width"`
	MonthBoundaryAlpha float64 `json:"month_boundary_alpha" yaml:"month_boundary_alpha" toml:"month_boundary_alpha"`
	MonthBoundaryStyle string  `json:"month_boundary_style" yaml:"month_boundary_style" toml:"month_boundary_style"`
	MonthLabelOffset   float64 `json:"month_label_offset" yaml:"month_label_offset" toml:"month_label_offset"`
	MonthLabelAlpha    float64 `json:"month_label_alpha" yaml:"month_label_alpha" toml:"month_label_alpha"`
	MonthTickHeight    float64 `json:"month_tick_height" yaml:"month_tick_height" toml:"month_tick_height"`
	ShowDates          bool    `json:"show_dates" yaml:"show_dates" toml:"show_dates"`
	YearBoxPadding     float64 `json:"year_box_padding" yaml:"year_box_padding" toml:"year_box_padding"`
	YearBoxLinewidth   float64 `json:"year_box_linewidth" yaml:"year_box_linewidth" toml:"year_box_linewidth"`
	MarkerOutlineWidth float64 `json:"marker_outline_width" yaml:"marker_outline_width" toml:"marker_outline_width"`
	EventLabelOffset   float64 `json:"event_label_offset" yaml:"event_label_offset" toml:"event_label_offset"`
	EventDateOffset    float64 `json:"event_date_offset" yaml:"event_date_offset" toml:"event_date_offset"`
}

// Engine holds the collision-resolution tunables that have no visual
// counterpart.
type Engine struct {
	StackIncrement   float64 `json:"stack_increment" yaml:"stack_increment" toml:"stack_increment"`
	CollisionPadding float64 `json:"collision_padding" yaml:"collision_padding" toml:"collision_padding"`
	MaxAttempts      int     `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`
	SwapAfter        int     `json:"swap_after" yaml:"swap_after" toml:"swap_after"`
	FixedMargin      float64 `json:"fixed_margin" yaml:"fixed_margin" toml:"fixed_margin"`
	// ExtentMargin is added to the vertical spacing to get the extent of
	// a timeline without labels.
	ExtentMargin float64 `json:"extent_margin" yaml:"extent_margin" toml:"extent_margin"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Dimensions: Dimensions{
			Width: 16, Height: 10, DPI: 300,
			MarginLeft: 1.0, MarginRight: 1.0, MarginTop: 1.5, MarginBottom: 1.5,
		},
		Colors: Colors{
			Background:     "#FFFFFF",
			TimelineLine:   "#2C3E50",
			AboveItems:     "#3498DB",
			BelowItems:     "#E74C3C",
			Text:           "#2C3E50",
			DateText:       "#7F8C8D",
			MonthBoundary:  "#2C3E50",
			MonthLabel:     "#2C3E50",
			YearLabel:      "#2C3E50",
			YearBoxFill:    "#FFFFFF",
			YearBoxOutline: "#2C3E50",
			MarkerOutline:  "#FFFFFF",
		},
		Fonts: Fonts{
			Family:         "sans-serif",
			TitleSize:      16,
			LabelSize:      10,
			DateSize:       8,
			MonthLabelSize: 8,
			YearLabelSize:  10,
			YearLabelBold:  true,
		},
		Visual: Visual{
			TimelineLineWidth:  2,
			MarkerSize:         10,
			ConnectorLineWidth: 1,
			ConnectorLineAlpha: 0.6,
			VerticalSpacing:    layout.DefaultVerticalSpacing,
			DateFormatDisplay:  "%d.%m.%Y",
			MonthBoundaryWidth: 0.5,
			MonthBoundaryAlpha: 0.3,
			MonthBoundaryStyle: "--",
			MonthLabelOffset:   0.08,
			MonthLabelAlpha:    0.7,
			MonthTickHeight:    0.1,
			ShowDates:          true,
			YearBoxPadding:     0.3,
			YearBoxLinewidth:   1.5,
			MarkerOutlineWidth: 1,
			EventLabelOffset:   layout.DefaultLabelOffset,
			EventDateOffset:    layout.DefaultDateOffset,
		},
		Engine: Engine{
			StackIncrement:   layout.DefaultStackIncrement,
			CollisionPadding: layout.DefaultCollisionPadding,
			MaxAttempts:      layout.DefaultMaxAttempts,
			SwapAfter:        layout.DefaultSwapAfter,
			FixedMargin:      layout.DefaultFixedMargin,
			ExtentMargin:     layout.DefaultExtent - layout.DefaultVerticalSpacing,
		},
	}
}

// Layout returns the engine configuration derived from c.
func (c Config) Layout() layout.Config {
	return layout.Config{
		VerticalSpacing:  c.Visual.VerticalSpacing,
		LabelOffset:      c.Visual.EventLabelOffset,
		DateOffset:       c.Visual.EventDateOffset,
		StackIncrement:   c.Engine.StackIncrement,
		CollisionPadding: c.Engine.CollisionPadding,
		MaxAttempts:      c.Engine.MaxAttempts,
		SwapAfter:        c.Engine.SwapAfter,
		FixedMargin:      c.Engine.FixedMargin,
		DefaultExtent:    math.Abs(c.Visual.VerticalSpacing) + c.Engine.ExtentMargin,
	}
}

// LaneColor returns the marker colour for an event on the above lane
// (true) or below lane (false).
func (c Colors) LaneColor(above bool) string {
	if above {
		return c.AboveItems
	}
	return c.BelowItems
}
