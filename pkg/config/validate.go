package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/timeline/pkg/errors"
)

// Validate rejects configurations that cannot be rendered.
func (c Config) Validate() error {
	d := c.Dimensions
	for name, v := range map[string]float64{
		"dimensions.width":  d.Width,
		"dimensions.height": d.Height,
		"dimensions.dpi":    d.DPI,
	} {
		if v <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %g", name, v)
		}
	}
	if d.MarginLeft < 0 || d.MarginRight < 0 || d.MarginTop < 0 || d.MarginBottom < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margins cannot be negative")
	}
	if d.PlotWidth() <= 0 || d.PlotHeight() <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margins leave no room for the plot (%gx%g in)", d.Width, d.Height)
	}

	for name, v := range c.Colors.fields() {
		if _, err := ParseColor(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "colors.%s", name)
		}
	}

	f := c.Fonts
	for name, v := range map[string]float64{
		"label_size":       f.LabelSize,
		"date_size":        f.DateSize,
		"month_label_size": f.MonthLabelSize,
		"year_label_size":  f.YearLabelSize,
	} {
		if v <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "fonts.%s must be positive, got %g", name, v)
		}
	}

	v := c.Visual
	for name, a := range map[string]float64{
		"connector_line_alpha": v.ConnectorLineAlpha,
		"month_boundary_alpha": v.MonthBoundaryAlpha,
		"month_label_alpha":    v.MonthLabelAlpha,
	} {
		if a < 0 || a > 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "visual.%s must be within [0, 1], got %g", name, a)
		}
	}
	if v.VerticalSpacing == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "visual.vertical_spacing cannot be zero")
	}
	if _, err := FormatStrftime(time.Time{}, v.DateFormatDisplay); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "visual.date_format_display")
	}
	if c.Engine.ExtentMargin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.extent_margin cannot be negative")
	}

	return c.Layout().Validate()
}

func (c Colors) fields() map[string]string {
	return map[string]string{
		"background":       c.Background,
		"timeline_line":    c.TimelineLine,
		"above_items":      c.AboveItems,
		"below_items":      c.BelowItems,
		"text":             c.Text,
		"date_text":        c.DateText,
		"month_boundary":   c.MonthBoundary,
		"month_label":      c.MonthLabel,
		"year_label":       c.YearLabel,
		"year_box_fill":    c.YearBoxFill,
		"year_box_outline": c.YearBoxOutline,
		"marker_outline":   c.MarkerOutline,
	}
}

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA". The literal "none"
// is fully transparent.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "none") {
		return color.NRGBA{}, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("color %q must start with #", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q has %d hex digits", s, len(hex))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
