package measure

import (
	"math"

	"github.com/matzehuels/timeline/pkg/axis"
)

// Viewport maps plot coordinates (axis days, offset units) to points
// relative to the top-left corner of the plot area.
type Viewport struct {
	Span      axis.Span `json:"-"`
	PtPerDay  float64   `json:"pt_per_day"`
	PtPerUnit float64   `json:"pt_per_unit"`
	// Extent is the vertical half-range in offset units: the plot covers
	// [-Extent, +Extent].
	Extent float64 `json:"extent"`
}

// NewViewport fits span into width points and ±extent units into height
// points. A degenerate span is widened to two MinPadding days so the x
// scale stays finite.
func NewViewport(span axis.Span, width, height, extent float64) Viewport {
	days := span.Width()
	if days <= 0 {
		days = 2 * axis.MinPadding
	}
	if extent <= 0 {
		extent = 1
	}
	return Viewport{
		Span:      span,
		PtPerDay:  width / days,
		PtPerUnit: height / (2 * extent),
		Extent:    extent,
	}
}

// WithExtent returns a copy covering ±e units at the same scales.
func (v Viewport) WithExtent(e float64) Viewport {
	v.Extent = e
	return v
}

// Valid reports whether both scales are positive and finite.
func (v Viewport) Valid() bool {
	ok := func(f float64) bool { return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f) }
	return ok(v.PtPerDay) && ok(v.PtPerUnit)
}

// X returns the horizontal position of coord in points.
func (v Viewport) X(coord float64) float64 { return (coord - v.lo()) * v.PtPerDay }

// Y returns the vertical position of offset in points, growing downward.
func (v Viewport) Y(offset float64) float64 { return (v.Extent - offset) * v.PtPerUnit }

// Width is the plot width in points.
func (v Viewport) Width() float64 {
	days := v.Span.Width()
	if days <= 0 {
		days = 2 * axis.MinPadding
	}
	return days * v.PtPerDay
}

// Height is the plot height in points.
func (v Viewport) Height() float64 { return 2 * v.Extent * v.PtPerUnit }

// Days converts a horizontal length in points to axis days.
func (v Viewport) Days(pt float64) float64 { return pt / v.PtPerDay }

// Units converts a vertical length in points to offset units.
func (v Viewport) Units(pt float64) float64 { return pt / v.PtPerUnit }

func (v Viewport) lo() float64 {
	if v.Span.Width() <= 0 {
		return v.Span.MinCoord - axis.MinPadding
	}
	return v.Span.Lo()
}
