package layout

// Rect is an axis-aligned rectangle in plot units. Bottom is below Top,
// i.e. y grows upwards away from the axis on the Above side.
type Rect struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return (r.Bottom + r.Top) / 2 }

// Overlaps reports whether r and o overlap once separated by less than pad.
// Two rectangles are apart only if one lies strictly more than pad to the
// left, right, below or above the other.
func (r Rect) Overlaps(o Rect, pad float64) bool {
	return !(r.Right+pad < o.Left ||
		r.Left > o.Right+pad ||
		r.Top+pad < o.Bottom ||
		r.Bottom > o.Top+pad)
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   min(r.Left, o.Left),
		Right:  max(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
		Top:    max(r.Top, o.Top),
	}
}
