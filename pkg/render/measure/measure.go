package measure

import (
	"strings"
	"sync"

	"golang.org/x/image/font"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/fonts"
	"github.com/matzehuels/timeline/pkg/render/layout"
)

// Metrics are the vertical font metrics of a face in points.
type Metrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
}

// BlockHeight is the height of lines lines of text.
func (m Metrics) BlockHeight(lines int) float64 {
	if lines < 1 {
		lines = 1
	}
	return m.Ascent + m.Descent + float64(lines-1)*m.LineHeight
}

// FaceMetrics returns the metrics of the embedded font in style s at size
// points.
func FaceMetrics(s fonts.Style, size float64) (Metrics, error) {
	face, err := fonts.Face(s, size, 72)
	if err != nil {
		return Metrics{}, err
	}
	defer face.Close()
	return metricsOf(face), nil
}

func metricsOf(face font.Face) Metrics {
	fm := face.Metrics()
	return Metrics{
		Ascent:     float64(fm.Ascent) / 64,
		Descent:    float64(fm.Descent) / 64,
		LineHeight: float64(fm.Height) / 64,
	}
}

// Lines splits label text into the lines it is drawn on.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// Measurer measures label text with one font face and converts the
// result to plot space. It is safe for concurrent use.
type Measurer struct {
	vp      Viewport
	size    float64
	metrics Metrics

	mu     sync.Mutex
	face   font.Face
	widths map[string]float64
}

// New returns a Measurer for the embedded font in style s at size points.
func New(vp Viewport, size float64, s fonts.Style) (*Measurer, error) {
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "font size must be positive, got %g", size)
	}
	face, err := fonts.Face(s, size, 72)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMeasure, err, "load label font")
	}
	return &Measurer{
		vp:      vp,
		size:    size,
		metrics: metricsOf(face),
		face:    face,
		widths:  make(map[string]float64),
	}, nil
}

// Viewport returns the viewport the measurer converts with.
func (m *Measurer) Viewport() Viewport { return m.vp }

// Metrics returns the face metrics in points.
func (m *Measurer) Metrics() Metrics { return m.metrics }

// TextSize returns the width and height of text in points. Widths are
// cached per text, so repeated calls return identical values.
func (m *Measurer) TextSize(text string) (w, h float64) {
	lines := Lines(text)
	return m.width(text, lines), m.metrics.BlockHeight(len(lines))
}

func (m *Measurer) width(text string, lines []string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.widths[text]; ok {
		return w
	}
	var w float64
	for _, line := range lines {
		w = max(w, float64(font.MeasureString(m.face, line))/64)
	}
	m.widths[text] = w
	return w
}

// Measure returns the rectangle of item's label drawn at offset: centred
// on the anchor, resting on the offset above the axis and hanging from it
// below. It satisfies [layout.MeasureFunc].
func (m *Measurer) Measure(item layout.Item, offset float64) (layout.Rect, error) {
	if !m.vp.Valid() {
		return layout.Rect{}, errors.New(errors.ErrCodeMeasure, "viewport has no drawable area")
	}
	w, h := m.TextSize(item.Text)
	dw, dh := m.vp.Days(w), m.vp.Units(h)

	r := layout.Rect{Left: item.Anchor - dw/2, Right: item.Anchor + dw/2}
	if offset >= 0 {
		r.Bottom, r.Top = offset, offset+dh
	} else {
		r.Bottom, r.Top = offset-dh, offset
	}
	return r, nil
}

// Close releases the font face.
func (m *Measurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face.Close()
}
