package sink

import (
	"bytes"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/fonts"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	dpi         float64
	transparent bool
	faces       map[faceKey]font.Face
}

type faceKey struct {
	style fonts.Style
	size  float64
}

// WithDPI overrides the scene's resolution.
func WithDPI(dpi float64) PNGOption { return func(r *pngRenderer) { r.dpi = dpi } }

// WithPNGTransparent leaves the background transparent.
func WithPNGTransparent() PNGOption { return func(r *pngRenderer) { r.transparent = true } }

// RenderPNG rasterises the scene. The image is Width×Height points at the
// configured resolution.
func RenderPNG(s *Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{dpi: s.DPI, faces: map[faceKey]font.Face{}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.dpi <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "dpi must be positive, got %g", r.dpi)
	}
	defer r.close()

	scale := r.dpi / 72
	w := int(math.Ceil(s.Width * scale))
	h := int(math.Ceil(s.Height * scale))
	dc := gg.NewContext(w, h)

	if !r.transparent && !strings.EqualFold(s.Background, "none") {
		if err := setColor(dc, s.Background, 1); err != nil {
			return nil, err
		}
		dc.Clear()
	}

	for _, l := range s.Ticks {
		if err := r.line(dc, l, scale); err != nil {
			return nil, err
		}
	}
	if err := r.line(dc, s.Axis, scale); err != nil {
		return nil, err
	}
	for _, l := range s.Connectors {
		if err := r.line(dc, l, scale); err != nil {
			return nil, err
		}
	}
	for _, m := range s.Markers {
		dc.DrawCircle(m.CX*scale, m.CY*scale, m.R*scale)
		if err := setColor(dc, m.Fill, 1); err != nil {
			return nil, err
		}
		dc.FillPreserve()
		if err := setColor(dc, m.Stroke, 1); err != nil {
			return nil, err
		}
		dc.SetLineWidth(m.StrokeWidth * scale)
		dc.Stroke()
	}
	for _, t := range s.Labels {
		if err := r.text(dc, t, scale); err != nil {
			return nil, err
		}
	}
	for _, t := range s.Dates {
		if err := r.text(dc, t, scale); err != nil {
			return nil, err
		}
	}
	for _, y := range s.Years {
		dc.DrawRoundedRectangle(y.X*scale, y.Y*scale, y.W*scale, y.H*scale, y.Radius*scale)
		if err := setColor(dc, y.Fill, 1); err != nil {
			return nil, err
		}
		dc.FillPreserve()
		if err := setColor(dc, y.Stroke, 1); err != nil {
			return nil, err
		}
		dc.SetLineWidth(y.StrokeWidth * scale)
		dc.Stroke()
		if err := r.text(dc, y.Label, scale); err != nil {
			return nil, err
		}
	}
	for _, t := range s.Months {
		if err := r.text(dc, t, scale); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) line(dc *gg.Context, l Line, scale float64) error {
	if err := setColor(dc, l.Color, l.Alpha); err != nil {
		return err
	}
	dc.SetLineWidth(l.Width * scale)
	dc.DrawLine(l.X1*scale, l.Y1*scale, l.X2*scale, l.Y2*scale)
	dc.Stroke()
	return nil
}

func (r *pngRenderer) text(dc *gg.Context, t Text, scale float64) error {
	face, err := r.face(t.Style, t.Size, scale)
	if err != nil {
		return err
	}
	if err := setColor(dc, t.Color, t.Alpha); err != nil {
		return err
	}
	dc.SetFontFace(face)

	ax := 0.5
	if t.Anchor == AnchorStart {
		ax = 0
	}
	for i, line := range t.Lines {
		y := (t.Baseline + float64(i)*t.LineHeight) * scale
		dc.DrawStringAnchored(line, t.X*scale, y, ax, 0)
	}
	return nil
}

func (r *pngRenderer) face(st fonts.Style, size, scale float64) (font.Face, error) {
	key := faceKey{st, size}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	f, err := fonts.Face(st, size, 72*scale)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
	}
	r.faces[key] = f
	return f, nil
}

func (r *pngRenderer) close() {
	for _, f := range r.faces {
		f.Close()
	}
}

func setColor(dc *gg.Context, hex string, alpha float64) error {
	c, err := config.ParseColor(hex)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "color")
	}
	c.A = uint8(math.Round(float64(c.A) * max(0, min(1, alpha))))
	dc.SetColor(c)
	return nil
}
