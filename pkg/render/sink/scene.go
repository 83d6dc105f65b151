package sink

import (
	"strconv"

	"github.com/matzehuels/timeline/pkg/axis"
	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/fonts"
	"github.com/matzehuels/timeline/pkg/render/layout"
	"github.com/matzehuels/timeline/pkg/render/measure"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// TextAnchor is the horizontal alignment of a text item.
type TextAnchor string

const (
	AnchorMiddle TextAnchor = "middle"
	AnchorStart  TextAnchor = "start"
)

// Line is a stroked segment in page points.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          string
	Alpha          float64
}

// Circle is a filled, outlined marker.
type Circle struct {
	CX, CY, R   float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Text is one or more lines of text. Baseline is the first line's
// baseline; later lines follow at LineHeight intervals.
type Text struct {
	X          float64
	Baseline   float64
	Lines      []string
	Anchor     TextAnchor
	Size       float64
	LineHeight float64
	Style      fonts.Style
	Color      string
	Alpha      float64
}

// YearBox is a year label inside a rounded box.
type YearBox struct {
	Label       Text
	X, Y, W, H  float64
	Radius      float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Scene is a fully laid out timeline: the core results plus the display
// list both vector and raster sinks draw from. All drawing coordinates
// are page points with the origin at the top-left corner.
type Scene struct {
	Width      float64
	Height     float64
	DPI        float64
	Background string
	Family     string

	Events   timeline.Sequence
	Span     axis.Span
	Bands    []axis.MonthBand
	Result   layout.Result
	Layout   layout.Config
	Viewport measure.Viewport
	Config   config.Config

	// Draw order: ticks, axis, connectors, markers, labels, dates, years,
	// months.
	Ticks      []Line
	Axis       Line
	Connectors []Line
	Markers    []Circle
	Labels     []Text
	Dates      []Text
	Years      []YearBox
	Months     []Text
}

// NewScene maps seq onto the page described by cfg, resolves label
// collisions with the label font and builds the display list. seq must be
// sorted, as returned by [timeline.Build].
func NewScene(seq timeline.Sequence, cfg config.Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lc := cfg.Layout()
	d := cfg.Dimensions

	mapper, span := axis.Map(seq)
	vp := measure.NewViewport(span, d.PlotWidth(), d.PlotHeight(), lc.DefaultExtent)

	labels, err := measure.New(vp, cfg.Fonts.LabelSize, cfg.Fonts.LabelStyle())
	if err != nil {
		return nil, err
	}
	defer labels.Close()

	coords := mapper.Coords(seq)
	items := make([]layout.Item, len(seq))
	for i, e := range seq {
		items[i] = layout.Item{Text: e.Name, Anchor: coords[i], Lane: e.Lane}
	}
	res, err := layout.Resolve(items, lc, labels.Measure)
	if err != nil {
		return nil, err
	}

	vp = vp.WithExtent(res.MaxExtent)
	s := &Scene{
		Width:      vp.Width() + (d.MarginLeft+d.MarginRight)*72,
		Height:     vp.Height() + (d.MarginTop+d.MarginBottom)*72,
		DPI:        d.DPI,
		Background: cfg.Colors.Background,
		Family:     cfg.Fonts.Family,
		Events:     seq,
		Span:       span,
		Bands:      axis.MonthBands(span),
		Result:     res,
		Layout:     lc,
		Viewport:   vp,
		Config:     cfg,
	}
	if err := s.build(labels.Metrics()); err != nil {
		return nil, err
	}
	return s, nil
}

// X converts an axis coordinate to page points.
func (s *Scene) X(coord float64) float64 {
	return s.Config.Dimensions.MarginLeft*72 + s.Viewport.X(coord)
}

// Y converts a vertical offset to page points.
func (s *Scene) Y(offset float64) float64 {
	return s.Config.Dimensions.MarginTop*72 + s.Viewport.Y(offset)
}

func (s *Scene) build(label measure.Metrics) error {
	c, f, v := s.Config.Colors, s.Config.Fonts, s.Config.Visual

	month, err := measure.FaceMetrics(f.MonthStyle(), f.MonthLabelSize)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMeasure, err, "month font")
	}
	date, err := measure.FaceMetrics(f.DateStyle(), f.DateSize)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMeasure, err, "date font")
	}

	s.Axis = Line{
		X1: s.X(s.Span.MinCoord), Y1: s.Y(0),
		X2: s.X(s.Span.MaxCoord), Y2: s.Y(0),
		Width: v.TimelineLineWidth, Color: c.TimelineLine, Alpha: 1,
	}

	if err := s.buildBands(month); err != nil {
		return err
	}

	for i, p := range s.Result.Placements {
		e := s.Events[i]
		x := s.X(p.Anchor)
		laneColor := c.LaneColor(p.FinalLane == timeline.Above)
		markerY := s.Y(s.Layout.MarkerOffset(p.Offset))

		s.Connectors = append(s.Connectors, Line{
			X1: x, Y1: s.Y(0), X2: x, Y2: markerY,
			Width: v.ConnectorLineWidth, Color: laneColor, Alpha: v.ConnectorLineAlpha,
		})
		s.Markers = append(s.Markers, Circle{
			CX: x, CY: markerY, R: v.MarkerSize / 2,
			Fill: laneColor, Stroke: c.MarkerOutline, StrokeWidth: v.MarkerOutlineWidth,
		})
		s.Labels = append(s.Labels, Text{
			X:          x,
			Baseline:   s.Y(p.Rect.Top) + label.Ascent,
			Lines:      measure.Lines(p.Text),
			Anchor:     AnchorMiddle,
			Size:       f.LabelSize,
			LineHeight: label.LineHeight,
			Style:      f.LabelStyle(),
			Color:      c.Text,
			Alpha:      1,
		})

		if v.ShowDates {
			off := s.Layout.DateCaptionOffset(p.FinalLane)
			baseline := s.Y(off) - date.Descent
			if off < 0 {
				baseline = s.Y(off) + date.Ascent
			}
			s.Dates = append(s.Dates, Text{
				X:          x,
				Baseline:   baseline,
				Lines:      []string{v.FormatDisplayDate(e.Date)},
				Anchor:     AnchorMiddle,
				Size:       f.DateSize,
				LineHeight: date.LineHeight,
				Style:      f.DateStyle(),
				Color:      c.DateText,
				Alpha:      1,
			})
		}
	}
	return nil
}

// buildBands adds month ticks, month names and year boxes. Only bands
// starting inside the visible range get a tick; a year box marks the
// first visible band of each year.
func (s *Scene) buildBands(month measure.Metrics) error {
	c, f, v := s.Config.Colors, s.Config.Fonts, s.Config.Visual

	if len(s.Bands) == 0 {
		return nil
	}
	years, err := measure.New(s.Viewport, f.YearLabelSize, f.YearStyle())
	if err != nil {
		return err
	}
	defer years.Close()

	lastYear := 0
	for _, b := range s.Bands {
		if !b.StartVisible {
			continue
		}
		x := s.X(b.StartCoord)
		s.Ticks = append(s.Ticks, Line{
			X1: x, Y1: s.Y(-v.MonthTickHeight), X2: x, Y2: s.Y(v.MonthTickHeight),
			Width: v.MonthBoundaryWidth, Color: c.MonthBoundary, Alpha: v.MonthBoundaryAlpha,
		})

		if b.Year() != lastYear {
			s.Years = append(s.Years, s.yearBox(years, x, b.Year()))
			lastYear = b.Year()
		}

		if s.Span.Contains(b.Center()) {
			s.Months = append(s.Months, Text{
				X:          s.X(b.Center()),
				Baseline:   s.Y(v.MonthLabelOffset) - month.Descent,
				Lines:      []string{b.Month.Format("Jan")},
				Anchor:     AnchorMiddle,
				Size:       f.MonthLabelSize,
				LineHeight: month.LineHeight,
				Style:      f.MonthStyle(),
				Color:      c.MonthLabel,
				Alpha:      v.MonthLabelAlpha,
			})
		}
	}
	return nil
}

func (s *Scene) yearBox(m *measure.Measurer, x float64, year int) YearBox {
	c, f, v := s.Config.Colors, s.Config.Fonts, s.Config.Visual
	label := " " + strconv.Itoa(year) + " "
	w, h := m.TextSize(label)
	met := m.Metrics()
	pad := v.YearBoxPadding * f.YearLabelSize
	cy := s.Y(0)

	return YearBox{
		Label: Text{
			X:          x,
			Baseline:   cy - h/2 + met.Ascent,
			Lines:      []string{label},
			Anchor:     AnchorStart,
			Size:       f.YearLabelSize,
			LineHeight: met.LineHeight,
			Style:      f.YearStyle(),
			Color:      c.YearLabel,
			Alpha:      1,
		},
		X:           x - pad,
		Y:           cy - h/2 - pad,
		W:           w + 2*pad,
		H:           h + 2*pad,
		Radius:      pad,
		Fill:        c.YearBoxFill,
		Stroke:      c.YearBoxOutline,
		StrokeWidth: v.YearBoxLinewidth,
	}
}
