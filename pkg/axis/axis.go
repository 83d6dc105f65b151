// Package axis maps calendar dates onto the one-dimensional timeline axis.
//
// Coordinates are days since 1970-01-01 UTC, so the mapping is linear in
// elapsed time and preserves date order. The visible range of a timeline
// is its date range widened by a padding of 5% on each side (at least one
// day), which keeps single-date timelines from collapsing to zero width.
//
// [MonthBands] splits the span into calendar months for the tick marks,
// month names and year boxes drawn along the axis.
package axis

import (
	"math"
	"time"

	"github.com/matzehuels/timeline/pkg/timeline"
)

const (
	// PaddingRatio is the share of the date range added on each side.
	PaddingRatio = 0.05

	// MinPadding is the padding floor in days for degenerate spans.
	MinPadding = 1.0
)

const secondsPerDay = 86400

// Coord returns the axis coordinate of t: days since the Unix epoch.
func Coord(t time.Time) float64 {
	return float64(t.Unix()) / secondsPerDay
}

// Date converts a coordinate back to a time (UTC).
func Date(coord float64) time.Time {
	return time.Unix(int64(math.Round(coord*secondsPerDay)), 0).UTC()
}

// Span is the date range covered by an event sequence.
type Span struct {
	MinDate  time.Time `json:"min_date"`
	MaxDate  time.Time `json:"max_date"`
	MinCoord float64   `json:"min_coord"`
	MaxCoord float64   `json:"max_coord"`
	Padding  float64   `json:"padding"`
}

// Empty reports whether the span was computed from no events.
func (s Span) Empty() bool { return s.MinDate.IsZero() && s.MaxDate.IsZero() }

// Lo is the left edge of the visible range.
func (s Span) Lo() float64 { return s.MinCoord - s.Padding }

// Hi is the right edge of the visible range.
func (s Span) Hi() float64 { return s.MaxCoord + s.Padding }

// Width is the extent of the visible range in days.
func (s Span) Width() float64 { return s.Hi() - s.Lo() }

// Contains reports whether c lies within the visible range.
func (s Span) Contains(c float64) bool { return c >= s.Lo() && c <= s.Hi() }

// NewSpan builds a span from its end dates.
func NewSpan(minDate, maxDate time.Time) Span {
	s := Span{
		MinDate:  minDate,
		MaxDate:  maxDate,
		MinCoord: Coord(minDate),
		MaxCoord: Coord(maxDate),
	}
	s.Padding = max((s.MaxCoord-s.MinCoord)*PaddingRatio, MinPadding)
	return s
}

// Mapper assigns axis coordinates to events.
type Mapper struct{}

// Coord returns the coordinate of a single event.
func (Mapper) Coord(e timeline.Event) float64 { return Coord(e.Date) }

// Coords returns one coordinate per event, in sequence order. It does not
// modify seq and returns identical values for identical input.
func (m Mapper) Coords(seq timeline.Sequence) []float64 {
	out := make([]float64, len(seq))
	for i, e := range seq {
		out[i] = m.Coord(e)
	}
	return out
}

// Map returns the mapper and span for a date-sorted sequence. An empty
// sequence yields an empty span.
func Map(seq timeline.Sequence) (Mapper, Span) {
	if len(seq) == 0 {
		return Mapper{}, Span{}
	}
	minDate, maxDate := seq[0].Date, seq[0].Date
	for _, e := range seq[1:] {
		if e.Date.Before(minDate) {
			minDate = e.Date
		}
		if e.Date.After(maxDate) {
			maxDate = e.Date
		}
	}
	return Mapper{}, NewSpan(minDate, maxDate)
}
