package axis

import "time"

// MonthBand is one calendar month along the axis.
type MonthBand struct {
	Month       time.Time `json:"month"` // first day of the month, UTC
	StartCoord  float64   `json:"start"`
	EndCoord    float64   `json:"end"`
	IsYearStart bool      `json:"year_start"`

	// StartVisible reports whether the month boundary lies inside the
	// visible range; ticks and year boxes are only drawn at visible starts.
	StartVisible bool `json:"start_visible"`
}

// Center is the midpoint of the band, where the month name goes.
func (b MonthBand) Center() float64 { return (b.StartCoord + b.EndCoord) / 2 }

// Year returns the band's calendar year.
func (b MonthBand) Year() int { return b.Month.Year() }

// MonthBands returns one band per calendar month from the month of
// s.MinDate through the month of s.MaxDate, in order. The first band is
// always a year start; later bands are year starts when their year
// differs from the previous band's.
func MonthBands(s Span) []MonthBand {
	if s.Empty() {
		return nil
	}

	y, m, _ := s.MinDate.Date()
	current := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)

	var bands []MonthBand
	lastYear := 0
	for !current.After(s.MaxDate) {
		next := current.AddDate(0, 1, 0)
		start := Coord(current)
		bands = append(bands, MonthBand{
			Month:        current,
			StartCoord:   start,
			EndCoord:     Coord(next),
			IsYearStart:  len(bands) == 0 || current.Year() != lastYear,
			StartVisible: s.Contains(start),
		})
		lastYear = current.Year()
		current = next
	}
	return bands
}
