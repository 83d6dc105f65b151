package timeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/timeline/pkg/errors"
)

// Lane is the side of the axis an event's marker and label occupy.
type Lane int

const (
	// LaneUnset marks a record without a usable position. Events in a
	// built Sequence never carry it.
	LaneUnset Lane = iota
	Above
	Below
)

// ParseLane accepts "above" and "below" in any case, ignoring surrounding
// whitespace. Anything else reports ok=false.
func ParseLane(s string) (Lane, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "above":
		return Above, true
	case "below":
		return Below, true
	}
	return LaneUnset, false
}

// String returns "above", "below" or "" for LaneUnset.
func (l Lane) String() string {
	switch l {
	case Above:
		return "above"
	case Below:
		return "below"
	}
	return ""
}

// Opposite returns the other lane. LaneUnset stays unset.
func (l Lane) Opposite() Lane {
	switch l {
	case Above:
		return Below
	case Below:
		return Above
	}
	return LaneUnset
}

// Sign is +1 for Above and -1 for Below.
func (l Lane) Sign() float64 {
	if l == Below {
		return -1
	}
	return 1
}

// MarshalText implements encoding.TextMarshaler.
func (l Lane) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown values decode
// to LaneUnset rather than failing, matching how records are treated.
func (l *Lane) UnmarshalText(b []byte) error {
	lane, _ := ParseLane(string(b))
	*l = lane
	return nil
}

// LaneFor returns the alternating lane for a position in the sorted
// sequence: Above for even indices, Below for odd ones.
func LaneFor(index int) Lane {
	if index%2 == 0 {
		return Above
	}
	return Below
}

// Record is a raw event as read from a file or request.
type Record struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Date string `json:"date" yaml:"date" toml:"date"`
	Lane string `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
}

// Event is a validated timeline entry.
type Event struct {
	Name  string    `json:"name"`
	Date  time.Time `json:"date"`
	Lane  Lane      `json:"lane"`
	Index int       `json:"index"` // position in the input records
}

// Sequence is a list of events sorted non-decreasing by date.
type Sequence []Event

// Build validates records and returns them as a date-sorted Sequence.
//
// Records must have a non-blank name and a DD.MM.YYYY date; names are
// otherwise taken as they are, whatever their length or content. the first
// violation is returned and no Sequence is produced. The sort is stable,
// so events sharing a date keep their input order. Lanes that are missing
// or invalid are assigned from the event's sorted position via [LaneFor].
func Build(records []Record) (Sequence, error) {
	seq := make(Sequence, 0, len(records))
	lanes := make([]bool, 0, len(records))

	for i, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("record %d: %w", i,
				errors.New(errors.ErrCodeInvalidSchema, "event has no name"))
		}
		if strings.TrimSpace(r.Date) == "" {
			return nil, fmt.Errorf("record %d: %w", i,
				errors.New(errors.ErrCodeInvalidSchema, "event %q has no date", r.Name))
		}
		d, err := ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		lane, ok := ParseLane(r.Lane)
		seq = append(seq, Event{
			Name:  strings.TrimSpace(r.Name),
			Date:  d,
			Lane:  lane,
			Index: i,
		})
		lanes = append(lanes, ok)
	}

	slices.SortStableFunc(seq, func(a, b Event) int {
		return a.Date.Compare(b.Date)
	})

	for i := range seq {
		if !lanes[seq[i].Index] {
			seq[i].Lane = LaneFor(i)
		}
	}
	return seq, nil
}

// Names returns the event names in sequence order.
func (s Sequence) Names() []string {
	names := make([]string, len(s))
	for i, e := range s {
		names[i] = e.Name
	}
	return names
}

// Lanes returns the resolved lanes in sequence order.
func (s Sequence) Lanes() []Lane {
	lanes := make([]Lane, len(s))
	for i, e := range s {
		lanes[i] = e.Lane
	}
	return lanes
}

// Records converts the sequence back to raw records with explicit
// positions, in date order. Used for CSV export.
func (s Sequence) Records() []Record {
	out := make([]Record, len(s))
	for i, e := range s {
		out[i] = Record{Name: e.Name, Date: FormatDate(e.Date), Lane: e.Lane.String()}
	}
	return out
}
