package layout

import (
	"math"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// Item is one label to place: its text, the axis coordinate of its event
// and the lane the event asked for.
type Item struct {
	Text   string        `json:"text"`
	Anchor float64       `json:"anchor"`
	Lane   timeline.Lane `json:"lane"`
}

// MeasureFunc returns the rectangle item's label occupies when drawn at
// offset. It must be consistent within one Resolve call.
type MeasureFunc func(item Item, offset float64) (Rect, error)

// Placement is the resolved position of one label.
type Placement struct {
	Item
	NaturalOffset float64       `json:"natural_offset"`
	Offset        float64       `json:"offset"`
	FinalLane     timeline.Lane `json:"final_lane"`
	Rect          Rect          `json:"rect"`
	Attempts      int           `json:"attempts"`
	Seed          bool          `json:"seed,omitempty"`
	Swapped       bool          `json:"swapped,omitempty"`
	// Resolved is false when every attempt collided and the label was
	// left at its last tried position.
	Resolved bool `json:"resolved"`
}

// Result is the outcome of a layout run.
type Result struct {
	// Placements has one entry per item, in item order.
	Placements []Placement `json:"placements"`
	// MaxExtent is the largest |offset| + FixedMargin used, never less than
	// Config.DefaultExtent. Callers size the plot to ±MaxExtent.
	MaxExtent float64 `json:"max_extent"`
	// SeedIndex is the index of the seed item, or -1 when there were none.
	SeedIndex int `json:"seed_index"`
	// Measurements counts MeasureFunc calls.
	Measurements int `json:"measurements"`
}

// Resolve places every item so that no two label rectangles overlap,
// where the attempt budget allows it. Items must be ordered by anchor.
//
// The only error conditions are an invalid cfg and a failing measure;
// collisions that cannot be resolved degrade to best-effort placement.
func Resolve(items []Item, cfg Config, measure MeasureFunc) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{MaxExtent: cfg.DefaultExtent, SeedIndex: -1}
	if len(items) == 0 {
		return res, nil
	}

	r := &resolver{
		cfg:        cfg,
		measure:    measure,
		placements: make([]Placement, len(items)),
		positioned: make([]Rect, 0, len(items)),
	}

	seed := len(items) / 2
	res.SeedIndex = seed
	if err := r.placeSeed(seed, items[seed]); err != nil {
		return Result{}, err
	}
	for i := seed - 1; i >= 0; i-- {
		if err := r.place(i, items[i]); err != nil {
			return Result{}, err
		}
	}
	for i := seed + 1; i < len(items); i++ {
		if err := r.place(i, items[i]); err != nil {
			return Result{}, err
		}
	}

	for _, p := range r.placements {
		res.MaxExtent = max(res.MaxExtent, math.Abs(p.Offset)+cfg.FixedMargin)
	}
	res.Placements = r.placements
	res.Measurements = r.calls
	return res, nil
}

type resolver struct {
	cfg        Config
	measure    MeasureFunc
	placements []Placement
	positioned []Rect
	calls      int
}

func (r *resolver) measureAt(item Item, offset float64) (Rect, error) {
	r.calls++
	rect, err := r.measure(item, offset)
	if err != nil {
		return Rect{}, errors.Wrap(errors.ErrCodeMeasure, err, "measure label %q", item.Text)
	}
	return rect, nil
}

func (r *resolver) placeSeed(i int, item Item) error {
	offset := r.cfg.BaseOffset(item.Lane)
	rect, err := r.measureAt(item, offset)
	if err != nil {
		return err
	}
	r.accept(i, Placement{
		Item:          item,
		NaturalOffset: offset,
		Offset:        offset,
		FinalLane:     item.Lane,
		Rect:          rect,
		Attempts:      1,
		Seed:          true,
		Resolved:      true,
	})
	return nil
}

func (r *resolver) place(i int, item Item) error {
	natural := r.cfg.BaseOffset(item.Lane)
	p := Placement{Item: item, NaturalOffset: natural}

	lane, offset := item.Lane, natural
	swapped := false
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		rect, err := r.measureAt(item, offset)
		if err != nil {
			return err
		}
		p.Offset, p.FinalLane, p.Rect, p.Attempts = offset, lane, rect, attempt+1
		if !r.collides(rect) {
			p.Resolved = true
			break
		}

		offset += lane.Sign() * r.cfg.StackIncrement
		if !swapped && attempt+1 == r.cfg.SwapAfter {
			lane = lane.Opposite()
			offset = r.cfg.BaseOffset(lane)
			swapped = true
		}
	}

	p.Swapped = p.FinalLane != item.Lane
	r.accept(i, p)
	return nil
}

func (r *resolver) collides(rect Rect) bool {
	for _, other := range r.positioned {
		if rect.Overlaps(other, r.cfg.CollisionPadding) {
			return true
		}
	}
	return false
}

func (r *resolver) accept(i int, p Placement) {
	r.placements[i] = p
	r.positioned = append(r.positioned, p.Rect)
}

// Overlapping returns the index pairs of placements whose rectangles
// overlap with the given padding. An empty result means the layout is
// collision free.
func (res Result) Overlapping(pad float64) [][2]int {
	var pairs [][2]int
	for i := range res.Placements {
		for j := i + 1; j < len(res.Placements); j++ {
			if res.Placements[i].Rect.Overlaps(res.Placements[j].Rect, pad) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// Unresolved counts placements that fell back to best effort.
func (res Result) Unresolved() int {
	n := 0
	for _, p := range res.Placements {
		if !p.Resolved {
			n++
		}
	}
	return n
}

// Swapped counts placements that ended on the other lane.
func (res Result) Swapped() int {
	n := 0
	for _, p := range res.Placements {
		if p.Swapped {
			n++
		}
	}
	return n
}

// Bounds returns the union of all label rectangles.
func (res Result) Bounds() (Rect, bool) {
	if len(res.Placements) == 0 {
		return Rect{}, false
	}
	b := res.Placements[0].Rect
	for _, p := range res.Placements[1:] {
		b = b.Union(p.Rect)
	}
	return b, true
}
