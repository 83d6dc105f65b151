package layout

import (
	"math"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// Default tunables. Changing any of them changes the rendered layout.
const (
	DefaultVerticalSpacing  = 0.8
	DefaultLabelOffset      = 0.1
	DefaultDateOffset       = 0.15
	DefaultStackIncrement   = 0.2
	DefaultCollisionPadding = 0.05
	DefaultMaxAttempts      = 10
	DefaultSwapAfter        = 3
	DefaultFixedMargin      = 0.3
	DefaultExtent           = DefaultVerticalSpacing + 0.8
)

// Config holds the layout tunables. All distances are in offset units.
type Config struct {
	// VerticalSpacing is the distance from the axis to a lane's marker.
	VerticalSpacing float64 `json:"vertical_spacing" yaml:"vertical_spacing" toml:"vertical_spacing"`
	// LabelOffset is the gap between a marker and its label.
	LabelOffset float64 `json:"label_offset" yaml:"label_offset" toml:"label_offset"`
	// DateOffset places date captions on the opposite side of the axis.
	DateOffset float64 `json:"date_offset" yaml:"date_offset" toml:"date_offset"`
	// StackIncrement is the step away from the axis after a collision.
	StackIncrement float64 `json:"stack_increment" yaml:"stack_increment" toml:"stack_increment"`
	// CollisionPadding is the minimum gap between two labels.
	CollisionPadding float64 `json:"collision_padding" yaml:"collision_padding" toml:"collision_padding"`
	// MaxAttempts bounds the measurements per label.
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`
	// SwapAfter is the number of failed attempts before switching lanes.
	// Zero disables lane swapping.
	SwapAfter int `json:"swap_after" yaml:"swap_after" toml:"swap_after"`
	// FixedMargin is added to a label's offset for marker and connector
	// clearance when computing the vertical extent.
	FixedMargin float64 `json:"fixed_margin" yaml:"fixed_margin" toml:"fixed_margin"`
	// DefaultExtent is the extent reported for an empty timeline and the
	// floor of the extent otherwise.
	DefaultExtent float64 `json:"default_extent" yaml:"default_extent" toml:"default_extent"`
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		VerticalSpacing:  DefaultVerticalSpacing,
		LabelOffset:      DefaultLabelOffset,
		DateOffset:       DefaultDateOffset,
		StackIncrement:   DefaultStackIncrement,
		CollisionPadding: DefaultCollisionPadding,
		MaxAttempts:      DefaultMaxAttempts,
		SwapAfter:        DefaultSwapAfter,
		FixedMargin:      DefaultFixedMargin,
		DefaultExtent:    DefaultExtent,
	}
}

// Validate rejects tunables the algorithm cannot work with.
func (c Config) Validate() error {
	switch {
	case c.MaxAttempts < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "max_attempts must be at least 1, got %d", c.MaxAttempts)
	case c.SwapAfter < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "swap_after cannot be negative, got %d", c.SwapAfter)
	case c.StackIncrement <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "stack_increment must be positive, got %g", c.StackIncrement)
	case c.CollisionPadding < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "collision_padding cannot be negative, got %g", c.CollisionPadding)
	case c.FixedMargin < 0 || c.DefaultExtent < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "fixed_margin and default_extent cannot be negative")
	}
	return nil
}

// BaseOffset is the natural label offset for a lane: the marker distance
// plus the label gap, positive above the axis and negative below.
func (c Config) BaseOffset(l timeline.Lane) float64 {
	return l.Sign() * (math.Abs(c.VerticalSpacing) + c.LabelOffset)
}

// MarkerOffset returns where the marker sits for a label at offset: one
// LabelOffset closer to the axis.
func (c Config) MarkerOffset(offset float64) float64 {
	if offset > 0 {
		return offset - c.LabelOffset
	}
	return offset + c.LabelOffset
}

// DateCaptionOffset returns the offset of the date caption for an event
// whose label sits on lane l. Captions go on the opposite side.
func (c Config) DateCaptionOffset(l timeline.Lane) float64 {
	return -l.Sign() * c.DateOffset
}
