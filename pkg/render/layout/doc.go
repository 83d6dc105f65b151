// Package layout resolves label positions for a two-lane timeline.
//
// Every event owns a label that sits above or below the axis. Labels have
// real, measured extents, so dense stretches of the timeline produce
// collisions. [Resolve] assigns each label a final vertical offset and lane
// such that no two label rectangles overlap, while keeping labels as close
// as possible to their natural position next to the axis.
//
// # Algorithm
//
// Resolution runs middle-out. The item at index len/2 is the seed: it keeps
// its natural offset and lane unconditionally. The remaining items are
// placed in two passes walking away from the seed, first towards index 0
// and then towards the last index. Each item is tested against every label
// placed so far:
//
//  1. Start at the natural offset of the item's lane.
//  2. Measure the label there; accept the position when it does not overlap
//     any placed label (gaps narrower than CollisionPadding count as
//     overlap).
//  3. Otherwise step StackIncrement further away from the axis.
//  4. After SwapAfter failures on the natural side, switch to the other
//     lane and restart from that lane's base offset.
//  5. After MaxAttempts measurements keep the last position anyway.
//
// The last rule means Resolve always terminates and always places every
// label. Placements that could not be freed of overlaps are reported with
// Resolved set to false.
//
// # Measurement
//
// The engine never computes text extents itself. Callers supply a
// [MeasureFunc] that returns the rectangle a label occupies when drawn at a
// given offset, in axis units (x in days, y in offset units). The function
// is called once per attempt and must return the same rectangle for the
// same item and offset within one run. See package measure for the
// font-based implementation used by the renderers.
package layout
