// Package measure turns label text into plot-space rectangles.
//
// Text is measured in points with the embedded Go fonts (see
// [github.com/matzehuels/timeline/pkg/fonts]) and converted to axis days
// and offset units through a [Viewport]. The viewport's scales are fixed
// before layout runs; renderers grow the canvas to fit the resulting
// extent instead of rescaling, so measured and drawn sizes agree.
//
//	vp := measure.NewViewport(span, 1008, 504, layout.DefaultExtent)
//	m, err := measure.New(vp, 10, fonts.Style{})
//	res, err := layout.Resolve(items, cfg, m.Measure)
package measure
