// Package sink renders laid out timelines.
//
// # Overview
//
// [NewScene] runs the core pipeline for one sequence of events: it maps
// dates onto the axis, computes month bands, measures labels with the
// configured font and resolves collisions. The result is a [Scene]: the
// layout data plus a display list (ticks, axis line, connectors,
// markers, labels, date captions, year boxes, month names) in page
// points. Every output format draws from the same display list:
//
//   - SVG: [RenderSVG], optionally with embedded fonts
//   - PNG: [RenderPNG], rasterised with gg at the configured DPI
//   - JSON: [RenderJSON], the placements for external tools
//
// Basic usage:
//
//	scene, err := sink.NewScene(seq, cfg)
//	svg := sink.RenderSVG(scene, sink.WithEmbeddedFonts())
//	png, err := sink.RenderPNG(scene, sink.WithDPI(150))
//
// # Page Geometry
//
// The horizontal scale is fixed by the plot width. The vertical scale is
// fixed by the configured plot height and the empty-timeline extent; when
// labels stack beyond that extent the page grows taller instead of
// squeezing, so text is drawn at the size it was measured at.
package sink
