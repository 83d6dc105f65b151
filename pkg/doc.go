// Package pkg provides the libraries behind the timeline renderer.
//
// # Overview
//
// Timeline draws dated events along a horizontal axis. Labels alternate
// above and below the line and are pushed outward until no two overlap.
// The pkg directory is organized into three areas:
//
//  1. Domain: [timeline] (events and dates), [axis] (date to coordinate
//     mapping, month bands) and [render/layout] (collision resolution)
//  2. Rendering: [render/measure] (text extents) and [render/sink] (SVG,
//     PNG and JSON output)
//  3. Infrastructure: [io] (CSV, JSON, iCalendar, vCard), [config],
//     [cache], [observability] and [pipeline] (orchestration)
//
// # Architecture
//
// The typical data flow:
//
//	events file (CSV / JSON / ICS / VCF)
//	         ↓
//	    [io] package (read records)
//	         ↓
//	    [timeline] package (validate, sort, assign lanes)
//	         ↓
//	    [axis] package (coordinates + month bands)
//	         ↓
//	    [render/layout] package (resolve label offsets)
//	         ↓
//	    [render/sink] package (SVG / PNG / JSON)
//
// # Quick Start
//
//	records, _ := io.Import("events.csv")
//	seq, _ := timeline.Build(records)
//	scene, _ := sink.NewScene(seq, config.Default())
//	svg := sink.RenderSVG(scene)
//
// [pipeline.Runner] does the same with caching and hooks, and is what the
// CLI and the HTTP server use.
package pkg
