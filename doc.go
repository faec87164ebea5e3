// Package paragraph is a paragraph text-layout engine for Go.
//
// # Overview
//
// Given a string that is split into directional and script runs, paragraph
// partitions it into visual lines under a width or column budget, computes
// per-line metrics, reorders runs for bidirectional text, and maps between
// logical character offsets and visual x-coordinates. All measurements use
// the 26.6 fixed-point type from the metric package so that line breaking is
// reproducible on every platform.
//
// # Quick Start
//
//	engine, err := text.NewGoTextEngine(goregular.TTF, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tl, err := layout.New(engine, layout.WithWrapMode(layout.WrapAtWordBoundary))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tl.SetText("Hello World")
//	tl.BeginLayout()
//	for {
//	    line := tl.CreateLine()
//	    if !line.IsValid() {
//	        break
//	    }
//	    line.SetLineWidth(metric.FromInt(200))
//	}
//	tl.EndLayout()
//
// # Architecture
//
// The library is organized into:
//   - metric: FixedMetric (26.6), points and rectangles
//   - text: script items, glyph storage, font engines, itemization
//   - layout: line breaking, bidi reordering, cursor mapping, glyph runs
//   - fixture: a small DSL describing paragraphs for tests and tools
//
// # Coordinate System
//
//   - Origin (0,0) at the top-left of the paragraph
//   - X increases right
//   - Y increases down; a line's baseline is at Y + Ascent
//
// # Concurrency
//
// A TextLayout is single-owner: callers must serialize access to one
// instance. Engines may be shared between layouts.
package paragraph

// Version is the current version of the library.
const Version = "0.1.0"
