// Package layout breaks a paragraph of shaped text into lines and maps
// between character offsets and positions inside those lines.
//
// A TextLayout owns the text, its script items and one glyph arena. Lines
// are produced cooperatively by the caller:
//
//	tl, err := layout.New(engine, layout.WithWrapMode(layout.WrapAtWordBoundary))
//	if err != nil {
//	    return err
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
// Each line is bounded either by a width (Line.SetLineWidth) or by a
// number of columns (Line.SetNumColumns). An open line that was never
// bounded is closed with unlimited columns by the next CreateLine or by
// EndLayout.
//
// Once laid out, a Line maps text offsets to x positions (OffsetToX) and
// back (XToOffset), and exports positioned glyph runs for rendering
// (GlyphRuns). Items with odd embedding levels are reordered visually with
// BidiReorder.
//
// # Errors
//
// Queries never fail. Calling them in the wrong state or with an index out
// of range returns an invalid Line, a zero value or -1, and logs a warning
// through paragraph.Logger. Items the engine cannot shape are laid out with
// zero width.
//
// # Concurrency
//
// A TextLayout has a single owner. Callers must serialize access to one
// instance; engines may be shared between layouts.
package layout
