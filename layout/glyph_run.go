package layout

import (
	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

// GlyphRunFlags describe how a glyph run is drawn.
type GlyphRunFlags uint8

const (
	// RunRightToLeft marks glyphs of a right-to-left item. Glyphs and
	// positions are still listed left to right.
	RunRightToLeft GlyphRunFlags = 1 << iota
	// RunUnderline draws a line under the run.
	RunUnderline
	// RunOverline draws a line over the run.
	RunOverline
	// RunStrikeOut draws a line through the run.
	RunStrikeOut
	// RunSplitLigature marks a run whose range cuts a cluster. The whole
	// cluster is included.
	RunSplitLigature
)

// GlyphRun is a batch of positioned glyphs drawn with one engine.
// Positions are pen positions on the baseline.
type GlyphRun struct {
	Engine    text.Engine
	Glyphs    []text.GlyphID
	Positions []metric.Point
	Flags     GlyphRunFlags
	Bounds    metric.Rect
}

type runKey struct {
	engine text.Engine
	flags  GlyphRunFlags
}

// runBuilder merges runs sharing engine and flags, keeping the order in
// which keys first appear.
//
// runBuilder is NOT safe for concurrent use.
type runBuilder struct {
	runs  []GlyphRun
	index map[runKey]int
}

func (b *runBuilder) add(r GlyphRun) {
	if len(r.Glyphs) == 0 {
		return
	}
	if b.index == nil {
		b.index = make(map[runKey]int)
	}
	key := runKey{r.Engine, r.Flags}
	i, ok := b.index[key]
	if !ok {
		b.index[key] = len(b.runs)
		b.runs = append(b.runs, r)
		return
	}
	dst := &b.runs[i]
	dst.Glyphs = append(dst.Glyphs, r.Glyphs...)
	dst.Positions = append(dst.Positions, r.Positions...)
	dst.Bounds = dst.Bounds.Union(r.Bounds)
}

// GlyphRuns returns the glyph runs of the line for the characters
// [from, from+length). A negative from or length selects the whole line.
// Trailing spaces, tabs and objects produce no glyphs.
func (ln Line) GlyphRuns(from, length int) []GlyphRun {
	sl := ln.script("GlyphRuns")
	if sl == nil || sl.Length == 0 {
		return nil
	}
	l := ln.layout
	all := from < 0 || length < 0
	lineEnd := sl.From + sl.Length

	x := sl.X.Add(l.alignLine(ln.index))
	y := sl.Y.Add(sl.Base())

	var b runBuilder
	for _, sp := range l.lineSpans(ln.index, lineEnd) {
		si := sp.si
		left := x
		x += sp.width
		if si.Kind == text.KindTab || si.Kind == text.KindObject {
			continue
		}

		start, end := sp.start, sp.end
		var flags GlyphRunFlags
		if !all {
			rf := max(from, sp.from)
			rt := min(from+length, sp.to)
			if rf >= rt {
				continue
			}
			start, end = l.glyphRange(si, rf, rt)
			c := l.clusters(si)
			cutStart := rf > si.Position && c[rf-si.Position-1] == c[rf-si.Position]
			cutEnd := rt < si.End() && c[rt-si.Position] == c[rt-si.Position-1]
			if cutStart || cutEnd {
				flags |= RunSplitLigature
			}
		}
		if end <= start {
			continue
		}
		if si.IsRTL() {
			flags |= RunRightToLeft
		}
		if si.Format >= 0 && si.Format < len(l.opts.Formats) {
			o := l.opts.Formats[si.Format].Overlay
			if o.Underline {
				flags |= RunUnderline
			}
			if o.Overline {
				flags |= RunOverline
			}
			if o.StrikeOut {
				flags |= RunStrikeOut
			}
		}

		// Left edge of the selected glyphs.
		if si.IsRTL() {
			left += sp.glyphs.Width(end, sp.end)
		} else {
			left += sp.glyphs.Width(sp.start, start)
		}

		for _, es := range si.Engines.Spans(start, end) {
			var spanLeft metric.Fixed
			if si.IsRTL() {
				spanLeft = left + sp.glyphs.Width(es.End, end)
			} else {
				spanLeft = left + sp.glyphs.Width(start, es.Start)
			}
			b.add(spanRun(sp.glyphs, es, spanLeft, y, flags, sl))
		}
	}
	return b.runs
}

// spanRun positions the glyphs of one engine span from its left edge.
func spanRun(g text.GlyphLayout, es text.EngineSpan, left, y metric.Fixed, flags GlyphRunFlags, sl *ScriptLine) GlyphRun {
	r := GlyphRun{Engine: es.Engine, Flags: flags}
	pen := left
	emit := func(i int) {
		if !g.Attributes[i].DontPrint {
			r.Glyphs = append(r.Glyphs, g.Glyphs[i])
			r.Positions = append(r.Positions, metric.Pt(pen, y))
		}
		pen += g.EffectiveAdvance(i)
	}
	if flags&RunRightToLeft != 0 {
		for i := es.End - 1; i >= es.Start; i-- {
			emit(i)
		}
	} else {
		for i := es.Start; i < es.End; i++ {
			emit(i)
		}
	}
	r.Bounds = metric.Rect{X: left, Y: sl.Y, Width: pen - left, Height: sl.Height()}
	return r
}
