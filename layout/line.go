package layout

import (
	"github.com/gogpu/paragraph"
	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

// ScriptLine is one laid out line. Lines tile the text: each starts where
// the previous one's trailing spaces end.
type ScriptLine struct {
	From           int // first character
	Length         int // characters excluding trailing whitespace
	TrailingSpaces int

	X, Y  metric.Fixed // set with Line.SetPosition
	Width metric.Fixed // the constraint, MaxFixed when unbounded

	// TextWidth is the natural width: committed glyph advances minus any
	// negative right bearing of the last glyph, plus the trailing spaces
	// when IncludeTrailingSpaces is set.
	TextWidth metric.Fixed
	// TextAdvance is TextWidth before the right bearing correction.
	TextAdvance metric.Fixed

	Ascent  metric.Fixed
	Descent metric.Fixed
	Leading metric.Fixed

	LeadingIncluded bool
	Justified       bool

	// Hyphenated is set when the line breaks after a soft hyphen. The
	// hyphen is then drawn and counted in TextWidth.
	Hyphenated bool

	open bool
}

// End returns the position after the trailing spaces.
func (sl *ScriptLine) End() int { return sl.From + sl.Length + sl.TrailingSpaces }

// Height returns Ascent + Descent, plus the leading if it is included.
func (sl *ScriptLine) Height() metric.Fixed {
	h := sl.Ascent.Add(sl.Descent)
	if sl.LeadingIncluded {
		h = h.Add(metric.Max(sl.Leading, 0))
	}
	return h
}

// Base returns the distance from the top of the line to the baseline.
func (sl *ScriptLine) Base() metric.Fixed {
	if sl.LeadingIncluded {
		return sl.Ascent.Add(metric.Max(sl.Leading, 0))
	}
	return sl.Ascent
}

// add appends o: widths and lengths sum, vertical metrics take the maximum.
func (sl *ScriptLine) add(o ScriptLine) {
	sl.mergeMetrics(o.Ascent, o.Descent, o.Leading)
	sl.TextWidth += o.TextWidth
	sl.Length += o.Length
}

func (sl *ScriptLine) mergeMetrics(ascent, descent, leading metric.Fixed) {
	sl.Leading = metric.Max(sl.Leading+sl.Ascent, leading+ascent) - metric.Max(sl.Ascent, ascent)
	sl.Ascent = metric.Max(sl.Ascent, ascent)
	sl.Descent = metric.Max(sl.Descent, descent)
}

// setDefaultHeight gives lines without glyphs the height of the font.
func (sl *ScriptLine) setDefaultHeight(m text.LineMetrics) {
	sl.mergeMetrics(m.Ascent, m.Descent, m.Leading)
}

// Line is a handle to one line of a TextLayout. The zero Line is invalid.
// Handles stay valid until the layout is restarted.
type Line struct {
	layout *TextLayout
	index  int
}

// IsValid reports whether the handle refers to an existing line.
func (ln Line) IsValid() bool {
	return ln.layout != nil && ln.index >= 0 && ln.index < len(ln.layout.lines)
}

// Index returns the line number, or -1 for an invalid line.
func (ln Line) Index() int {
	if !ln.IsValid() {
		return -1
	}
	return ln.index
}

// script returns the line data, logging when the handle is invalid.
func (ln Line) script(op string) *ScriptLine {
	if !ln.IsValid() {
		paragraph.Logger().Warn("layout: query on invalid line", "op", op, "err", ErrInvalidLine)
		return nil
	}
	return &ln.layout.lines[ln.index]
}

// From returns the first character of the line, or -1.
func (ln Line) From() int {
	sl := ln.script("From")
	if sl == nil {
		return -1
	}
	return sl.From
}

// Length returns the number of characters of the line, without its
// trailing spaces.
func (ln Line) Length() int {
	if sl := ln.script("Length"); sl != nil {
		return sl.Length
	}
	return 0
}

// TrailingSpaces returns the number of whitespace characters after the
// content of the line.
func (ln Line) TrailingSpaces() int {
	if sl := ln.script("TrailingSpaces"); sl != nil {
		return sl.TrailingSpaces
	}
	return 0
}

// Position returns the top-left corner of the line.
func (ln Line) Position() metric.Point {
	if sl := ln.script("Position"); sl != nil {
		return metric.Pt(sl.X, sl.Y)
	}
	return metric.Point{}
}

// SetPosition moves the line.
func (ln Line) SetPosition(p metric.Point) {
	if sl := ln.script("SetPosition"); sl != nil {
		sl.X, sl.Y = p.X, p.Y
	}
}

// X returns the left edge of the line.
func (ln Line) X() metric.Fixed { return ln.Position().X }

// Y returns the top of the line.
func (ln Line) Y() metric.Fixed { return ln.Position().Y }

// Width returns the width the line was laid out for. Unbounded lines
// report their natural width.
func (ln Line) Width() metric.Fixed {
	sl := ln.script("Width")
	if sl == nil {
		return 0
	}
	if sl.Width == metric.MaxFixed {
		return sl.TextWidth
	}
	return sl.Width
}

// Ascent returns the ascent of the line.
func (ln Line) Ascent() metric.Fixed {
	if sl := ln.script("Ascent"); sl != nil {
		return sl.Ascent
	}
	return 0
}

// Descent returns the descent of the line.
func (ln Line) Descent() metric.Fixed {
	if sl := ln.script("Descent"); sl != nil {
		return sl.Descent
	}
	return 0
}

// Leading returns the leading of the line.
func (ln Line) Leading() metric.Fixed {
	if sl := ln.script("Leading"); sl != nil {
		return sl.Leading
	}
	return 0
}

// Height returns the height of the line.
func (ln Line) Height() metric.Fixed {
	if sl := ln.script("Height"); sl != nil {
		return sl.Height()
	}
	return 0
}

// SetLeadingIncluded sets whether the leading counts in the line height.
func (ln Line) SetLeadingIncluded(included bool) {
	if sl := ln.script("SetLeadingIncluded"); sl != nil {
		sl.LeadingIncluded = included
	}
}

// NaturalTextWidth returns the width taken by the text of the line.
func (ln Line) NaturalTextWidth() metric.Fixed {
	if sl := ln.script("NaturalTextWidth"); sl != nil {
		return sl.TextWidth
	}
	return 0
}

// Rect returns the rectangle of the line.
func (ln Line) Rect() metric.Rect {
	sl := ln.script("Rect")
	if sl == nil {
		return metric.Rect{}
	}
	return metric.Rect{X: sl.X, Y: sl.Y, Width: ln.Width(), Height: sl.Height()}
}

// NaturalTextRect returns the rectangle covered by the text of the line,
// after alignment.
func (ln Line) NaturalTextRect() metric.Rect {
	sl := ln.script("NaturalTextRect")
	if sl == nil {
		return metric.Rect{}
	}
	x := sl.X.Add(ln.layout.alignLine(ln.index))
	return metric.Rect{X: x, Y: sl.Y, Width: sl.TextWidth, Height: sl.Height()}
}

// SetLineWidth bounds the line by a width and lays it out. Only the line
// created last can be bounded, and only during layout.
func (ln Line) SetLineWidth(width metric.Fixed) {
	sl := ln.bounding("SetLineWidth")
	if sl == nil {
		return
	}
	sl.Width = width
	sl.open = false
	if sl.Length > 0 && sl.TextWidth <= width && sl.From+sl.Length == len(ln.layout.runes) {
		// Already holds the rest of the text and still fits.
		return
	}
	ln.layout.layoutLine(ln.index, unlimitedGlyphs, ln.layout.opts.WrapMode)
}

// SetNumColumns lays the line out with at most columns glyphs and no
// width limit.
func (ln Line) SetNumColumns(columns int) {
	ln.SetNumColumnsWidth(columns, metric.MaxFixed)
}

// SetNumColumnsWidth lays the line out with at most columns glyphs and
// the given width.
func (ln Line) SetNumColumnsWidth(columns int, width metric.Fixed) {
	sl := ln.bounding("SetNumColumns")
	if sl == nil {
		return
	}
	sl.Width = width
	sl.open = false
	ln.layout.layoutLine(ln.index, max(columns, 0), ln.layout.opts.WrapMode)
}

func (ln Line) bounding(op string) *ScriptLine {
	sl := ln.script(op)
	if sl == nil {
		return nil
	}
	if ln.layout.state != stateLayingOut {
		paragraph.Logger().Warn("layout: line bounded outside layout", "op", op, "err", ErrNotLayingOut)
		return nil
	}
	if ln.index != len(ln.layout.lines)-1 {
		paragraph.Logger().Warn("layout: line bounded after the next one was created",
			"op", op, "line", ln.index, "err", ErrLineClosed)
		return nil
	}
	return sl
}
