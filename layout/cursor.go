package layout

import (
	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

// Edge selects the side of a character OffsetToX reports.
type Edge uint8

const (
	// Leading is the edge before the character in logical order.
	Leading Edge = iota
	// Trailing is the edge after the cluster holding the character.
	Trailing
)

// CursorMode controls how XToOffset resolves an x position.
type CursorMode uint8

const (
	// CursorBetweenCharacters returns the nearest cursor position.
	CursorBetweenCharacters CursorMode = iota
	// CursorOnCharacter returns the character under x.
	CursorOnCharacter
)

// lineOrigin is the x of the first visual item of line i.
func (l *TextLayout) lineOrigin(i int) metric.Fixed {
	sl := &l.lines[i]
	return sl.X + l.alignLine(i) - l.leadingSpaceWidth(i)
}

// clampX keeps x inside the line unless lines do not wrap.
func (l *TextLayout) clampX(sl *ScriptLine, x metric.Fixed) metric.Fixed {
	if l.opts.WrapMode == NoWrap {
		return x
	}
	if right := sl.X.Add(sl.Width); x > right {
		x = right
	}
	if x < sl.X {
		x = sl.X
	}
	return x
}

// OffsetToX returns the x position of the cursor at text position pos,
// together with the position actually used: pos is moved into the line and
// forward to a grapheme boundary. It returns (0, -1) for an invalid line.
func (ln Line) OffsetToX(pos int, edge Edge) (metric.Fixed, int) {
	sl := ln.script("OffsetToX")
	if sl == nil {
		return 0, -1
	}
	l := ln.layout
	x := l.lineOrigin(ln.index)
	end := sl.End()
	if len(l.items) == 0 || end == sl.From {
		return l.clampX(sl, x), sl.From
	}

	pos = min(max(pos, sl.From), end)
	for pos < end && !l.attrs[pos].GraphemeBoundary {
		pos++
	}
	target := text.FindItem(l.items, pos)
	if pos == end {
		target = text.FindItem(l.items, pos-1)
	}

	for _, sp := range l.lineSpans(ln.index, end) {
		if sp.item == target {
			x += l.offsetInSpan(sp, pos, edge)
			break
		}
		x += sp.width
	}
	return l.clampX(sl, x), pos
}

// offsetInSpan returns the distance from the left edge of sp to the cursor
// at pos.
func (l *TextLayout) offsetInSpan(sp lineSpan, pos int, edge Edge) metric.Fixed {
	si := sp.si
	if si.Kind == text.KindTab || si.Kind == text.KindObject {
		if (si.IsRTL() && pos == si.Position) || (!si.IsRTL() && pos == si.End()) {
			return si.Width
		}
		return 0
	}

	glyphPos := sp.end
	if pos < sp.to {
		glyphPos = max(l.clusters(si)[pos-si.Position], sp.start)
	}
	if edge == Trailing && pos < sp.to {
		// The trailing edge is the leading edge of the next cluster.
		glyphPos++
		for glyphPos < sp.end && !sp.glyphs.Attributes[glyphPos].ClusterStart {
			glyphPos++
		}
	}

	lig := l.offsetInLigature(sp, pos, glyphPos)
	if si.IsRTL() {
		return sp.glyphs.Width(glyphPos, sp.end) - lig
	}
	return sp.glyphs.Width(sp.start, glyphPos) + lig
}

// offsetInLigature interpolates the position of pos inside the cluster
// starting at glyphPos, in proportion to the graphemes before it.
func (l *TextLayout) offsetInLigature(sp lineSpan, pos, glyphPos int) metric.Fixed {
	si := sp.si
	c := l.clusters(si)
	rel := pos - si.Position
	lo, hi := sp.from-si.Position, sp.to-si.Position
	if rel <= lo || rel >= hi || c[rel-1] != glyphPos {
		return 0
	}
	first := firstChar(c, lo, hi, glyphPos)
	units, before := 0, 0
	for j := first; j < hi && c[j] == glyphPos; j++ {
		if l.attrs[si.Position+j].GraphemeBoundary {
			units++
			if j < rel {
				before++
			}
		}
	}
	if units <= 1 {
		return 0
	}
	w := sp.glyphs.Width(glyphPos, clusterEnd(sp.glyphs, glyphPos))
	return w.MulDiv(before, units)
}

// XToOffset returns the text position for x. In CursorBetweenCharacters
// mode it is the nearest cursor position; in CursorOnCharacter mode the
// character under x. Positions right of the text map to the end of the
// line, or to the character before it when the line is not the last one.
// It returns -1 for an invalid line.
func (ln Line) XToOffset(x metric.Fixed, mode CursorMode) int {
	sl := ln.script("XToOffset")
	if sl == nil {
		return -1
	}
	l := ln.layout
	if sl.Length+sl.TrailingSpaces == 0 || len(l.items) == 0 {
		return sl.From
	}
	end := sl.End()
	x -= l.lineOrigin(ln.index)
	spans := l.lineSpans(ln.index, end)
	if len(spans) == 0 {
		return sl.From
	}

	if x <= 0 {
		sp := spans[0]
		if sp.si.IsRTL() {
			return sp.to
		}
		return sp.from
	}

	var total metric.Fixed
	for _, sp := range spans {
		total += sp.width
	}
	if x < total {
		var left metric.Fixed
		for _, sp := range spans {
			if left+sp.width < x {
				left += sp.width
				continue
			}
			return l.positionInSpan(sp, x, left, mode)
		}
	}

	sp := spans[len(spans)-1]
	pos := sp.to
	if sp.si.IsRTL() {
		pos = sp.from
	}
	limit := end
	if ln.index < len(l.lines)-1 {
		limit--
	}
	return min(max(pos, sl.From), limit)
}

// positionInSpan resolves x inside sp, whose left edge is at left.
func (l *TextLayout) positionInSpan(sp lineSpan, x, left metric.Fixed, mode CursorMode) int {
	si := sp.si
	if si.Kind == text.KindTab || si.Kind == text.KindObject {
		if mode == CursorOnCharacter {
			return si.Position
		}
		leftHalf := x-left < sp.width/2
		if si.IsRTL() != leftHalf {
			return si.Position
		}
		return si.Position + 1
	}

	g := sp.glyphs
	rtl := si.IsRTL()
	p := left
	if rtl {
		p = left + sp.width
	}
	step := func(i int) {
		if rtl {
			p -= g.EffectiveAdvance(i)
		} else {
			p += g.EffectiveAdvance(i)
		}
	}

	glyphPos, edge := sp.start, p
	if mode == CursorOnCharacter {
		for i := sp.start; i < sp.end; i++ {
			if g.Attributes[i].ClusterStart {
				if (rtl && p < x) || (!rtl && p > x) {
					break
				}
				glyphPos, edge = i, p
			}
			step(i)
		}
		return l.positionInLigature(sp, x, edge, glyphPos, true)
	}

	dist := metric.MaxFixed
	for i := sp.start; i < sp.end; i++ {
		if d := (x - p).Abs(); g.Attributes[i].ClusterStart && d < dist {
			glyphPos, edge, dist = i, p, d
		}
		step(i)
	}
	if (x - p).Abs() < dist {
		return l.positionInLigature(sp, x, p, -1, false)
	}
	return l.positionInLigature(sp, x, edge, glyphPos, false)
}

// positionInLigature returns the cursor position for x near the cluster
// boundary at edge, which starts the cluster at glyphPos. glyphPos -1 is
// the far edge of the span. Inside clusters of several graphemes the
// position is interpolated.
func (l *TextLayout) positionInLigature(sp lineSpan, x, edge metric.Fixed, glyphPos int, onChar bool) int {
	si := sp.si
	c := l.clusters(si)
	lo, hi := sp.from-si.Position, sp.to-si.Position
	rtl := si.IsRTL()
	if hi <= lo {
		return sp.from
	}

	var cluster int
	var left metric.Fixed
	boundary := sp.to
	if glyphPos < 0 {
		cluster = c[hi-1]
		left = edge
		if !rtl {
			left = edge - clusterWidth(sp.glyphs, cluster)
		}
	} else {
		start := firstChar(c, lo, hi, glyphPos)
		boundary = si.Position + start
		inside := onChar || (rtl && x < edge) || (!rtl && x > edge)
		switch {
		case inside:
			cluster = glyphPos
			left = edge
			if rtl {
				left = edge - clusterWidth(sp.glyphs, cluster)
			}
		case start <= lo:
			return boundary
		default:
			cluster = c[start-1]
			left = edge
			if !rtl {
				left = edge - clusterWidth(sp.glyphs, cluster)
			}
		}
	}

	first := firstChar(c, lo, hi, cluster)
	var units []int
	after := first
	for ; after < hi && c[after] == cluster; after++ {
		if l.attrs[si.Position+after].GraphemeBoundary {
			units = append(units, after)
		}
	}
	k := len(units)
	w := clusterWidth(sp.glyphs, cluster)
	if k <= 1 || w <= 0 {
		return boundary
	}

	off := x - left
	if rtl {
		off = left + w - x
	}
	off = metric.Min(metric.Max(off, 0), w)
	var j int
	if onChar {
		j = min(int(int64(off)*int64(k)/int64(w)), k-1)
	} else {
		j = int((2*int64(off)*int64(k) + int64(w)) / (2 * int64(w)))
	}
	if j >= k {
		return si.Position + after
	}
	return si.Position + units[j]
}

// firstChar returns the first item-relative character in [lo, hi) that
// maps to glyph g, or hi.
func firstChar(c []int, lo, hi, g int) int {
	for i := lo; i < hi; i++ {
		if c[i] == g {
			return i
		}
	}
	return hi
}

func clusterWidth(g text.GlyphLayout, start int) metric.Fixed {
	return g.Width(start, clusterEnd(g, start))
}
