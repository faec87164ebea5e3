package layout

import (
	"unicode"

	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

// justification is the kind of a justification point. Higher kinds are
// stretched first.
type justification uint8

const (
	justifyNone justification = iota
	justifyCharacter
	justifySpace
)

type justificationPoint struct {
	kind  justification
	glyph int // absolute arena index
}

// alignLine returns the offset of the text of line i from the line's left
// edge. Justified lines are stretched instead and return 0.
func (l *TextLayout) alignLine(i int) metric.Fixed {
	sl := &l.lines[i]
	l.justify(i)
	if sl.Justified || sl.Width == metric.MaxFixed {
		return 0
	}
	align := l.opts.Alignment.resolve(l.opts.Direction)
	if align == AlignJustify && l.opts.Direction == text.DirectionRTL {
		align = AlignRight
	}
	switch align {
	case AlignRight:
		return sl.Width - sl.TextAdvance
	case AlignCenter:
		return (sl.Width - sl.TextAdvance) / 2
	}
	return 0
}

// leadingSpaceWidth is the width of trailing spaces that a right-to-left
// line displays before its text.
func (l *TextLayout) leadingSpaceWidth(i int) metric.Fixed {
	sl := &l.lines[i]
	if sl.TrailingSpaces == 0 || l.opts.Flags&IncludeTrailingSpaces != 0 || l.opts.Direction != text.DirectionRTL {
		return 0
	}
	from := sl.From + sl.Length
	return l.rangeWidth(from, from+sl.TrailingSpaces)
}

// rangeWidth sums the advances of the characters [from, to).
func (l *TextLayout) rangeWidth(from, to int) metric.Fixed {
	if to <= from {
		return 0
	}
	l.shapeRange(from, to)
	return l.sectionWidth(max(text.FindItem(l.items, from), 0), from, to)
}

// justify stretches the whitespace of line i to fill its width when the
// layout is justified.
func (l *TextLayout) justify(i int) {
	sl := &l.lines[i]
	if sl.Justified || l.opts.Alignment != AlignJustify || sl.Width == metric.MaxFixed {
		return
	}
	if l.opts.Flags&ForceJustify == 0 {
		end := sl.End()
		if end >= len(l.runes) {
			return
		}
		if end > 0 && text.KindOf(l.runes[end-1]) == text.KindLineSeparator {
			return
		}
	}

	length := sl.Length
	for length > 0 && l.attrs[sl.From+length-1].WhiteSpace {
		length--
	}
	// Nothing can be added after the last character.
	length--
	if length <= 0 {
		return
	}
	end := sl.From + length

	l.shapeRange(sl.From, end)
	first := max(text.FindItem(l.items, sl.From), 0)
	last := text.FindItem(l.items, end-1)

	var points []justificationPoint
	top := justifyNone
	for it := first; it <= last; it++ {
		si := &l.items[it]
		if si.Kind != text.KindPlain {
			continue
		}
		glyphs := l.itemGlyphs(si)
		clusters := l.clusters(si)
		gs, ge := l.glyphRange(si, max(sl.From, si.Position), min(end, si.End()))
		for g := gs; g < ge; g++ {
			glyphs.Justifications[g] = 0
		}

		for c := max(sl.From, si.Position); c < min(end, si.End()); c++ {
			rel := c - si.Position
			if rel > 0 && clusters[rel-1] == clusters[rel] {
				continue
			}
			g := clusterEnd(glyphs, clusters[rel]) - 1
			if glyphs.Advances[g] <= 0 || glyphs.Attributes[g].DontPrint {
				continue
			}
			kind := justificationOf(l.runes[c])
			if kind == justifyNone {
				continue
			}
			points = append(points, justificationPoint{kind: kind, glyph: si.GlyphStart + g})
			top = max(top, kind)
		}
	}

	need := sl.Width - sl.TextWidth - l.leadingSpaceWidth(i)
	if need < 0 {
		sl.Justified = true
		return
	}

	if top != justifyNone {
		n := 0
		for _, p := range points {
			if p.kind == top {
				n++
			}
		}
		for _, p := range points {
			if p.kind != top {
				continue
			}
			add := need.MulDiv(1, n)
			l.glyphs.Justifications[p.glyph] = add
			need -= add
			n--
		}
	}
	sl.Justified = true
}

func justificationOf(r rune) justification {
	switch {
	case text.IsBreakableSpace(r) || r == text.NoBreakSpace:
		return justifySpace
	case unicode.IsLetter(r) || unicode.IsNumber(r):
		return justifyCharacter
	}
	return justifyNone
}
