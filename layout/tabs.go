package layout

import (
	"slices"

	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

// tabWidth returns the width of the tab item at index item when it starts
// at x.
func (l *TextLayout) tabWidth(item int, x metric.Fixed) metric.Fixed {
	si := l.items[item]
	for _, stop := range l.tabStops() {
		if stop.Position <= x {
			continue
		}

		sectionEnd := len(l.runes)
		switch stop.Type {
		case TabRight, TabCenter:
			for i := item + 1; i < len(l.items); i++ {
				if k := l.items[i].Kind; k == text.KindTab || k == text.KindLineSeparator {
					sectionEnd = l.items[i].Position
					break
				}
			}
		case TabDelimiter:
			sectionEnd = si.Position
			if i := slices.Index(l.runes[si.End():], stop.Delimiter); i >= 0 {
				sectionEnd = si.End() + i + 1
			}
		case TabLeft:
			return stop.Position - x
		}
		if sectionEnd <= si.End() {
			return stop.Position - x
		}

		length := l.sectionWidth(item+1, si.End(), sectionEnd)
		if stop.Type == TabDelimiter {
			length -= l.charWidth(sectionEnd-1) / 2
		}
		if stop.Type == TabCenter {
			length /= 2
		}
		start := stop.Position - length
		if start < x {
			// Not enough room before the stop.
			return 0
		}
		return start - x
	}

	distance := l.opts.tabStopDistance()
	next := distance.MulInt(x.Div(distance).Truncate() + 1)
	return next - x
}

// tabStops returns the explicit stops, with left and right swapped in
// right-to-left paragraphs.
func (l *TextLayout) tabStops() []TabStop {
	if l.opts.Direction != text.DirectionRTL {
		return l.opts.Tabs
	}
	stops := slices.Clone(l.opts.Tabs)
	for i := range stops {
		switch stops[i].Type {
		case TabLeft:
			stops[i].Type = TabRight
		case TabRight:
			stops[i].Type = TabLeft
		}
	}
	return stops
}

// sectionWidth sums the widths of the characters [from, to), starting the
// search at item first.
func (l *TextLayout) sectionWidth(first, from, to int) metric.Fixed {
	var w metric.Fixed
	for i := first; i < len(l.items); i++ {
		si := &l.items[i]
		if si.Position >= to {
			break
		}
		if si.End() <= from {
			continue
		}
		l.shape(i)
		si = &l.items[i]
		if si.Kind == text.KindObject || si.Kind == text.KindTab {
			w += si.Width
			continue
		}
		gs, ge := l.glyphRange(si, max(from, si.Position), min(to, si.End()))
		w += l.itemGlyphs(si).Width(gs, ge)
	}
	return w
}

// charWidth returns the width of the cluster holding the character at pos.
func (l *TextLayout) charWidth(pos int) metric.Fixed {
	i := text.FindItem(l.items, pos)
	if i < 0 {
		return 0
	}
	l.shape(i)
	si := &l.items[i]
	gs, ge := l.glyphRange(si, pos, pos+1)
	return l.itemGlyphs(si).Width(gs, ge)
}
