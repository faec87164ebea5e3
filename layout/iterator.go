package layout

import (
	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

// clusterEnd returns the index after the last glyph of the cluster
// starting at glyph i.
func clusterEnd(g text.GlyphLayout, i int) int {
	i++
	for i < g.Len() && !g.Attributes[i].ClusterStart {
		i++
	}
	return i
}

// glyphRange returns the item-relative glyphs [start, end) of the clusters
// touched by the characters [from, to) of a shaped item.
func (l *TextLayout) glyphRange(si *text.ScriptItem, from, to int) (int, int) {
	c := l.clusters(si)
	if to <= from {
		if to >= si.End() {
			return si.GlyphCount, si.GlyphCount
		}
		g := c[to-si.Position]
		return g, g
	}
	return c[from-si.Position], clusterEnd(l.itemGlyphs(si), c[to-1-si.Position])
}

// visualItems returns the indexes of the items touching [from, end) in
// visual order.
func (l *TextLayout) visualItems(from, end int) []int {
	if end <= from || len(l.items) == 0 {
		return nil
	}
	first := max(text.FindItem(l.items, from), 0)
	last := text.FindItem(l.items, end-1)
	if last < first {
		return nil
	}
	levels := make([]uint8, last-first+1)
	for i := range levels {
		levels[i] = l.items[first+i].BidiLevel
	}
	order := BidiReorder(levels)
	for i := range order {
		order[i] += first
	}
	return order
}

// lineSpan describes the part of an item on a line.
type lineSpan struct {
	item       int
	si         *text.ScriptItem
	from, to   int // characters, absolute
	start, end int // glyphs, item-relative
	glyphs     text.GlyphLayout
	width      metric.Fixed
}

// lineSpans returns the items of line i in visual order, clipped to
// [line.From, end). Items are shaped on demand. A soft hyphen ending a
// hyphenated line is made visible in the returned glyph views.
func (l *TextLayout) lineSpans(i, end int) []lineSpan {
	sl := &l.lines[i]
	l.shapeRange(sl.From, end)
	order := l.visualItems(sl.From, end)
	spans := make([]lineSpan, 0, len(order))
	hyphen := sl.Length + sl.From - 1
	for _, it := range order {
		si := &l.items[it]
		sp := lineSpan{
			item: it,
			si:   si,
			from: max(sl.From, si.Position),
			to:   min(end, si.End()),
		}
		sp.start, sp.end = l.glyphRange(si, sp.from, sp.to)
		sp.glyphs = l.itemGlyphs(si)
		if sl.Hyphenated && hyphen >= sp.from && hyphen < sp.to && l.runes[hyphen] == text.SoftHyphen {
			sp.glyphs = sp.glyphs.WithAttributes()
			g := l.clusters(si)[hyphen-si.Position]
			sp.glyphs.Attributes[g].DontPrint = false
		}
		if si.Kind == text.KindTab || si.Kind == text.KindObject {
			sp.width = si.Width
		} else {
			sp.width = sp.glyphs.Width(sp.start, sp.end)
		}
		spans = append(spans, sp)
	}
	return spans
}
