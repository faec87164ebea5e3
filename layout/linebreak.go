package layout

import (
	"github.com/gogpu/paragraph"
	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

// bearingUnset marks a right bearing that has not been computed. Real
// bearings are clamped to <= 0.
const bearingUnset = metric.One

// lineBreaker holds the state of filling one line. Content moves from the
// pending run (tmp) and pending whitespace (space) into the line when it
// fits.
type lineBreaker struct {
	l    *TextLayout
	line *ScriptLine

	tmp   ScriptLine
	space ScriptLine

	item     int
	si       *text.ScriptItem
	glyphs   text.GlyphLayout
	clusters []int

	pos        int
	glyphCount int
	maxGlyphs  int
	manualWrap bool

	minw metric.Fixed

	softHyphenWidth          metric.Fixed
	committedSoftHyphenWidth metric.Fixed

	rightBearing        metric.Fixed
	minimumRightBearing metric.Fixed

	previousGlyph    text.GlyphID
	previousEngine   text.Engine
	hasPreviousGlyph bool

	whiteSpaceOrObject bool
}

// setItem points the breaker at item i, shaping it if needed.
func (b *lineBreaker) setItem(i int) {
	b.item = i
	b.l.shape(i)
	b.refresh()
}

// refresh reloads the glyph view of the current item. Shaping other items
// may grow the arena.
func (b *lineBreaker) refresh() {
	b.si = &b.l.items[b.item]
	b.glyphs = b.l.itemGlyphs(b.si)
	b.clusters = b.l.clusters(b.si)
}

// newWidth is the width of the line if the pending content were committed.
func (b *lineBreaker) newWidth() metric.Fixed {
	return b.line.TextWidth + b.tmp.TextWidth + b.space.TextWidth + b.softHyphenWidth - metric.Min(b.rightBearing, 0)
}

// checkFull reports whether the pending content does not fit. Otherwise it
// commits the pending content to the line.
func (b *lineBreaker) checkFull() bool {
	if b.line.Length > 0 && !b.manualWrap &&
		(b.newWidth() > b.line.Width || b.glyphCount > b.maxGlyphs) {
		return true
	}

	// Content forced onto an empty line keeps its soft hyphen hidden when
	// the hyphen would not fit.
	hyphen := b.softHyphenWidth
	if b.line.Length == 0 && hyphen > 0 && b.newWidth() > b.line.Width {
		hyphen = 0
	}

	old := b.line.TextWidth
	b.minw = metric.Max(b.minw, b.tmp.TextWidth)
	b.line.add(b.tmp)
	b.line.TextWidth += b.space.TextWidth
	b.line.Length += b.space.Length
	b.tmp.TextWidth, b.tmp.Length = 0, 0
	b.space.TextWidth, b.space.Length = 0, 0

	if old != b.line.TextWidth || b.softHyphenWidth > 0 {
		b.committedSoftHyphenWidth = hyphen
		b.softHyphenWidth = 0
	}
	return false
}

// breakLine is checkFull for the exits that end the line on overflow: a
// line last extended up to a soft hyphen shows the hyphen.
func (b *lineBreaker) breakLine(breakAny bool) bool {
	if !b.checkFull() {
		return false
	}
	b.hyphenate(breakAny)
	return true
}

func (b *lineBreaker) hyphenate(breakAny bool) {
	if !breakAny && b.committedSoftHyphenWidth > 0 && !b.line.Hyphenated {
		b.line.TextWidth += b.committedSoftHyphenWidth
		b.line.Hyphenated = true
	}
}

// addNextCluster moves the cluster at pos into acc.
func (b *lineBreaker) addNextCluster(acc *ScriptLine) {
	start := b.si.Position
	end := b.si.End()
	g := b.clusters[b.pos-start]
	for {
		b.pos++
		acc.Length++
		if b.pos >= end || b.clusters[b.pos-start] != g {
			break
		}
	}
	for {
		if !b.glyphs.Attributes[g].DontPrint {
			acc.TextWidth += b.glyphs.Advances[g]
		}
		g++
		if g >= b.glyphs.Len() || b.glyphs.Attributes[g].ClusterStart {
			break
		}
	}
	b.glyphCount++
}

// currentGlyph returns the first glyph of the cluster before pos, if that
// character belongs to the current item.
func (b *lineBreaker) currentGlyph() (text.GlyphID, text.Engine, bool) {
	if b.pos <= b.si.Position || b.pos > b.si.End() {
		return 0, nil, false
	}
	g := b.clusters[b.pos-1-b.si.Position]
	return b.glyphs.Glyphs[g], b.si.Engines.EngineAt(g), true
}

func (b *lineBreaker) saveCurrentGlyph() {
	b.previousGlyph, b.previousEngine, b.hasPreviousGlyph = b.currentGlyph()
}

func (b *lineBreaker) calculateRightBearing() {
	if g, e, ok := b.currentGlyph(); ok {
		b.rightBearing = metric.Min(e.RightBearing(g), 0)
	}
}

func (b *lineBreaker) calculatePreviousRightBearing() {
	if b.hasPreviousGlyph {
		b.rightBearing = metric.Min(b.previousEngine.RightBearing(b.previousGlyph), 0)
	}
}

// layoutLine fills line i starting at its From, honoring its Width and at
// most maxGlyphs glyphs.
func (l *TextLayout) layoutLine(i, maxGlyphs int, mode WrapMode) {
	line := &l.lines[i]
	line.Length, line.TrailingSpaces = 0, 0
	line.TextWidth, line.TextAdvance = 0, 0
	line.Ascent, line.Descent, line.Leading = 0, 0, 0
	line.Justified, line.Hyphenated = false, false

	if len(l.items) == 0 || line.From >= len(l.runes) {
		line.setDefaultHeight(l.engine.Metrics())
		return
	}

	minWidth, maxWidth := l.minWidth, l.maxWidth

	b := lineBreaker{
		l:                   l,
		line:                line,
		maxGlyphs:           maxGlyphs,
		manualWrap:          mode == NoWrap || mode == ManualWrap,
		rightBearing:        bearingUnset,
		minimumRightBearing: metric.Min(l.engine.MinRightBearing(), 0),
		whiteSpaceOrObject:  true,
	}
	if !b.fill(mode == WrapAnywhere) {
		b.checkFull()
	}
	b.finish()

	if mode == WrapAtWordBoundaryOrAnywhere {
		overflow := line.TextWidth > line.Width
		if maxGlyphs != unlimitedGlyphs {
			overflow = b.glyphCount > maxGlyphs
		}
		if overflow {
			paragraph.Logger().Debug("layout: line overflows, breaking anywhere", "line", i, "from", line.From)
			l.minWidth, l.maxWidth = minWidth, maxWidth
			l.layoutLine(i, maxGlyphs, WrapAnywhere)
			return
		}
	}
}

// fill walks the items from the start of the line. It returns true when it
// stopped at a line end, false when it ran out of text.
func (b *lineBreaker) fill(breakAny bool) bool {
	l := b.l
	line := b.line
	n := len(l.runes)

	b.setItem(max(text.FindItem(l.items, line.From), 0))
	b.pos = line.From

	for {
		b.rightBearing = bearingUnset
		b.refresh()
		si := b.si
		b.tmp.mergeMetrics(si.Ascent, si.Descent, si.Leading)
		end := si.End()

		switch {
		case si.Kind == text.KindTab:
			b.whiteSpaceOrObject = true
			if b.breakLine(breakAny) {
				return true
			}
			x := line.X + line.TextWidth + b.tmp.TextWidth + b.space.TextWidth
			w := l.tabWidth(b.item, x)
			b.refresh()
			b.si.Width = w
			b.space.TextWidth += w
			b.space.Length++
			b.pos = end
			if avg := l.engine.AverageCharWidth(); avg > 0 {
				b.glyphCount += w.Div(avg).RoundInt()
			}
			if b.breakLine(breakAny) {
				return true
			}

		case si.Kind == text.KindLineSeparator:
			b.whiteSpaceOrObject = true
			if line.Length == 0 && b.tmp.Length == 0 {
				line.setDefaultHeight(l.engine.Metrics())
			}
			b.clipSpace()
			if b.checkFull() {
				return true
			}
			if l.opts.Flags&ShowSeparators != 0 {
				b.addNextCluster(&b.tmp)
			} else {
				b.tmp.Length++
				b.pos = end
				b.calculatePreviousRightBearing()
			}
			line.add(b.tmp)
			b.tmp.TextWidth, b.tmp.Length = 0, 0
			return true

		case si.Kind == text.KindObject:
			b.whiteSpaceOrObject = true
			b.tmp.Length++
			b.tmp.TextWidth += si.Width
			b.pos = end
			b.glyphCount++
			if b.breakLine(breakAny) {
				return true
			}

		case l.attrs[b.pos].WhiteSpace:
			b.whiteSpaceOrObject = true
			for b.pos < end && l.attrs[b.pos].WhiteSpace {
				b.addNextCluster(&b.space)
			}
			switch {
			case b.manualWrap:
			case b.pos >= n:
				// Whitespace ending the paragraph has no later line to go to.
				if line.Length == 0 {
					b.clipSpace()
				}
			case text.KindOf(l.runes[b.pos]) == text.KindLineSeparator:
				// The separator clips it.
			case b.space.TextWidth > b.available():
				b.clipSpace()
				return true
			}

		default:
			b.whiteSpaceOrObject = false
			if b.plain(breakAny) {
				return true
			}
		}

		if b.pos >= end {
			if b.item+1 >= len(l.items) {
				return false
			}
			b.setItem(b.item + 1)
			b.pos = b.si.Position
		}
	}
}

// plain consumes text up to the next break opportunity. It returns true
// when the line is full.
func (b *lineBreaker) plain(breakAny bool) bool {
	l := b.l
	n := len(l.runes)
	end := b.si.End()

	breakable := false
	b.saveCurrentGlyph()
	for {
		b.addNextCluster(&b.tmp)
		if b.pos >= n || l.attrs[b.pos].WhiteSpace || l.attrs[b.pos].LineBreak || b.tmp.TextWidth >= metric.MaxFixed {
			breakable = true
			break
		}
		if breakAny && l.attrs[b.pos].GraphemeBoundary {
			break
		}
		if b.pos >= end {
			break
		}
	}
	b.minw = metric.Max(b.minw, b.tmp.TextWidth)

	// A soft hyphen may end its item when a script change, format boundary
	// or object follows it.
	if b.pos > b.si.Position && b.pos <= end && b.pos < n &&
		l.attrs[b.pos].LineBreak && l.runes[b.pos-1] == text.SoftHyphen {
		b.softHyphenWidth = b.glyphs.Advances[b.clusters[b.pos-1-b.si.Position]]
	}

	if breakable || breakAny {
		previous := b.rightBearing
		if b.newWidth()-b.minimumRightBearing > b.line.Width {
			b.calculateRightBearing()
		}
		if b.checkFull() {
			if previous <= 0 {
				b.rightBearing = previous
			} else {
				b.calculatePreviousRightBearing()
			}
			b.hyphenate(breakAny)
			return true
		}
	}
	b.saveCurrentGlyph()
	return false
}

// available is the width left for pending whitespace.
func (b *lineBreaker) available() metric.Fixed {
	return b.line.Width.Sub(b.line.TextWidth).Sub(b.tmp.TextWidth)
}

// clipSpace keeps pending whitespace from overflowing the line.
func (b *lineBreaker) clipSpace() {
	if b.manualWrap {
		return
	}
	if avail := b.available(); b.space.TextWidth > avail {
		b.space.TextWidth = metric.Max(avail, 0)
	}
}

// finish completes the line after the fill stopped.
func (b *lineBreaker) finish() {
	l := b.l
	line := b.line

	if b.rightBearing > 0 && !b.whiteSpaceOrObject {
		b.calculateRightBearing()
	}
	line.TextAdvance = line.TextWidth
	line.TextWidth -= metric.Min(b.rightBearing, 0)

	if line.Length == 0 {
		line.add(b.tmp)
	}
	if line.Length+b.space.Length == 0 && line.From < len(l.runes) {
		// Nothing fit; take one grapheme so the layout advances.
		next := line.From + 1
		for next < len(l.runes) && !l.attrs[next].GraphemeBoundary {
			next++
		}
		line.Length = next - line.From
	}

	if b.manualWrap {
		l.minWidth = metric.Max(l.minWidth, line.TextWidth)
		l.maxWidth = metric.Max(l.maxWidth, line.TextWidth)
	} else {
		l.minWidth = metric.Max(l.minWidth, b.minw)
		l.maxWidth = l.maxWidth.Add(line.TextWidth)
	}
	if line.TextWidth > 0 {
		l.maxWidth = l.maxWidth.Add(b.space.TextWidth)
	}
	if l.opts.Flags&IncludeTrailingSpaces != 0 {
		line.TextWidth += b.space.TextWidth
	}
	line.TrailingSpaces = b.space.Length
	line.Justified = false
}
