package layout

import (
	"fmt"
	"math"

	"github.com/gogpu/paragraph"
	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

// unlimitedGlyphs is the column limit of width-bounded lines.
const unlimitedGlyphs = math.MaxInt

// separatorGlyph is shaped in place of separators with ShowSeparators.
const separatorGlyph = '¶'

type layoutState uint8

const (
	stateIdle layoutState = iota
	stateLayingOut
)

// TextLayout lays out one paragraph. See the package documentation for the
// layout cycle.
type TextLayout struct {
	engine text.Engine
	opts   Options

	runes []rune
	attrs []text.CharAttributes

	items       []text.ScriptItem
	customItems bool

	// glyphs is the arena holding the shaped glyphs of all items.
	glyphs text.GlyphLayout
	// logClusters maps each character to the item-relative index of the
	// first glyph of its cluster.
	logClusters []int

	lines []ScriptLine
	state layoutState

	minWidth metric.Fixed
	maxWidth metric.Fixed
}

// New returns an empty layout shaping with engine.
func New(engine text.Engine, opts ...Option) (*TextLayout, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &TextLayout{engine: engine, opts: o}, nil
}

// Engine returns the engine the layout shapes with.
func (l *TextLayout) Engine() text.Engine { return l.engine }

// SetText replaces the text and discards items and lines.
func (l *TextLayout) SetText(s string) {
	l.runes = []rune(s)
	l.attrs = text.ComputeAttributes(l.runes)
	l.items = nil
	l.customItems = false
	l.logClusters = make([]int, len(l.runes))
	l.glyphs.Reset()
	l.lines = nil
	l.state = stateIdle
	l.minWidth, l.maxWidth = 0, 0
}

// Text returns the text of the layout.
func (l *TextLayout) Text() string { return string(l.runes) }

// Runes returns the text as laid out. The slice must not be modified.
func (l *TextLayout) Runes() []rune { return l.runes }

// Options returns the current options.
func (l *TextLayout) Options() Options { return l.opts }

// SetOptions replaces the options and discards the current lines.
// Items computed by the layout are recomputed; items set with SetItems are
// kept.
func (l *TextLayout) SetOptions(o Options) {
	l.opts = o
	l.invalidate()
}

// SetFormats replaces the format ranges and discards the current lines.
func (l *TextLayout) SetFormats(formats []FormatRange) {
	l.opts.Formats = append([]FormatRange(nil), formats...)
	l.invalidate()
}

// SetItems replaces the itemization of the text. The items must tile the
// text in order. Their glyphs are discarded; Format indexes are
// recomputed from the format ranges.
func (l *TextLayout) SetItems(items []text.ScriptItem) error {
	if err := text.ValidateItems(items, len(l.runes)); err != nil {
		return fmt.Errorf("layout: set items: %w", err)
	}
	l.items = append(l.items[:0:0], items...)
	l.customItems = true
	l.invalidate()
	return nil
}

// Items returns the script items of the text, itemizing it if needed.
// The slice must not be modified.
func (l *TextLayout) Items() []text.ScriptItem {
	l.itemize()
	return l.items
}

// invalidate drops lines and glyphs, and automatic items.
func (l *TextLayout) invalidate() {
	if !l.customItems {
		l.items = nil
	}
	l.releaseGlyphs()
	l.lines = nil
	l.state = stateIdle
	l.minWidth, l.maxWidth = 0, 0
}

// BeginLayout starts a new layout cycle, discarding previous lines.
func (l *TextLayout) BeginLayout() {
	if l.state == stateLayingOut {
		paragraph.Logger().Warn("layout: BeginLayout", "err", ErrAlreadyLayingOut)
		return
	}
	l.lines = l.lines[:0]
	l.minWidth, l.maxWidth = 0, 0
	l.releaseGlyphs()
	l.itemize()
	l.state = stateLayingOut
}

// CreateLine starts the next line and returns it. The previous line is
// closed with unlimited columns if it was never bounded. At the end of the
// text CreateLine returns an invalid line, except for one empty line after
// a trailing separator.
func (l *TextLayout) CreateLine() Line {
	if l.state != stateLayingOut {
		paragraph.Logger().Warn("layout: CreateLine", "err", ErrNotLayingOut)
		return Line{}
	}
	n := len(l.lines)
	if n > 0 && l.lines[n-1].open {
		Line{l, n - 1}.SetNumColumns(unlimitedGlyphs)
	}

	from := 0
	if n > 0 {
		from = l.lines[n-1].End()
	}
	if n > 0 && from >= len(l.runes) {
		last := len(l.runes) - 1
		if l.lines[n-1].Length == 0 || last < 0 || text.KindOf(l.runes[last]) != text.KindLineSeparator {
			return Line{}
		}
	}

	l.lines = append(l.lines, ScriptLine{From: from, Width: metric.MaxFixed, open: true})
	return Line{l, n}
}

// EndLayout closes the last line and ends the layout cycle. Shaped glyphs
// are released unless the layout caches them.
func (l *TextLayout) EndLayout() {
	if l.state != stateLayingOut {
		paragraph.Logger().Warn("layout: EndLayout", "err", ErrNotLayingOut)
		return
	}
	if n := len(l.lines); n > 0 && l.lines[n-1].open {
		Line{l, n - 1}.SetNumColumns(unlimitedGlyphs)
	}
	l.state = stateIdle
	if !l.opts.CacheGlyphs {
		l.releaseGlyphs()
	}
	paragraph.Logger().Debug("layout: laid out paragraph",
		"lines", len(l.lines), "runes", len(l.runes), "items", len(l.items))
}

// ClearLayout drops the lines.
func (l *TextLayout) ClearLayout() {
	l.lines = nil
}

// LineCount returns the number of lines.
func (l *TextLayout) LineCount() int { return len(l.lines) }

// LineAt returns line i, or an invalid line.
func (l *TextLayout) LineAt(i int) Line {
	if i < 0 || i >= len(l.lines) {
		paragraph.Logger().Warn("layout: LineAt", "line", i, "lines", len(l.lines), "err", ErrInvalidLine)
		return Line{}
	}
	return Line{l, i}
}

// LineForTextPosition returns the line containing pos. The end of the text
// belongs to the last line.
func (l *TextLayout) LineForTextPosition(pos int) Line {
	for i := range l.lines {
		sl := &l.lines[i]
		if sl.From <= pos && pos < sl.End() {
			return Line{l, i}
		}
	}
	if n := len(l.lines); n > 0 && pos == len(l.runes) {
		return Line{l, n - 1}
	}
	return Line{}
}

// BoundingRect returns the rectangle covering all lines.
func (l *TextLayout) BoundingRect() metric.Rect {
	if len(l.lines) == 0 {
		return metric.Rect{}
	}
	var xmin, xmax, ymin, ymax metric.Fixed
	for i := range l.lines {
		sl := &l.lines[i]
		if i == 0 {
			xmin, ymin = sl.X, sl.Y
		}
		if sl.X < xmin {
			xmin = sl.X
		}
		if sl.Y < ymin {
			ymin = sl.Y
		}
		w := sl.TextWidth
		if sl.Width < metric.MaxFixed {
			w = metric.Max(w, sl.Width)
		}
		xmax = metric.Max(xmax, sl.X.Add(w))
		ymax = metric.Max(ymax, sl.Y.Add(sl.Height()))
	}
	return metric.Rect{X: xmin, Y: ymin, Width: xmax.Sub(xmin), Height: ymax.Sub(ymin)}
}

// MinimumWidth returns the width of the widest unbreakable run seen by the
// last layout.
func (l *TextLayout) MinimumWidth() metric.Fixed { return l.minWidth }

// MaximumWidth returns the width the text would take on a single line, as
// accumulated by the last layout.
func (l *TextLayout) MaximumWidth() metric.Fixed { return l.maxWidth }

// GlyphRuns returns the glyph runs of all lines for [from, from+length).
// A negative from or length selects everything.
func (l *TextLayout) GlyphRuns(from, length int) []GlyphRun {
	var runs []GlyphRun
	for i := range l.lines {
		runs = append(runs, Line{l, i}.GlyphRuns(from, length)...)
	}
	return runs
}

// itemize computes the items if there are none and assigns format indexes.
func (l *TextLayout) itemize() {
	if l.items == nil && len(l.runes) > 0 {
		ranges := make([][2]int, len(l.opts.Formats))
		for i, f := range l.opts.Formats {
			ranges[i] = [2]int{f.Start, f.End()}
		}
		l.items = text.Itemize(l.runes, text.ItemizeOptions{
			Direction:  l.opts.Direction,
			Boundaries: text.ItemBoundaries(ranges),
		})
	}
	for i := range l.items {
		l.items[i].Format = l.formatAt(l.items[i].Position)
	}
}

// formatAt returns the index of the last format range covering pos, or -1.
func (l *TextLayout) formatAt(pos int) int {
	found := -1
	for i, f := range l.opts.Formats {
		if pos >= f.Start && pos < f.End() {
			found = i
		}
	}
	return found
}

// releaseGlyphs forgets all shaped glyphs. Justification lives in the
// arena, so lines have to be justified again.
func (l *TextLayout) releaseGlyphs() {
	l.glyphs.Reset()
	for i := range l.items {
		l.items[i].ResetShaping()
	}
	for i := range l.lines {
		l.lines[i].Justified = false
	}
}

// shape makes sure item i has glyphs in the arena.
func (l *TextLayout) shape(i int) {
	si := &l.items[i]
	if si.Shaped {
		return
	}

	var s text.Shaped
	switch si.Kind {
	case text.KindTab, text.KindObject:
		s = text.Placeholder(1, l.engine)
	case text.KindLineSeparator:
		if l.opts.Flags&ShowSeparators != 0 {
			s = l.shapeRunes([]rune{separatorGlyph}, 0, 1, si)
		} else {
			s = text.Placeholder(1, l.engine)
		}
	default:
		s = l.shapeRunes(l.runes, si.Position, si.End(), si)
	}

	si.GlyphStart = l.glyphs.Append(s.Glyphs)
	si.GlyphCount = s.Glyphs.Len()
	copy(l.logClusters[si.Position:si.End()], s.LogClusters)
	si.Engines = s.Engines
	if si.Engines.IsZero() {
		si.Engines = text.SingleEngine(l.engine)
	}
	si.Shaped = true

	m := l.engine.Metrics()
	si.Ascent, si.Descent, si.Leading = m.Ascent, m.Descent, m.Leading
	if si.Kind == text.KindObject {
		if l.opts.ObjectSizer != nil {
			si.Width, si.Ascent, si.Descent = l.opts.ObjectSizer(si.Position)
			si.Leading = 0
		} else {
			si.Width = 0
		}
	}
}

// shapeRunes shapes runes[start:end] for si. Failures are logged and
// replaced by zero-width glyphs.
func (l *TextLayout) shapeRunes(runes []rune, start, end int, si *text.ScriptItem) text.Shaped {
	s, err := l.engine.Shape(text.ShapeRequest{
		Text:      runes,
		Start:     start,
		End:       end,
		Direction: si.Direction(),
		Script:    si.Script,
	})
	if err == nil {
		err = s.Validate(end - start)
	}
	if err != nil {
		paragraph.Logger().Warn("layout: item could not be shaped",
			"pos", si.Position, "len", si.Length, "engine", l.engine.Name(), "err", err)
		return text.Placeholder(end-start, l.engine)
	}
	return s
}

// shapeRange shapes every item touching [from, end).
func (l *TextLayout) shapeRange(from, end int) {
	if end <= from {
		return
	}
	first := max(text.FindItem(l.items, from), 0)
	last := text.FindItem(l.items, end-1)
	for i := first; i <= last; i++ {
		l.shape(i)
	}
}

// itemGlyphs returns the arena view of a shaped item.
func (l *TextLayout) itemGlyphs(si *text.ScriptItem) text.GlyphLayout {
	return l.glyphs.Mid(si.GlyphStart, si.GlyphCount)
}

// clusters returns the log clusters of a shaped item.
func (l *TextLayout) clusters(si *text.ScriptItem) []int {
	return l.logClusters[si.Position:si.End()]
}
