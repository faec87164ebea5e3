package fixture

import (
	"fmt"
	"unicode/utf8"

	"github.com/gogpu/paragraph"
	"github.com/gogpu/paragraph/internal/parallel"
	"github.com/gogpu/paragraph/layout"
	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

type objectSize struct {
	width, ascent, descent metric.Fixed
}

// Options converts the statements of the paragraph into layout options.
func (p *Paragraph) Options() ([]layout.Option, error) {
	var (
		opts    []layout.Option
		flags   layout.Flags
		tabs    []layout.TabStop
		formats []layout.FormatRange
		objects map[int]objectSize
	)
	n := len([]rune(string(p.Text)))
	for _, st := range p.Statements {
		switch {
		case st.Wrap != nil:
			m, ok := layout.ParseWrapMode(*st.Wrap)
			if !ok {
				return nil, fmt.Errorf("%s: wrap %q: %w", st.Pos, *st.Wrap, ErrInvalidValue)
			}
			opts = append(opts, layout.WithWrapMode(m))
		case st.Align != nil:
			a, ok := layout.ParseAlignment(*st.Align)
			if !ok {
				return nil, fmt.Errorf("%s: align %q: %w", st.Pos, *st.Align, ErrInvalidValue)
			}
			opts = append(opts, layout.WithAlignment(a))
		case st.Direction != nil:
			opts = append(opts, layout.WithDirection(p.direction()))
		case len(st.Flags) > 0:
			for _, f := range st.Flags {
				switch f {
				case "trailing-spaces":
					flags |= layout.IncludeTrailingSpaces
				case "show-separators":
					flags |= layout.ShowSeparators
				case "force-justify":
					flags |= layout.ForceJustify
				}
			}
		case st.Cache:
			opts = append(opts, layout.WithCache(true))
		case st.TabStop != nil:
			opts = append(opts, layout.WithTabStopDistance(metric.FromFloat(*st.TabStop)))
		case st.Tab != nil:
			tab, err := st.Tab.stop()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", st.Pos, err)
			}
			tabs = append(tabs, tab)
		case st.Object != nil:
			o := st.Object
			if o.At < 0 || o.At >= n {
				return nil, fmt.Errorf("%s: object at %d: %w", st.Pos, o.At, ErrOutOfRange)
			}
			if []rune(string(p.Text))[o.At] != text.ObjectReplacement {
				return nil, fmt.Errorf("%s: object at %d: %w", st.Pos, o.At, ErrNotObject)
			}
			if objects == nil {
				objects = make(map[int]objectSize)
			}
			objects[o.At] = objectSize{
				width:   metric.FromFloat(o.Width),
				ascent:  metric.FromFloat(o.Ascent),
				descent: metric.FromFloat(o.Descent),
			}
		case st.Format != nil:
			f := st.Format
			if f.Start < 0 || f.Length < 0 || f.Start+f.Length > n {
				return nil, fmt.Errorf("%s: format %d+%d: %w", st.Pos, f.Start, f.Length, ErrOutOfRange)
			}
			formats = append(formats, layout.FormatRange{Start: f.Start, Length: f.Length, Overlay: f.overlay()})
		}
	}

	if flags != 0 {
		opts = append(opts, layout.WithFlags(flags))
	}
	if len(tabs) > 0 {
		opts = append(opts, layout.WithTabs(tabs...))
	}
	if len(formats) > 0 {
		opts = append(opts, layout.WithFormats(formats...))
	}
	if objects != nil {
		opts = append(opts, layout.WithObjectSizer(func(pos int) (width, ascent, descent metric.Fixed) {
			o := objects[pos]
			return o.width, o.ascent, o.descent
		}))
	}
	return opts, nil
}

func (t *TabStmt) stop() (layout.TabStop, error) {
	stop := layout.TabStop{Position: metric.FromFloat(t.Position)}
	switch t.Type {
	case "", "left":
		stop.Type = layout.TabLeft
	case "right":
		stop.Type = layout.TabRight
	case "center":
		stop.Type = layout.TabCenter
	case "delimiter":
		stop.Type = layout.TabDelimiter
		if t.Delimiter == nil || utf8.RuneCountInString(string(*t.Delimiter)) != 1 {
			return stop, fmt.Errorf("tab %v: delimiter must be one character: %w", t.Position, ErrInvalidValue)
		}
		stop.Delimiter, _ = utf8.DecodeRuneInString(string(*t.Delimiter))
	}
	return stop, nil
}

func (f *FormatStmt) overlay() layout.StyleOverlay {
	var o layout.StyleOverlay
	for _, s := range f.Styles {
		switch s {
		case "underline":
			o.Underline = true
		case "overline":
			o.Overline = true
		case "strikeout":
			o.StrikeOut = true
		}
	}
	return o
}

func (p *Paragraph) direction() text.Direction {
	dir := text.DirectionLTR
	for _, st := range p.Statements {
		if st.Direction != nil && *st.Direction == "rtl" {
			dir = text.DirectionRTL
		} else if st.Direction != nil {
			dir = text.DirectionLTR
		}
	}
	return dir
}

func (p *Paragraph) widths() []metric.Fixed {
	var out []metric.Fixed
	for _, st := range p.Statements {
		for _, w := range st.Width {
			out = append(out, metric.FromFloat(w))
		}
	}
	return out
}

func (p *Paragraph) columns() int {
	c := -1
	for _, st := range p.Statements {
		if st.Columns != nil {
			c = *st.Columns
		}
	}
	return c
}

// items itemizes the text with the level overrides applied, or returns nil
// when the paragraph has none.
func (p *Paragraph) items(formats []layout.FormatRange) ([]text.ScriptItem, error) {
	runes := []rune(string(p.Text))
	var levels []uint8
	for _, st := range p.Statements {
		lv := st.Level
		if lv == nil {
			continue
		}
		if lv.Start < 0 || lv.Length < 0 || lv.Start+lv.Length > len(runes) {
			return nil, fmt.Errorf("%s: level %d+%d: %w", st.Pos, lv.Start, lv.Length, ErrOutOfRange)
		}
		if lv.Level < 0 || lv.Level > 125 {
			return nil, fmt.Errorf("%s: level %d: %w", st.Pos, lv.Level, ErrInvalidValue)
		}
		if levels == nil {
			levels = text.BidiLevels(runes, p.direction())
		}
		for i := lv.Start; i < lv.Start+lv.Length; i++ {
			levels[i] = uint8(lv.Level)
		}
	}
	if levels == nil {
		return nil, nil
	}
	ranges := make([][2]int, len(formats))
	for i, f := range formats {
		ranges[i] = [2]int{f.Start, f.End()}
	}
	return text.Itemize(runes, text.ItemizeOptions{
		Direction:  p.direction(),
		Levels:     levels,
		Boundaries: text.ItemBoundaries(ranges),
	}), nil
}

// Build lays the paragraph out with engine. Lines are bounded by the
// widths of the paragraph, the last width repeating, and stacked from the
// top.
func (p *Paragraph) Build(engine text.Engine) (*layout.TextLayout, error) {
	opts, err := p.Options()
	if err != nil {
		return nil, err
	}
	l, err := layout.New(engine, opts...)
	if err != nil {
		return nil, err
	}
	l.SetText(string(p.Text))
	items, err := p.items(l.Options().Formats)
	if err != nil {
		return nil, err
	}
	if items != nil {
		if err := l.SetItems(items); err != nil {
			return nil, fmt.Errorf("fixture: %w", err)
		}
	}

	widths := p.widths()
	columns := p.columns()
	l.BeginLayout()
	for i := 0; ; i++ {
		ln := l.CreateLine()
		if !ln.IsValid() {
			break
		}
		switch {
		case len(widths) > 0 && columns >= 0:
			ln.SetNumColumnsWidth(columns, widths[min(i, len(widths)-1)])
		case len(widths) > 0:
			ln.SetLineWidth(widths[min(i, len(widths)-1)])
		case columns >= 0:
			ln.SetNumColumns(columns)
		}
	}
	l.EndLayout()

	var y metric.Fixed
	for i := range l.LineCount() {
		ln := l.LineAt(i)
		ln.SetPosition(metric.Pt(0, y))
		y = y.Add(ln.Height())
	}
	paragraph.Logger().Debug("fixture: built paragraph",
		"name", p.Name, "pos", p.Pos.String(), "lines", l.LineCount())
	return l, nil
}

// Verify checks the layout against the expect and position statements of
// the paragraph. Expectations apply to lines in order.
func (p *Paragraph) Verify(l *layout.TextLayout) error {
	line := 0
	for _, st := range p.Statements {
		switch {
		case st.Expect != nil:
			e := st.Expect
			ln := l.LineAt(line)
			if !ln.IsValid() {
				return fmt.Errorf("%s: line %d missing: %w", st.Pos, line, ErrMismatch)
			}
			if ln.From() != e.From || ln.Length() != e.Length || ln.TrailingSpaces() != e.Trailing {
				return fmt.Errorf("%s: line %d is %d+%d+%d, want %d+%d+%d: %w", st.Pos, line,
					ln.From(), ln.Length(), ln.TrailingSpaces(), e.From, e.Length, e.Trailing, ErrMismatch)
			}
			line++
		case st.Position != nil:
			ps := st.Position
			ln := l.LineForTextPosition(ps.At)
			if !ln.IsValid() {
				return fmt.Errorf("%s: position %d has no line: %w", st.Pos, ps.At, ErrMismatch)
			}
			x, _ := ln.OffsetToX(ps.At, layout.Leading)
			if want := metric.FromFloat(ps.X); x != want {
				return fmt.Errorf("%s: position %d at x %v, want %v: %w", st.Pos, ps.At, x.Float(), ps.X, ErrMismatch)
			}
		}
	}
	if line > 0 && line != l.LineCount() {
		return fmt.Errorf("fixture: %d lines, want %d: %w", l.LineCount(), line, ErrMismatch)
	}
	return nil
}

// BuildAll builds every paragraph of the file with up to workers
// goroutines. Zero or negative workers use GOMAXPROCS. engine must be safe
// for concurrent use. The first error in paragraph order is returned.
func (f *File) BuildAll(engine text.Engine, workers int) ([]*layout.TextLayout, error) {
	layouts := make([]*layout.TextLayout, len(f.Paragraphs))
	errs := make([]error, len(f.Paragraphs))
	jobs := make([]func(), len(f.Paragraphs))
	for i, p := range f.Paragraphs {
		jobs[i] = func() { layouts[i], errs[i] = p.Build(engine) }
	}

	pool := parallel.NewPool(workers)
	defer pool.Close()
	pool.Run(jobs)

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("paragraph %d %q: %w", i, f.Paragraphs[i].Name, err)
		}
	}
	return layouts, nil
}
