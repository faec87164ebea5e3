package layout

import (
	"errors"
	"testing"
	"unicode"

	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

var errMockShape = errors.New("mock: cannot shape")

// mockEngine shapes one glyph per character with a 10px advance. The glyph
// id is the rune. Soft hyphens advance 5px, combining marks join the
// previous cluster with a zero advance, and with ligatures set "fi" becomes
// one 20px glyph.
type mockEngine struct {
	name      string
	covers    func(r rune) bool
	fails     func(r rune) bool
	bearings  map[rune]metric.Fixed
	ligatures bool
}

func newMockEngine() *mockEngine { return &mockEngine{name: "mock"} }

func (m *mockEngine) Name() string { return m.name }

func (m *mockEngine) Metrics() text.LineMetrics {
	return text.LineMetrics{Ascent: px(8), Descent: px(2)}
}

func (m *mockEngine) RightBearing(g text.GlyphID) metric.Fixed { return m.bearings[rune(g)] }

func (m *mockEngine) MinRightBearing() metric.Fixed {
	var b metric.Fixed
	for _, v := range m.bearings {
		b = metric.Min(b, v)
	}
	return b
}

func (m *mockEngine) AverageCharWidth() metric.Fixed { return px(10) }

func (m *mockEngine) HasGlyph(r rune) bool { return m.covers == nil || m.covers(r) }

func (m *mockEngine) Shape(req text.ShapeRequest) (text.Shaped, error) {
	n := req.End - req.Start
	s := text.Shaped{LogClusters: make([]int, n), Engines: text.SingleEngine(m)}
	for i := 0; i < n; i++ {
		r := req.Text[req.Start+i]
		if m.fails != nil && m.fails(r) {
			return text.Shaped{}, errMockShape
		}
		g := s.Glyphs.Len()
		switch {
		case i > 0 && unicode.Is(unicode.Mn, r):
			s.Glyphs.Append(glyph(r, 0, false, false))
			s.LogClusters[i] = s.LogClusters[i-1]
			continue
		case m.ligatures && r == 'f' && i+1 < n && req.Text[req.Start+i+1] == 'i':
			s.Glyphs.Append(glyph(0xFB01, px(20), true, false))
			s.LogClusters[i] = g
			s.LogClusters[i+1] = g
			i++
			continue
		case r == text.SoftHyphen:
			s.Glyphs.Append(glyph(r, px(5), true, true))
		default:
			s.Glyphs.Append(glyph(r, px(10), true, text.IsInvisible(r)))
		}
		s.LogClusters[i] = g
	}
	return s, nil
}

func glyph(r rune, advance metric.Fixed, start, dontPrint bool) text.GlyphLayout {
	g := text.NewGlyphLayout(1)
	g.Glyphs[0] = text.GlyphID(r)
	g.Advances[0] = advance
	g.Attributes[0] = text.GlyphAttributes{ClusterStart: start, DontPrint: dontPrint}
	return g
}

func px(n int) metric.Fixed { return metric.FromInt(n) }

// newLayout returns a layout of s shaped by the mock engine.
func newLayout(t *testing.T, s string, opts ...Option) *TextLayout {
	t.Helper()
	return newLayoutWith(t, newMockEngine(), s, opts...)
}

func newLayoutWith(t *testing.T, e text.Engine, s string, opts ...Option) *TextLayout {
	t.Helper()
	l, err := New(e, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.SetText(s)
	return l
}

// layoutWidth lays l out with every line width pixels wide, stacking lines
// vertically.
func layoutWidth(l *TextLayout, width int) {
	l.BeginLayout()
	var y metric.Fixed
	for {
		line := l.CreateLine()
		if !line.IsValid() {
			break
		}
		line.SetLineWidth(px(width))
		line.SetPosition(metric.Pt(0, y))
		y += line.Height()
	}
	l.EndLayout()
}

type lineWant struct {
	from, length, trailing int
}

func checkLines(t *testing.T, l *TextLayout, want []lineWant) {
	t.Helper()
	if l.LineCount() != len(want) {
		t.Fatalf("got %d lines, want %d: %v", l.LineCount(), len(want), lineSummary(l))
	}
	for i, w := range want {
		ln := l.LineAt(i)
		got := lineWant{ln.From(), ln.Length(), ln.TrailingSpaces()}
		if got != w {
			t.Errorf("line %d = %+v, want %+v", i, got, w)
		}
	}
}

func lineSummary(l *TextLayout) []lineWant {
	out := make([]lineWant, l.LineCount())
	for i := range out {
		ln := l.LineAt(i)
		out[i] = lineWant{ln.From(), ln.Length(), ln.TrailingSpaces()}
	}
	return out
}
