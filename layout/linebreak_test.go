package layout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

func TestLayoutFitsOnOneLine(t *testing.T) {
	l := newLayout(t, "Hello World")
	layoutWidth(l, 200)
	checkLines(t, l, []lineWant{{0, 11, 0}})
	if got := l.LineAt(0).NaturalTextWidth(); got != px(110) {
		t.Errorf("NaturalTextWidth() = %v, want 110", got)
	}
}

func TestLayoutWrapsAtWordBoundary(t *testing.T) {
	l := newLayout(t, "Hello World")
	layoutWidth(l, 55)
	checkLines(t, l, []lineWant{{0, 5, 1}, {6, 5, 0}})
	for i := range 2 {
		if got := l.LineAt(i).NaturalTextWidth(); got != px(50) {
			t.Errorf("line %d NaturalTextWidth() = %v, want 50", i, got)
		}
	}
	if got := l.LineAt(1).Y(); got != px(10) {
		t.Errorf("line 1 Y() = %v, want 10", got)
	}
}

func TestLayoutSoftHyphen(t *testing.T) {
	object := WithObjectSizer(func(int) (metric.Fixed, metric.Fixed, metric.Fixed) {
		return px(60), px(8), px(2)
	})
	tests := []struct {
		name       string
		text       string
		width      int
		lines      []lineWant
		width0     metric.Fixed
		hyphenated bool
		opts       []Option
	}{
		{"breaks", "super\u00ADfluous", 55, []lineWant{{0, 6, 0}, {6, 6, 0}}, px(55), true, nil},
		{"fits", "super\u00ADfluous", 500, []lineWant{{0, 12, 0}}, px(110), false, nil},
		{"before script change", "super\u00ADмногос", 55, []lineWant{{0, 6, 0}, {6, 6, 0}}, px(55), true, nil},
		{"before object", "super\u00AD\uFFFC", 55, []lineWant{{0, 6, 0}, {6, 1, 0}}, px(55), true, []Option{object}},
		{"hyphen does not fit", "a\u00ADverylongword", 10, []lineWant{{0, 2, 0}, {2, 12, 0}}, px(10), false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayout(t, tt.text, tt.opts...)
			layoutWidth(l, tt.width)
			checkLines(t, l, tt.lines)
			ln := l.LineAt(0)
			if got := ln.NaturalTextWidth(); got != tt.width0 {
				t.Errorf("NaturalTextWidth() = %v, want %v", got, tt.width0)
			}
			if got := l.lines[0].Hyphenated; got != tt.hyphenated {
				t.Errorf("Hyphenated = %v, want %v", got, tt.hyphenated)
			}

			// The soft hyphen is drawn only where the line breaks at it.
			var shy int
			for _, r := range ln.GlyphRuns(-1, -1) {
				for _, g := range r.Glyphs {
					if g == text.GlyphID(text.SoftHyphen) {
						shy++
					}
				}
			}
			want := 0
			if tt.hyphenated {
				want = 1
			}
			if shy != want {
				t.Errorf("soft hyphen glyphs = %d, want %d", shy, want)
			}
		})
	}
}

func TestLayoutNoWrap(t *testing.T) {
	for _, mode := range []WrapMode{NoWrap, ManualWrap} {
		t.Run(mode.String(), func(t *testing.T) {
			l := newLayout(t, "Hello World foo", WithWrapMode(mode))
			layoutWidth(l, 20)
			checkLines(t, l, []lineWant{{0, 15, 0}})

			l.SetText("ab\ncd")
			layoutWidth(l, 20)
			checkLines(t, l, []lineWant{{0, 3, 0}, {3, 2, 0}})
		})
	}
}

func TestLayoutOverflowingWord(t *testing.T) {
	l := newLayout(t, "Supercalifragilistic")
	layoutWidth(l, 30)
	checkLines(t, l, []lineWant{{0, 20, 0}})
	if got := l.LineAt(0).NaturalTextWidth(); got != px(200) {
		t.Errorf("NaturalTextWidth() = %v, want 200", got)
	}
}

func TestLayoutWrapAnywhere(t *testing.T) {
	l := newLayout(t, "abcde", WithWrapMode(WrapAnywhere))
	layoutWidth(l, 25)
	checkLines(t, l, []lineWant{{0, 2, 0}, {2, 2, 0}, {4, 1, 0}})
}

func TestLayoutWordOrAnywhereRetry(t *testing.T) {
	l := newLayout(t, "abcdefgh ij", WithWrapMode(WrapAtWordBoundaryOrAnywhere))
	layoutWidth(l, 35)
	checkLines(t, l, []lineWant{{0, 3, 0}, {3, 3, 0}, {6, 2, 1}, {9, 2, 0}})

	// The abandoned word-boundary attempt does not leak into the widths.
	if got := l.MinimumWidth(); got != px(20) {
		t.Errorf("MinimumWidth() = %v, want 20", got)
	}
	if got := l.MaximumWidth(); got != px(110) {
		t.Errorf("MaximumWidth() = %v, want 110", got)
	}
}

func TestLayoutMinimumMaximumWidth(t *testing.T) {
	l := newLayout(t, "aa bbbb c")
	layoutWidth(l, 1000)
	if got := l.MinimumWidth(); got != px(40) {
		t.Errorf("MinimumWidth() = %v, want 40", got)
	}
	if got := l.MaximumWidth(); got != px(90) {
		t.Errorf("MaximumWidth() = %v, want 90", got)
	}
}

func TestLayoutSeparators(t *testing.T) {
	t.Run("trailing separator adds an empty line", func(t *testing.T) {
		l := newLayout(t, "ab\n")
		layoutWidth(l, 100)
		checkLines(t, l, []lineWant{{0, 3, 0}, {3, 0, 0}})
		if got := l.LineAt(1).Height(); got != px(10) {
			t.Errorf("empty line Height() = %v, want 10", got)
		}
	})
	t.Run("consecutive separators", func(t *testing.T) {
		l := newLayout(t, "\n\n")
		layoutWidth(l, 100)
		checkLines(t, l, []lineWant{{0, 1, 0}, {1, 1, 0}, {2, 0, 0}})
	})
	t.Run("spaces before a separator", func(t *testing.T) {
		l := newLayout(t, "ab   \ncd")
		layoutWidth(l, 40)
		checkLines(t, l, []lineWant{{0, 6, 0}, {6, 2, 0}})
		if got := l.LineAt(0).NaturalTextWidth(); got != px(40) {
			t.Errorf("NaturalTextWidth() = %v, want 40", got)
		}
	})
	for _, tt := range []struct {
		flags Flags
		want  metric.Fixed
	}{
		{0, px(20)},
		{ShowSeparators, px(30)},
	} {
		t.Run(fmt.Sprintf("flags %d", tt.flags), func(t *testing.T) {
			l := newLayout(t, "ab\n", WithFlags(tt.flags))
			layoutWidth(l, 100)
			if got := l.LineAt(0).NaturalTextWidth(); got != tt.want {
				t.Errorf("NaturalTextWidth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayoutEmptyText(t *testing.T) {
	l := newLayout(t, "")
	layoutWidth(l, 100)
	checkLines(t, l, []lineWant{{0, 0, 0}})
	if got := l.LineAt(0).Height(); got != px(10) {
		t.Errorf("Height() = %v, want 10", got)
	}
}

func TestLayoutTrailingSpaces(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  metric.Fixed
	}{
		{"excluded", 0, px(50)},
		{"included", IncludeTrailingSpaces, px(55)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayout(t, "Hello World", WithFlags(tt.flags))
			layoutWidth(l, 55)
			checkLines(t, l, []lineWant{{0, 5, 1}, {6, 5, 0}})
			// The space is clipped to the width left on the line.
			if got := l.LineAt(0).NaturalTextWidth(); got != tt.want {
				t.Errorf("NaturalTextWidth() = %v, want %v", got, tt.want)
			}
		})
	}

	// Spaces ending the paragraph stay on the last line when they fit.
	l := newLayout(t, "ab   ")
	layoutWidth(l, 100)
	checkLines(t, l, []lineWant{{0, 5, 0}})
}

func TestLayoutRightBearing(t *testing.T) {
	e := newMockEngine()
	e.bearings = map[rune]metric.Fixed{'f': px(-2)}
	l := newLayoutWith(t, e, "af")
	layoutWidth(l, 100)
	sl := l.lines[0]
	if sl.TextWidth != px(22) || sl.TextAdvance != px(20) {
		t.Errorf("TextWidth, TextAdvance = %v, %v, want 22, 20", sl.TextWidth, sl.TextAdvance)
	}
}

func TestLayoutTabs(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts []Option
		pos  int
		want metric.Fixed
	}{
		{"default distance", "a\tb", nil, 2, px(80)},
		{"custom distance", "a\tb", []Option{WithTabStopDistance(px(40))}, 2, px(40)},
		{"second stop", "abcdefghi\tb", []Option{WithTabStopDistance(px(40))}, 10, px(120)},
		{"left stop", "a\tb", []Option{WithTabs(TabStop{Position: px(100)})}, 2, px(100)},
		{"right stop", "a\tb", []Option{WithTabs(TabStop{Position: px(100), Type: TabRight})}, 2, px(90)},
		{"center stop", "a\tb", []Option{WithTabs(TabStop{Position: px(100), Type: TabCenter})}, 2, px(95)},
		{
			"delimiter stop", "a\tb.c",
			[]Option{WithTabs(TabStop{Position: px(100), Type: TabDelimiter, Delimiter: '.'})},
			2, px(85),
		},
		{"stop passed", "abcdefghijkl\tb", []Option{WithTabs(TabStop{Position: px(100)})}, 13, px(160)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayout(t, tt.text, tt.opts...)
			layoutWidth(l, 1000)
			checkLines(t, l, []lineWant{{0, len([]rune(tt.text)), 0}})
			if got, _ := l.LineAt(0).OffsetToX(tt.pos, Leading); got != tt.want {
				t.Errorf("OffsetToX(%d) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestLayoutTabWraps(t *testing.T) {
	l := newLayout(t, "a\tb\tc")
	layoutWidth(l, 25)
	checkLines(t, l, []lineWant{{0, 1, 1}, {2, 1, 1}, {4, 1, 0}})
}

func TestLayoutObjects(t *testing.T) {
	sizer := func(pos int) (metric.Fixed, metric.Fixed, metric.Fixed) {
		return px(30), px(20), px(5)
	}
	l := newLayout(t, "a\uFFFCb", WithObjectSizer(sizer))
	layoutWidth(l, 100)
	ln := l.LineAt(0)
	if got := ln.NaturalTextWidth(); got != px(50) {
		t.Errorf("NaturalTextWidth() = %v, want 50", got)
	}
	if ln.Ascent() != px(20) || ln.Descent() != px(5) || ln.Height() != px(25) {
		t.Errorf("ascent, descent, height = %v, %v, %v, want 20, 5, 25", ln.Ascent(), ln.Descent(), ln.Height())
	}
	if got, _ := ln.OffsetToX(2, Leading); got != px(40) {
		t.Errorf("OffsetToX(2) = %v, want 40", got)
	}
}

func TestLayoutNumColumns(t *testing.T) {
	tests := []struct {
		mode WrapMode
		want []lineWant
	}{
		{WrapAtWordBoundary, []lineWant{{0, 5, 1}, {6, 5, 0}}},
		{WrapAnywhere, []lineWant{{0, 3, 0}, {3, 2, 1}, {6, 3, 0}, {9, 2, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			l := newLayout(t, "Hello World", WithWrapMode(tt.mode))
			l.BeginLayout()
			for {
				ln := l.CreateLine()
				if !ln.IsValid() {
					break
				}
				ln.SetNumColumns(3)
			}
			l.EndLayout()
			checkLines(t, l, tt.want)
		})
	}
}

func TestLayoutRebound(t *testing.T) {
	l := newLayout(t, "Hello World")
	l.BeginLayout()
	ln := l.CreateLine()
	ln.SetLineWidth(px(55))
	if ln.Length() != 5 {
		t.Fatalf("Length() = %d, want 5", ln.Length())
	}
	ln.SetLineWidth(px(200))
	if ln.Length() != 11 {
		t.Errorf("Length() after widening = %d, want 11", ln.Length())
	}
	ln.SetLineWidth(px(55))
	if ln.Length() != 5 {
		t.Errorf("Length() after narrowing = %d, want 5", ln.Length())
	}

	// Closed lines keep their layout.
	l.CreateLine()
	ln.SetLineWidth(px(200))
	if ln.Length() != 5 {
		t.Errorf("closed line relaid out to %d", ln.Length())
	}
	l.EndLayout()
}

func TestLayoutUnboundedLines(t *testing.T) {
	l := newLayout(t, "Hello World\nfoo")
	l.BeginLayout()
	for l.CreateLine().IsValid() {
	}
	l.EndLayout()
	checkLines(t, l, []lineWant{{0, 12, 0}, {12, 3, 0}})
	if got := l.LineAt(0).Width(); got != px(110) {
		t.Errorf("Width() of unbounded line = %v, want 110", got)
	}
}

func TestLayoutUsageErrors(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilEngine) {
		t.Errorf("New(nil) error = %v, want ErrNilEngine", err)
	}

	l := newLayout(t, "abc")
	if ln := l.CreateLine(); ln.IsValid() {
		t.Error("CreateLine outside layout returned a valid line")
	}
	if ln := l.LineAt(3); ln.IsValid() || ln.From() != -1 || ln.Index() != -1 {
		t.Error("LineAt out of range returned a valid line")
	}
	var zero Line
	if x, pos := zero.OffsetToX(0, Leading); x != 0 || pos != -1 {
		t.Errorf("OffsetToX on invalid line = %v, %d", x, pos)
	}
	if got := zero.XToOffset(0, CursorBetweenCharacters); got != -1 {
		t.Errorf("XToOffset on invalid line = %d", got)
	}
	if zero.GlyphRuns(-1, -1) != nil {
		t.Error("GlyphRuns on invalid line returned runs")
	}

	layoutWidth(l, 100)
	ln := l.LineAt(0)
	ln.SetLineWidth(px(10))
	if ln.Length() != 3 {
		t.Errorf("SetLineWidth after EndLayout changed the line to %d", ln.Length())
	}
}

func TestLayoutShapingFailure(t *testing.T) {
	e := newMockEngine()
	e.fails = func(r rune) bool { return r == '!' }
	l := newLayoutWith(t, e, "ab!")
	layoutWidth(l, 100)
	checkLines(t, l, []lineWant{{0, 3, 0}})
	if got := l.LineAt(0).NaturalTextWidth(); got != 0 {
		t.Errorf("NaturalTextWidth() = %v, want 0", got)
	}
}

func TestLayoutCache(t *testing.T) {
	for _, cache := range []bool{false, true} {
		t.Run(fmt.Sprint(cache), func(t *testing.T) {
			l := newLayout(t, "Hello World", WithCache(cache))
			layoutWidth(l, 55)
			if got := l.items[0].Shaped; got != cache {
				t.Errorf("Shaped after EndLayout = %v, want %v", got, cache)
			}
			// Released glyphs are shaped again on demand.
			if got, _ := l.LineAt(1).OffsetToX(8, Leading); got != px(20) {
				t.Errorf("OffsetToX(8) = %v, want 20", got)
			}
		})
	}
}

func TestLayoutSetItems(t *testing.T) {
	l := newLayout(t, "abcdef")
	err := l.SetItems([]text.ScriptItem{{Position: 0, Length: 3}, {Position: 3, Length: 2}})
	if err == nil {
		t.Fatal("SetItems accepted items not covering the text")
	}

	items := []text.ScriptItem{
		{Position: 0, Length: 3, Format: -1},
		{Position: 3, Length: 3, BidiLevel: 1, Format: -1},
	}
	if err := l.SetItems(items); err != nil {
		t.Fatalf("SetItems: %v", err)
	}
	layoutWidth(l, 100)
	checkLines(t, l, []lineWant{{0, 6, 0}})

	// The level 1 item runs right to left: its first character is on the
	// right.
	ln := l.LineAt(0)
	if got, _ := ln.OffsetToX(3, Leading); got != px(60) {
		t.Errorf("OffsetToX(3) = %v, want 60", got)
	}
	if got, _ := ln.OffsetToX(5, Leading); got != px(40) {
		t.Errorf("OffsetToX(5) = %v, want 40", got)
	}

	// Options changes keep custom items.
	l.SetOptions(l.Options())
	if got := len(l.Items()); got != 2 {
		t.Errorf("len(Items()) = %d after SetOptions, want 2", got)
	}
}

func TestLayoutFormatsSplitItems(t *testing.T) {
	l := newLayout(t, "Hello World", WithFormats(FormatRange{Start: 2, Length: 3}))
	items := l.Items()
	if len(items) != 3 {
		t.Fatalf("len(Items()) = %d, want 3", len(items))
	}
	for i, want := range []int{-1, 0, -1} {
		if items[i].Format != want {
			t.Errorf("item %d Format = %d, want %d", i, items[i].Format, want)
		}
	}
}

func TestLayoutLinesCoverText(t *testing.T) {
	texts := []string{
		"Hello World",
		"  leading spaces",
		"a\tb\tc",
		"one\ntwo\n",
		"super\u00ADfluous words here",
		"abc אבג def",
		"",
		"x",
		"trailing   ",
		"\n\n",
		"supercalifragilistic",
		"e\u0301e\u0301e\u0301 a\u00A0b",
	}
	modes := []WrapMode{NoWrap, ManualWrap, WrapAtWordBoundary, WrapAnywhere, WrapAtWordBoundaryOrAnywhere}
	widths := []int{1, 25, 55, 100, 1000}

	for _, s := range texts {
		n := len([]rune(s))
		for _, mode := range modes {
			for _, w := range widths {
				l := newLayout(t, s, WithWrapMode(mode))
				layoutWidth(l, w)
				name := fmt.Sprintf("%q/%v/%d", s, mode, w)
				if l.LineCount() == 0 || l.LineCount() > n+1 {
					t.Errorf("%s: %d lines", name, l.LineCount())
					continue
				}
				pos := 0
				for i := range l.LineCount() {
					ln := l.LineAt(i)
					if ln.From() != pos {
						t.Errorf("%s: line %d starts at %d, want %d", name, i, ln.From(), pos)
					}
					if i < l.LineCount()-1 && ln.Length()+ln.TrailingSpaces() == 0 {
						t.Errorf("%s: line %d is empty", name, i)
					}
					pos = ln.From() + ln.Length() + ln.TrailingSpaces()
				}
				if pos != n {
					t.Errorf("%s: lines end at %d, want %d", name, pos, n)
				}
			}
		}
	}
}
