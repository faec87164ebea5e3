package layout

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/gogpu/paragraph/text"
)

func TestBidiReorder(t *testing.T) {
	tests := []struct {
		name   string
		levels []uint8
		want   []int
	}{
		{"empty", nil, []int{}},
		{"ltr", []uint8{0, 0, 0}, []int{0, 1, 2}},
		{"rtl", []uint8{1, 1, 1}, []int{2, 1, 0}},
		{"single rtl run", []uint8{0, 1, 0}, []int{0, 1, 2}},
		{"two rtl runs", []uint8{0, 1, 1, 0}, []int{0, 2, 1, 3}},
		{"nested", []uint8{0, 1, 2, 1, 0}, []int{0, 3, 2, 1, 4}},
		{"ltr inside rtl", []uint8{1, 2, 2, 1}, []int{3, 1, 2, 0}},
		{"even levels only", []uint8{2, 2, 0}, []int{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BidiReorder(tt.levels); !slices.Equal(got, tt.want) {
				t.Errorf("BidiReorder(%v) = %v, want %v", tt.levels, got, tt.want)
			}
		})
	}
}

func TestBidiReorderIsPermutation(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		levels := make([]uint8, r.IntN(12))
		for i := range levels {
			levels[i] = uint8(r.IntN(6))
		}
		order := BidiReorder(levels)
		if len(order) != len(levels) {
			t.Fatalf("BidiReorder(%v) has %d entries", levels, len(order))
		}
		seen := make([]bool, len(levels))
		for _, i := range order {
			if i < 0 || i >= len(levels) || seen[i] {
				t.Fatalf("BidiReorder(%v) = %v is not a permutation", levels, order)
			}
			seen[i] = true
		}
	}
}

func TestVisualItemOrder(t *testing.T) {
	// Two right-to-left items between left-to-right ones swap places.
	l := newLayout(t, "abcdef")
	err := l.SetItems([]text.ScriptItem{
		{Position: 0, Length: 2},
		{Position: 2, Length: 1, BidiLevel: 1},
		{Position: 3, Length: 1, BidiLevel: 1},
		{Position: 4, Length: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	layoutWidth(l, 1000)
	if got, want := l.visualItems(0, 6), []int{0, 2, 1, 3}; !slices.Equal(got, want) {
		t.Errorf("visualItems = %v, want %v", got, want)
	}

	// Logical c, d sit at the visual positions of d, c.
	ln := l.LineAt(0)
	for pos, want := range map[int]int{0: 0, 2: 40, 3: 30, 4: 40} {
		if got, _ := ln.OffsetToX(pos, Leading); got != px(want) {
			t.Errorf("OffsetToX(%d) = %v, want %d", pos, got, want)
		}
	}
}

func TestRightToLeftItemBetweenLeftToRight(t *testing.T) {
	l := newLayout(t, "ab אבג cd")
	layoutWidth(l, 1000)

	var rtl []GlyphRun
	for _, r := range l.LineAt(0).GlyphRuns(-1, -1) {
		if r.Flags&RunRightToLeft != 0 {
			rtl = append(rtl, r)
		}
	}
	if len(rtl) != 1 {
		t.Fatalf("got %d right-to-left runs, want 1", len(rtl))
	}
	// Glyphs are listed left to right, so the last letter comes first.
	want := []rune{'ג', 'ב', 'א'}
	for i, g := range rtl[0].Glyphs {
		if rune(g) != want[i] {
			t.Errorf("glyph %d = %q, want %q", i, rune(g), want[i])
		}
		if x := rtl[0].Positions[i].X; x != px(30+10*i) {
			t.Errorf("glyph %d at x = %v, want %d", i, x, 30+10*i)
		}
	}
}
