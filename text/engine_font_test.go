package text

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func fontEngines(t *testing.T) []Engine {
	t.Helper()
	sf, err := NewSfntEngine(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("NewSfntEngine: %v", err)
	}
	gt, err := NewGoTextEngine(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("NewGoTextEngine: %v", err)
	}
	return []Engine{sf, gt}
}

func TestEngineConstructorErrors(t *testing.T) {
	if _, err := NewSfntEngine(nil, 16); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewSfntEngine(nil) = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewSfntEngine(goregular.TTF, 0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewSfntEngine(size 0) = %v, want ErrInvalidSize", err)
	}
	if _, err := NewGoTextEngine(nil, 16); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewGoTextEngine(nil) = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewGoTextEngine(goregular.TTF, -1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewGoTextEngine(size -1) = %v, want ErrInvalidSize", err)
	}
	if _, err := NewSfntEngine([]byte("not a font"), 16); err == nil {
		t.Error("NewSfntEngine(garbage) should fail")
	}
}

func TestFontEngineShapeLatin(t *testing.T) {
	for _, e := range fontEngines(t) {
		t.Run(e.Name(), func(t *testing.T) {
			runes := []rune("Hello")
			s, err := e.Shape(ShapeRequest{Text: runes, Start: 0, End: len(runes)})
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Validate(len(runes)); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if s.Glyphs.Len() != 5 {
				t.Fatalf("glyphs = %d, want 5", s.Glyphs.Len())
			}
			for i := range 5 {
				if s.LogClusters[i] != i {
					t.Errorf("LogClusters[%d] = %d, want %d", i, s.LogClusters[i], i)
				}
				if s.Glyphs.Advances[i] <= 0 {
					t.Errorf("advance %d = %v, want > 0", i, s.Glyphs.Advances[i])
				}
			}

			m := e.Metrics()
			if m.Ascent <= 0 || m.Descent <= 0 {
				t.Errorf("metrics = %+v, want positive ascent and descent", m)
			}
			if m.Height() < m.Ascent+m.Descent {
				t.Errorf("Height() = %v, want >= ascent+descent", m.Height())
			}
			if e.AverageCharWidth() <= 0 {
				t.Error("AverageCharWidth should be positive")
			}
			if !e.HasGlyph('A') || e.HasGlyph('\U0001F600') {
				t.Error("HasGlyph mismatch for goregular")
			}
			if e.MinRightBearing() > 0 {
				t.Errorf("MinRightBearing = %v, want <= 0", e.MinRightBearing())
			}
		})
	}
}

func TestFontEngineShapeSubrange(t *testing.T) {
	for _, e := range fontEngines(t) {
		t.Run(e.Name(), func(t *testing.T) {
			runes := []rune("one two")
			whole, err := e.Shape(ShapeRequest{Text: runes, Start: 4, End: 7})
			if err != nil {
				t.Fatal(err)
			}
			alone, err := e.Shape(ShapeRequest{Text: []rune("two"), Start: 0, End: 3})
			if err != nil {
				t.Fatal(err)
			}
			if whole.Glyphs.Len() != alone.Glyphs.Len() {
				t.Fatalf("subrange shaped to %d glyphs, standalone to %d", whole.Glyphs.Len(), alone.Glyphs.Len())
			}
			for i := range alone.Glyphs.Glyphs {
				if whole.Glyphs.Glyphs[i] != alone.Glyphs.Glyphs[i] {
					t.Errorf("glyph %d differs: %d vs %d", i, whole.Glyphs.Glyphs[i], alone.Glyphs.Glyphs[i])
				}
			}
		})
	}
}

func TestFontEngineSoftHyphen(t *testing.T) {
	for _, e := range fontEngines(t) {
		t.Run(e.Name(), func(t *testing.T) {
			runes := []rune("ll\u00ADll")
			s, err := e.Shape(ShapeRequest{Text: runes, Start: 0, End: len(runes)})
			if err != nil {
				t.Fatal(err)
			}
			if s.LogClusters[2] == s.LogClusters[1] {
				return
			}
			g := s.LogClusters[2]
			if !s.Glyphs.Attributes[g].DontPrint {
				t.Error("soft hyphen glyph should not print")
			}
			if s.Glyphs.Advances[g] <= 0 {
				t.Error("soft hyphen should carry the hyphen advance")
			}
			if s.Glyphs.EffectiveAdvance(g) != 0 {
				t.Error("soft hyphen should not contribute to the width")
			}
		})
	}
}

func TestSfntEngineCombiningMark(t *testing.T) {
	e, err := NewSfntEngine(goregular.TTF, 16)
	if err != nil {
		t.Fatal(err)
	}
	runes := []rune("e\u0301x")
	s, err := e.Shape(ShapeRequest{Text: runes, Start: 0, End: 3})
	if err != nil {
		t.Fatal(err)
	}
	if s.LogClusters[1] != s.LogClusters[0] {
		t.Errorf("mark should join the base cluster: %v", s.LogClusters)
	}
	if s.Glyphs.Attributes[1].ClusterStart {
		t.Error("mark glyph should not start a cluster")
	}
}

func TestGoTextEngineRightToLeft(t *testing.T) {
	e, err := NewGoTextEngine(goregular.TTF, 16)
	if err != nil {
		t.Fatal(err)
	}
	runes := []rune("abc")
	ltr, err := e.Shape(ShapeRequest{Text: runes, Start: 0, End: 3, Direction: DirectionLTR})
	if err != nil {
		t.Fatal(err)
	}
	rtl, err := e.Shape(ShapeRequest{Text: runes, Start: 0, End: 3, Direction: DirectionRTL})
	if err != nil {
		t.Fatal(err)
	}
	// Glyphs are stored in logical order regardless of direction.
	for i := range 3 {
		if ltr.Glyphs.Glyphs[i] != rtl.Glyphs.Glyphs[i] {
			t.Errorf("glyph %d: ltr %d, rtl %d", i, ltr.Glyphs.Glyphs[i], rtl.Glyphs.Glyphs[i])
		}
	}
	if err := rtl.Validate(3); err != nil {
		t.Errorf("Validate(rtl) = %v", err)
	}
}

func TestEngineShapeCache(t *testing.T) {
	e, err := NewSfntEngine(goregular.TTF, 16, WithCacheSize(4), WithName("regular"))
	if err != nil {
		t.Fatal(err)
	}
	if e.Name() != "regular" {
		t.Errorf("Name() = %q, want regular", e.Name())
	}
	req := ShapeRequest{Text: []rune("cache"), Start: 0, End: 5}
	a, err := e.Shape(req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Shape(req)
	if err != nil {
		t.Fatal(err)
	}
	if a.Glyphs.Len() != b.Glyphs.Len() || a.Glyphs.Glyphs[0] != b.Glyphs.Glyphs[0] {
		t.Error("cached result differs from the first shaping")
	}
	if st := e.cache.Stats(); st.Hits != 1 || st.Misses != 1 {
		t.Errorf("cache stats = %+v, want 1 hit and 1 miss", st)
	}
}
