package text

import (
	"fmt"

	"github.com/go-text/typesetting/language"

	"github.com/gogpu/paragraph/metric"
)

// Engine is a font engine: it shapes runs of text and answers the metric
// questions the line breaker asks.
//
// Implementations must be safe for concurrent use.
type Engine interface {
	// Shape shapes req.Text[req.Start:req.End]. Glyphs are returned in
	// logical order for both directions.
	Shape(req ShapeRequest) (Shaped, error)

	// Metrics returns the line metrics of the font.
	Metrics() LineMetrics

	// RightBearing returns the right side bearing of a glyph. Negative
	// values mean the ink extends past the advance.
	RightBearing(g GlyphID) metric.Fixed

	// MinRightBearing returns the smallest right bearing of any glyph
	// of the font, or 0 when all bearings are positive.
	MinRightBearing() metric.Fixed

	// AverageCharWidth is used to count tabs as glyphs.
	AverageCharWidth() metric.Fixed

	// HasGlyph reports whether the font maps r to a glyph.
	HasGlyph(r rune) bool

	// Name identifies the engine in logs and glyph runs.
	Name() string
}

// ShapeRequest is the input of Engine.Shape. Text is the whole paragraph so
// engines can look at context; only [Start, End) is shaped.
type ShapeRequest struct {
	Text      []rune
	Start     int
	End       int
	Direction Direction
	Script    language.Script
}

func (r ShapeRequest) check() error {
	if r.Start < 0 || r.End > len(r.Text) || r.Start > r.End {
		return fmt.Errorf("%w: [%d,%d) of %d", ErrInvalidRange, r.Start, r.End, len(r.Text))
	}
	return nil
}

// LineMetrics are the vertical metrics of a font at its size.
// Ascent and Descent are both positive distances from the baseline.
type LineMetrics struct {
	Ascent  metric.Fixed
	Descent metric.Fixed
	Leading metric.Fixed
}

// Height returns Ascent + Descent + Leading.
func (m LineMetrics) Height() metric.Fixed {
	return m.Ascent.Add(m.Descent).Add(metric.Max(m.Leading, 0))
}

// Shaped is the result of shaping one item.
//
// LogClusters maps every character of the run (run-relative) to the index of
// the first glyph of its cluster. Values never decrease. Shaped values may
// be shared through engine caches and must not be modified.
type Shaped struct {
	Glyphs      GlyphLayout
	LogClusters []int
	Engines     EngineSelection
}

// Validate checks the structural invariants layout relies on.
func (s Shaped) Validate(length int) error {
	n := s.Glyphs.Len()
	if len(s.Glyphs.Advances) != n || len(s.Glyphs.Attributes) != n {
		return fmt.Errorf("%w: glyph arrays differ in length", ErrInvalidShaping)
	}
	if len(s.LogClusters) != length {
		return fmt.Errorf("%w: %d log clusters for %d characters", ErrInvalidShaping, len(s.LogClusters), length)
	}
	if length > 0 && n == 0 {
		return ErrNoGlyphs
	}
	prev := 0
	for i, g := range s.LogClusters {
		if g < prev || g >= n {
			return fmt.Errorf("%w: log cluster %d of character %d", ErrInvalidShaping, g, i)
		}
		if !s.Glyphs.Attributes[g].ClusterStart {
			return fmt.Errorf("%w: character %d maps to a glyph that starts no cluster", ErrInvalidShaping, i)
		}
		prev = g
	}
	if length > 0 && s.LogClusters[0] != 0 {
		return fmt.Errorf("%w: first character does not map to the first glyph", ErrInvalidShaping)
	}
	return nil
}

// Placeholder returns zero-width shaping for a run that could not be shaped:
// one invisible glyph per character, each its own cluster.
func Placeholder(length int, e Engine) Shaped {
	g := NewGlyphLayout(length)
	lc := make([]int, length)
	for i := range length {
		g.Attributes[i] = GlyphAttributes{ClusterStart: true, DontPrint: true}
		lc[i] = i
	}
	return Shaped{Glyphs: g, LogClusters: lc, Engines: SingleEngine(e)}
}

// EngineSpan assigns glyphs [Start, End) of an item to one engine.
type EngineSpan struct {
	Start, End int
	Engine     Engine
}

// EngineSelection records which engine produced the glyphs of an item:
// either a single engine, or a list of spans when font fallback split the
// item across several engines. It is resolved once when the item is shaped.
type EngineSelection struct {
	single Engine
	spans  []EngineSpan
}

// SingleEngine selects e for every glyph.
func SingleEngine(e Engine) EngineSelection { return EngineSelection{single: e} }

// FallbackSelection selects engines per glyph span. Spans must be sorted and
// contiguous. A single span collapses to SingleEngine.
func FallbackSelection(spans []EngineSpan) EngineSelection {
	if len(spans) == 1 {
		return SingleEngine(spans[0].Engine)
	}
	return EngineSelection{spans: spans}
}

// IsZero reports whether no engine is selected.
func (s EngineSelection) IsZero() bool { return s.single == nil && len(s.spans) == 0 }

// IsFallback reports whether more than one engine is involved.
func (s EngineSelection) IsFallback() bool { return len(s.spans) > 0 }

// EngineAt returns the engine of item-relative glyph i.
func (s EngineSelection) EngineAt(i int) Engine {
	if s.single != nil {
		return s.single
	}
	for _, sp := range s.spans {
		if i >= sp.Start && i < sp.End {
			return sp.Engine
		}
	}
	if n := len(s.spans); n > 0 {
		return s.spans[n-1].Engine
	}
	return nil
}

// Spans returns the engine spans overlapping glyphs [start, end), clipped to
// that range.
func (s EngineSelection) Spans(start, end int) []EngineSpan {
	if start >= end {
		return nil
	}
	if s.single != nil {
		return []EngineSpan{{Start: start, End: end, Engine: s.single}}
	}
	var out []EngineSpan
	for _, sp := range s.spans {
		lo, hi := max(sp.Start, start), min(sp.End, end)
		if lo < hi {
			out = append(out, EngineSpan{Start: lo, End: hi, Engine: sp.Engine})
		}
	}
	return out
}

// Offset shifts all spans by n glyphs.
func (s EngineSelection) Offset(n int) EngineSelection {
	if s.single != nil || n == 0 {
		return s
	}
	spans := make([]EngineSpan, len(s.spans))
	for i, sp := range s.spans {
		spans[i] = EngineSpan{Start: sp.Start + n, End: sp.End + n, Engine: sp.Engine}
	}
	return EngineSelection{spans: spans}
}

// EngineOption configures an engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	language  language.Language
	hinting   Hinting
	cacheSize int
	name      string
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		language:  language.NewLanguage("en"),
		hinting:   HintingNone,
		cacheSize: 256,
	}
}

// WithLanguage sets the BCP 47 language used for shaping.
func WithLanguage(tag string) EngineOption {
	return func(c *engineConfig) { c.language = language.NewLanguage(tag) }
}

// WithHinting sets the hinting mode used for metrics.
func WithHinting(h Hinting) EngineOption {
	return func(c *engineConfig) { c.hinting = h }
}

// WithCacheSize sets how many shaped runs an engine keeps. 0 disables caching.
func WithCacheSize(n int) EngineOption {
	return func(c *engineConfig) { c.cacheSize = n }
}

// WithName overrides the engine name.
func WithName(name string) EngineOption {
	return func(c *engineConfig) { c.name = name }
}

// shapeKey identifies a shaped run in an engine cache.
type shapeKey struct {
	text      string
	direction Direction
	script    language.Script
}

func keyFor(req ShapeRequest) shapeKey {
	return shapeKey{
		text:      string(req.Text[req.Start:req.End]),
		direction: req.Direction,
		script:    req.Script,
	}
}
