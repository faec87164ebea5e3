package text

import (
	"unicode"

	"github.com/gogpu/paragraph/metric"
)

// MonoEngine lays every character out in one cell of a fixed advance, like
// a terminal. Glyph ids are the characters themselves. Nonspacing marks
// join the preceding cluster with no advance.
//
// MonoEngine has no font and covers every character. It is safe for
// concurrent use.
type MonoEngine struct {
	advance metric.Fixed
	metrics LineMetrics
}

// NewMonoEngine returns an engine with cells advance wide and the given
// line metrics.
func NewMonoEngine(advance metric.Fixed, m LineMetrics) (*MonoEngine, error) {
	if advance <= 0 {
		return nil, ErrInvalidSize
	}
	return &MonoEngine{advance: advance, metrics: m}, nil
}

// Name implements Engine.
func (e *MonoEngine) Name() string { return "mono" }

// Metrics implements Engine.
func (e *MonoEngine) Metrics() LineMetrics { return e.metrics }

// RightBearing implements Engine. Cells have no overhang.
func (e *MonoEngine) RightBearing(GlyphID) metric.Fixed { return 0 }

// MinRightBearing implements Engine.
func (e *MonoEngine) MinRightBearing() metric.Fixed { return 0 }

// AverageCharWidth implements Engine.
func (e *MonoEngine) AverageCharWidth() metric.Fixed { return e.advance }

// HasGlyph implements Engine.
func (e *MonoEngine) HasGlyph(rune) bool { return true }

// Shape implements Engine.
func (e *MonoEngine) Shape(req ShapeRequest) (Shaped, error) {
	if err := req.check(); err != nil {
		return Shaped{}, err
	}
	n := req.End - req.Start
	out := Shaped{
		Glyphs:      NewGlyphLayout(n),
		LogClusters: make([]int, n),
		Engines:     SingleEngine(e),
	}
	for i := range n {
		r := req.Text[req.Start+i]
		out.Glyphs.Glyphs[i] = GlyphID(r)
		out.Glyphs.Advances[i] = e.advance
		out.Glyphs.Attributes[i] = GlyphAttributes{ClusterStart: true, DontPrint: IsInvisible(r)}
		out.LogClusters[i] = i
		if i > 0 && unicode.Is(unicode.Mn, r) {
			out.Glyphs.Advances[i] = 0
			out.Glyphs.Attributes[i].ClusterStart = false
			out.LogClusters[i] = out.LogClusters[i-1]
		}
	}
	return out, nil
}
