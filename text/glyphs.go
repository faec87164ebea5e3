package text

import "github.com/gogpu/paragraph/metric"

// GlyphID is a glyph index inside the font of the engine that produced it.
type GlyphID uint32

// GlyphAttributes are the per-glyph flags used by layout.
type GlyphAttributes struct {
	// ClusterStart marks the first glyph of a cluster.
	ClusterStart bool
	// DontPrint marks glyphs without a visible rendering (soft hyphens,
	// format controls). They contribute no advance.
	DontPrint bool
}

// GlyphLayout stores glyphs as parallel arrays. The layout keeps one
// GlyphLayout per paragraph as an arena; items and lines refer to it by index.
type GlyphLayout struct {
	Glyphs         []GlyphID
	Advances       []metric.Fixed
	Attributes     []GlyphAttributes
	Justifications []metric.Fixed
}

// NewGlyphLayout allocates a layout with n zero glyphs.
func NewGlyphLayout(n int) GlyphLayout {
	return GlyphLayout{
		Glyphs:         make([]GlyphID, n),
		Advances:       make([]metric.Fixed, n),
		Attributes:     make([]GlyphAttributes, n),
		Justifications: make([]metric.Fixed, n),
	}
}

// Len returns the number of glyphs.
func (g GlyphLayout) Len() int { return len(g.Glyphs) }

// Mid returns a view of n glyphs starting at start. The view shares storage
// with g.
func (g GlyphLayout) Mid(start, n int) GlyphLayout {
	end := start + n
	return GlyphLayout{
		Glyphs:         g.Glyphs[start:end:end],
		Advances:       g.Advances[start:end:end],
		Attributes:     g.Attributes[start:end:end],
		Justifications: g.Justifications[start:end:end],
	}
}

// Append adds the glyphs of o and returns the index of the first one.
func (g *GlyphLayout) Append(o GlyphLayout) int {
	start := g.Len()
	g.Glyphs = append(g.Glyphs, o.Glyphs...)
	g.Advances = append(g.Advances, o.Advances...)
	g.Attributes = append(g.Attributes, o.Attributes...)
	if len(o.Justifications) == o.Len() {
		g.Justifications = append(g.Justifications, o.Justifications...)
	} else {
		g.Justifications = append(g.Justifications, make([]metric.Fixed, o.Len())...)
	}
	return start
}

// Reset empties g and keeps its storage.
func (g *GlyphLayout) Reset() {
	g.Glyphs = g.Glyphs[:0]
	g.Advances = g.Advances[:0]
	g.Attributes = g.Attributes[:0]
	g.Justifications = g.Justifications[:0]
}

// EffectiveAdvance is the advance of glyph i including justification.
// DontPrint glyphs have none.
func (g GlyphLayout) EffectiveAdvance(i int) metric.Fixed {
	if g.Attributes[i].DontPrint {
		return 0
	}
	return g.Advances[i].Add(g.Justifications[i])
}

// Width sums the effective advances of glyphs [start, end).
func (g GlyphLayout) Width(start, end int) metric.Fixed {
	var w metric.Fixed
	for i := start; i < end; i++ {
		w = w.Add(g.EffectiveAdvance(i))
	}
	return w
}

// WithAttributes returns a view of g whose attribute slice is a private copy,
// so that attributes can be changed without touching the arena.
func (g GlyphLayout) WithAttributes() GlyphLayout {
	attrs := make([]GlyphAttributes, len(g.Attributes))
	copy(attrs, g.Attributes)
	g.Attributes = attrs
	return g
}
