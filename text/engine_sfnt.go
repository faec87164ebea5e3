package text

import (
	"fmt"
	"sync"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/paragraph/internal/cache"
	"github.com/gogpu/paragraph/metric"
)

// SfntEngine shapes with golang.org/x/image/font/sfnt: one glyph per
// character, nominal advances, no ligatures and no kerning. Nonspacing marks
// join the cluster of the preceding character.
//
// SfntEngine is safe for concurrent use. sfnt.Buffer is not, so buffers are
// pooled.
type SfntEngine struct {
	font    *sfnt.Font
	ppem    fixed.Int26_6
	hinting font.Hinting
	name    string

	metrics  LineMetrics
	avgWidth metric.Fixed

	bufPool sync.Pool
	cache   *cache.Cache[shapeKey, Shaped]

	minRBOnce sync.Once
	minRB     metric.Fixed
}

// NewSfntEngine parses TrueType/OpenType data and returns an engine at size
// pixels per em.
func NewSfntEngine(data []byte, size float64, opts ...EngineOption) (*SfntEngine, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	return NewSfntEngineFromFont(f, size, opts...)
}

// NewSfntEngineFromFont wraps an already parsed font.
func NewSfntEngineFromFont(f *sfnt.Font, size float64, opts ...EngineOption) (*SfntEngine, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &SfntEngine{
		font:    f,
		ppem:    metric.FromFloat(size).Int26_6(),
		hinting: mapHinting(cfg.hinting),
		name:    cfg.name,
		bufPool: sync.Pool{New: func() any { return &sfnt.Buffer{} }},
	}
	if cfg.cacheSize > 0 {
		e.cache = cache.New[shapeKey, Shaped](cfg.cacheSize)
	}

	buf := e.buffer()
	defer e.bufPool.Put(buf)

	if e.name == "" {
		name, err := f.Name(buf, sfnt.NameIDFull)
		if err != nil || name == "" {
			name = "sfnt"
		}
		e.name = name
	}

	m, err := f.Metrics(buf, e.ppem, e.hinting)
	if err != nil {
		return nil, fmt.Errorf("text: font metrics: %w", err)
	}
	e.metrics = LineMetrics{
		Ascent:  metric.FromInt26_6(m.Ascent),
		Descent: metric.FromInt26_6(m.Descent),
		Leading: metric.Max(metric.FromInt26_6(m.Height-m.Ascent-m.Descent), 0),
	}

	e.avgWidth = metric.FromInt26_6(e.ppem) / 2
	if gid, err := f.GlyphIndex(buf, 'x'); err == nil && gid != 0 {
		if adv, err := f.GlyphAdvance(buf, gid, e.ppem, e.hinting); err == nil {
			e.avgWidth = metric.FromInt26_6(adv)
		}
	}
	return e, nil
}

func (e *SfntEngine) buffer() *sfnt.Buffer { return e.bufPool.Get().(*sfnt.Buffer) }

// Name implements Engine.
func (e *SfntEngine) Name() string { return e.name }

// Metrics implements Engine.
func (e *SfntEngine) Metrics() LineMetrics { return e.metrics }

// AverageCharWidth implements Engine. It is the advance of 'x'.
func (e *SfntEngine) AverageCharWidth() metric.Fixed { return e.avgWidth }

// HasGlyph implements Engine.
func (e *SfntEngine) HasGlyph(r rune) bool {
	buf := e.buffer()
	defer e.bufPool.Put(buf)
	gid, err := e.font.GlyphIndex(buf, r)
	return err == nil && gid != 0
}

// RightBearing implements Engine.
func (e *SfntEngine) RightBearing(g GlyphID) metric.Fixed {
	buf := e.buffer()
	defer e.bufPool.Put(buf)
	return e.rightBearing(buf, sfnt.GlyphIndex(g))
}

func (e *SfntEngine) rightBearing(buf *sfnt.Buffer, gid sfnt.GlyphIndex) metric.Fixed {
	bounds, advance, err := e.font.GlyphBounds(buf, gid, e.ppem, e.hinting)
	if err != nil || bounds.Empty() {
		return 0
	}
	return metric.FromInt26_6(advance - bounds.Max.X)
}

// MinRightBearing implements Engine. It scans all glyphs once.
func (e *SfntEngine) MinRightBearing() metric.Fixed {
	e.minRBOnce.Do(func() {
		buf := e.buffer()
		defer e.bufPool.Put(buf)
		for i := range e.font.NumGlyphs() {
			e.minRB = metric.Min(e.minRB, e.rightBearing(buf, sfnt.GlyphIndex(i)))
		}
	})
	return e.minRB
}

// Shape implements Engine.
func (e *SfntEngine) Shape(req ShapeRequest) (Shaped, error) {
	if err := req.check(); err != nil {
		return Shaped{}, err
	}
	if e.cache == nil {
		return e.shape(req)
	}
	key := keyFor(req)
	if s, ok := e.cache.Get(key); ok {
		return s, nil
	}
	s, err := e.shape(req)
	if err != nil {
		return Shaped{}, err
	}
	e.cache.Set(key, s)
	return s, nil
}

func (e *SfntEngine) shape(req ShapeRequest) (Shaped, error) {
	buf := e.buffer()
	defer e.bufPool.Put(buf)

	n := req.End - req.Start
	out := Shaped{
		Glyphs:      NewGlyphLayout(n),
		LogClusters: make([]int, n),
		Engines:     SingleEngine(e),
	}
	for i := range n {
		r := req.Text[req.Start+i]
		lookup := r
		if r == SoftHyphen {
			// Measured as the hyphen it turns into at a line end.
			lookup = Hyphen
		}
		gid, err := e.font.GlyphIndex(buf, lookup)
		if err != nil {
			return Shaped{}, fmt.Errorf("text: glyph index of %U: %w", r, err)
		}
		adv, err := e.font.GlyphAdvance(buf, gid, e.ppem, e.hinting)
		if err != nil {
			return Shaped{}, fmt.Errorf("text: advance of %U: %w", r, err)
		}

		out.Glyphs.Glyphs[i] = GlyphID(gid)
		out.Glyphs.Advances[i] = metric.FromInt26_6(adv)
		out.Glyphs.Attributes[i] = GlyphAttributes{
			ClusterStart: true,
			DontPrint:    IsInvisible(r),
		}
		out.LogClusters[i] = i

		if i > 0 && unicode.Is(unicode.Mn, r) {
			out.Glyphs.Attributes[i].ClusterStart = false
			out.LogClusters[i] = out.LogClusters[i-1]
		}
	}
	return out, nil
}

func mapHinting(h Hinting) font.Hinting {
	switch h {
	case HintingVertical:
		return font.HintingVertical
	case HintingFull:
		return font.HintingFull
	default:
		return font.HintingNone
	}
}
