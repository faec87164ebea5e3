package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/paragraph/internal/cache"
	"github.com/gogpu/paragraph/metric"
)

// GoTextEngine shapes with the HarfBuzz port of go-text/typesetting. It
// supports ligatures, kerning, and complex scripts.
//
// GoTextEngine is safe for concurrent use. It keeps the parsed font.Font,
// which is read-only, and pools font.Face and HarfbuzzShaper instances since
// neither is safe for concurrent use.
type GoTextEngine struct {
	font  *font.Font
	size  fixed.Int26_6
	scale float64 // pixels per font unit
	lang  language.Language
	name  string

	shaperPool sync.Pool
	facePool   sync.Pool

	metrics  LineMetrics
	avgWidth metric.Fixed
	hyphen   font.GID
	hyphenW  metric.Fixed

	cache *cache.Cache[shapeKey, Shaped]

	minRBOnce sync.Once
	minRB     metric.Fixed
}

// NewGoTextEngine parses TrueType/OpenType data and returns an engine at
// size pixels per em.
func NewGoTextEngine(data []byte, size float64, opts ...EngineOption) (*GoTextEngine, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &GoTextEngine{
		font:  face.Font,
		size:  metric.FromFloat(size).Int26_6(),
		scale: size / float64(face.Font.Upem()),
		lang:  cfg.language,
		name:  cfg.name,
	}
	e.shaperPool.New = func() any { return &shaping.HarfbuzzShaper{} }
	e.facePool.New = func() any { return font.NewFace(e.font) }
	if e.name == "" {
		e.name = face.Describe().Family
		if e.name == "" {
			e.name = "gotext"
		}
	}
	if cfg.cacheSize > 0 {
		e.cache = cache.New[shapeKey, Shaped](cfg.cacheSize)
	}

	if ext, ok := face.FontHExtents(); ok {
		e.metrics = LineMetrics{
			Ascent:  e.units(ext.Ascender),
			Descent: e.units(-ext.Descender),
			Leading: metric.Max(e.units(ext.LineGap), 0),
		}
	} else {
		e.metrics = LineMetrics{Ascent: metric.FromFloat(size * 0.8), Descent: metric.FromFloat(size * 0.2)}
	}

	e.avgWidth = metric.FromFloat(size / 2)
	if gid, ok := face.NominalGlyph('x'); ok {
		e.avgWidth = e.units(face.HorizontalAdvance(gid))
	}
	if gid, ok := face.NominalGlyph(Hyphen); ok {
		e.hyphen = gid
		e.hyphenW = e.units(face.HorizontalAdvance(gid))
	}
	return e, nil
}

func (e *GoTextEngine) units(v float32) metric.Fixed {
	return metric.FromFloat(float64(v) * e.scale)
}

func (e *GoTextEngine) face() *font.Face { return e.facePool.Get().(*font.Face) }

// Name implements Engine.
func (e *GoTextEngine) Name() string { return e.name }

// Metrics implements Engine.
func (e *GoTextEngine) Metrics() LineMetrics { return e.metrics }

// AverageCharWidth implements Engine. It is the advance of 'x'.
func (e *GoTextEngine) AverageCharWidth() metric.Fixed { return e.avgWidth }

// HasGlyph implements Engine.
func (e *GoTextEngine) HasGlyph(r rune) bool {
	f := e.face()
	defer e.facePool.Put(f)
	_, ok := f.NominalGlyph(r)
	return ok
}

// RightBearing implements Engine.
func (e *GoTextEngine) RightBearing(g GlyphID) metric.Fixed {
	f := e.face()
	defer e.facePool.Put(f)
	return e.rightBearing(f, font.GID(g))
}

func (e *GoTextEngine) rightBearing(f *font.Face, gid font.GID) metric.Fixed {
	ext, ok := f.GlyphExtents(gid)
	if !ok || ext.Width == 0 {
		return 0
	}
	return e.units(f.HorizontalAdvance(gid) - (ext.XBearing + ext.Width))
}

// MinRightBearing implements Engine. It scans all glyphs once.
func (e *GoTextEngine) MinRightBearing() metric.Fixed {
	e.minRBOnce.Do(func() {
		f := e.face()
		defer e.facePool.Put(f)
		for gid := font.GID(0); gid < 0xFFFF; gid++ {
			if _, ok := f.GlyphExtents(gid); !ok {
				break
			}
			e.minRB = metric.Min(e.minRB, e.rightBearing(f, gid))
		}
	})
	return e.minRB
}

// Shape implements Engine.
func (e *GoTextEngine) Shape(req ShapeRequest) (Shaped, error) {
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

func (e *GoTextEngine) shape(req ShapeRequest) (Shaped, error) {
	n := req.End - req.Start
	if n == 0 {
		return Shaped{Engines: SingleEngine(e)}, nil
	}

	f := e.face()
	defer e.facePool.Put(f)

	script := req.Script
	if script == 0 {
		script = language.LookupScript(req.Text[req.Start])
	}
	input := shaping.Input{
		Text:      req.Text,
		RunStart:  req.Start,
		RunEnd:    req.End,
		Direction: mapDirection(req.Direction),
		Face:      f,
		Size:      e.size,
		Script:    script,
		Language:  e.lang,
	}
	hb := e.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	e.shaperPool.Put(hb)

	if len(output.Glyphs) == 0 {
		return Shaped{}, ErrNoGlyphs
	}
	s := e.convert(req, output.Glyphs)
	if err := s.Validate(n); err != nil {
		return Shaped{}, err
	}
	return s, nil
}

// convert turns HarfBuzz output (visual order) into logical-order glyphs
// with a log cluster map.
func (e *GoTextEngine) convert(req ShapeRequest, glyphs []shaping.Glyph) Shaped {
	n := req.End - req.Start
	count := len(glyphs)
	rtl := req.Direction == DirectionRTL

	s := Shaped{
		Glyphs:      NewGlyphLayout(count),
		LogClusters: make([]int, n),
		Engines:     SingleEngine(e),
	}
	for i := range s.LogClusters {
		s.LogClusters[i] = -1
	}

	prevCluster := -1
	for i := range count {
		g := glyphs[i]
		if rtl {
			g = glyphs[count-1-i]
		}
		s.Glyphs.Glyphs[i] = GlyphID(g.GlyphID)
		s.Glyphs.Advances[i] = metric.FromInt26_6(g.Advance)

		start := g.TextIndex() != prevCluster
		s.Glyphs.Attributes[i].ClusterStart = start
		if !start {
			continue
		}
		prevCluster = g.TextIndex()
		for r := g.TextIndex(); r < g.TextIndex()+g.RunesCount(); r++ {
			if idx := r - req.Start; idx >= 0 && idx < n && s.LogClusters[idx] < 0 {
				s.LogClusters[idx] = i
			}
		}
		if g.RunesCount() == 1 {
			switch r := req.Text[g.TextIndex()]; {
			case r == SoftHyphen:
				// HarfBuzz hides default ignorables; keep the hyphen that
				// shows when a line breaks here.
				s.Glyphs.Glyphs[i] = GlyphID(e.hyphen)
				s.Glyphs.Advances[i] = e.hyphenW
				s.Glyphs.Attributes[i].DontPrint = true
			case IsInvisible(r):
				s.Glyphs.Attributes[i].DontPrint = true
			}
		}
	}

	// Characters HarfBuzz merged away take the cluster before them.
	prev := 0
	for i, g := range s.LogClusters {
		if g < prev {
			g = prev
		}
		s.LogClusters[i] = g
		prev = g
	}
	return s
}

// mapDirection converts our Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}
