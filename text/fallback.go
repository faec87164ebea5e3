package text

import (
	"strings"
	"unicode"

	"github.com/gogpu/paragraph/metric"
)

// FallbackEngine combines engines in priority order, as supplied by a font
// database. Each character is shaped by the first engine that has a glyph
// for it; characters no engine covers use the first engine. Spaces, marks and
// format controls stay with the engine of the text around them.
//
// The glyphs of one item can therefore come from several engines; Shape
// records which through a fallback EngineSelection. Glyph ids are only
// meaningful together with that selection.
//
// FallbackEngine is safe for concurrent use if its engines are.
type FallbackEngine struct {
	engines []Engine
	name    string
}

// NewFallbackEngine creates a FallbackEngine. Returns ErrEmptyEngines if no
// engine is given.
func NewFallbackEngine(engines ...Engine) (*FallbackEngine, error) {
	if len(engines) == 0 {
		return nil, ErrEmptyEngines
	}
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.Name()
	}
	return &FallbackEngine{
		engines: engines,
		name:    "fallback(" + strings.Join(names, ",") + ")",
	}, nil
}

// Engines returns the engines in priority order.
func (m *FallbackEngine) Engines() []Engine { return m.engines }

// Name implements Engine.
func (m *FallbackEngine) Name() string { return m.name }

// Metrics implements Engine. Returns metrics from the first engine.
func (m *FallbackEngine) Metrics() LineMetrics { return m.engines[0].Metrics() }

// AverageCharWidth implements Engine. Returns the value of the first engine.
func (m *FallbackEngine) AverageCharWidth() metric.Fixed { return m.engines[0].AverageCharWidth() }

// RightBearing implements Engine for glyphs of the first engine. Use the
// EngineSelection of a shaped item to resolve other glyphs.
func (m *FallbackEngine) RightBearing(g GlyphID) metric.Fixed { return m.engines[0].RightBearing(g) }

// MinRightBearing implements Engine. Returns the minimum over all engines.
func (m *FallbackEngine) MinRightBearing() metric.Fixed {
	var rb metric.Fixed
	for _, e := range m.engines {
		rb = metric.Min(rb, e.MinRightBearing())
	}
	return rb
}

// HasGlyph implements Engine. Returns true if any engine has the glyph.
func (m *FallbackEngine) HasGlyph(r rune) bool {
	for _, e := range m.engines {
		if e.HasGlyph(r) {
			return true
		}
	}
	return false
}

// engineFor returns the index of the first engine that has r.
func (m *FallbackEngine) engineFor(r rune) int {
	for i, e := range m.engines {
		if e.HasGlyph(r) {
			return i
		}
	}
	return 0
}

// keepsEngine reports whether r should not cause an engine switch.
func keepsEngine(r rune) bool {
	return unicode.IsSpace(r) || unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf)
}

// Shape implements Engine.
func (m *FallbackEngine) Shape(req ShapeRequest) (Shaped, error) {
	if err := req.check(); err != nil {
		return Shaped{}, err
	}

	type run struct{ start, end, engine int }
	var runs []run
	for i := req.Start; i < req.End; i++ {
		r := req.Text[i]
		if len(runs) > 0 && keepsEngine(r) {
			runs[len(runs)-1].end = i + 1
			continue
		}
		idx := m.engineFor(r)
		if len(runs) > 0 && runs[len(runs)-1].engine == idx {
			runs[len(runs)-1].end = i + 1
			continue
		}
		runs = append(runs, run{start: i, end: i + 1, engine: idx})
	}

	out := Shaped{LogClusters: make([]int, 0, req.End-req.Start)}
	var spans []EngineSpan
	for _, rn := range runs {
		sub, err := m.engines[rn.engine].Shape(ShapeRequest{
			Text:      req.Text,
			Start:     rn.start,
			End:       rn.end,
			Direction: req.Direction,
			Script:    req.Script,
		})
		if err != nil {
			return Shaped{}, err
		}
		base := out.Glyphs.Append(sub.Glyphs)
		for _, g := range sub.LogClusters {
			out.LogClusters = append(out.LogClusters, base+g)
		}
		sel := sub.Engines
		if sel.IsZero() {
			sel = SingleEngine(m.engines[rn.engine])
		}
		spans = append(spans, sel.Offset(base).Spans(base, base+sub.Glyphs.Len())...)
	}
	out.Engines = FallbackSelection(spans)
	if len(spans) == 0 {
		out.Engines = SingleEngine(m.engines[0])
	}
	return out, nil
}
