package text

import (
	"sort"

	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
)

// ItemizeOptions controls Itemize.
type ItemizeOptions struct {
	// Direction is the paragraph base direction.
	Direction Direction

	// Levels optionally supplies one embedding level per character. When
	// nil, levels are resolved with golang.org/x/text/unicode/bidi.
	Levels []uint8

	// Boundaries are extra positions where an item must start, such as the
	// edges of format ranges.
	Boundaries []int
}

// Itemize splits runes into script items at changes of embedding level,
// script, and at opts.Boundaries. Tabs, object replacement characters, and
// line separators each become a single-character item of their own kind.
func Itemize(runes []rune, opts ItemizeOptions) []ScriptItem {
	n := len(runes)
	if n == 0 {
		return nil
	}

	levels := opts.Levels
	if len(levels) != n {
		levels = BidiLevels(runes, opts.Direction)
	}
	scripts := resolveScripts(runes)

	forced := make(map[int]bool, len(opts.Boundaries))
	for _, b := range opts.Boundaries {
		if b > 0 && b < n {
			forced[b] = true
		}
	}

	items := make([]ScriptItem, 0, 4)
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && !forced[i] &&
			levels[i] == levels[start] && scripts[i] == scripts[start] &&
			KindOf(runes[i]) == KindPlain && KindOf(runes[start]) == KindPlain {
			continue
		}
		items = append(items, ScriptItem{
			Position:  start,
			Length:    i - start,
			BidiLevel: levels[start],
			Script:    scripts[start],
			Kind:      KindOf(runes[start]),
			Format:    -1,
		})
		start = i
	}
	return items
}

// BidiLevels resolves an embedding level per character with the Unicode
// bidirectional algorithm. Left-to-right runs of a right-to-left paragraph
// get level 2.
func BidiLevels(runes []rune, base Direction) []uint8 {
	levels := make([]uint8, len(runes))
	baseLevel := uint8(0)
	opt := bidi.DefaultDirection(bidi.LeftToRight)
	if base == DirectionRTL {
		baseLevel = 1
		opt = bidi.DefaultDirection(bidi.RightToLeft)
	}
	for i := range levels {
		levels[i] = baseLevel
	}

	var p bidi.Paragraph
	if _, err := p.SetString(string(runes), opt); err != nil {
		return levels
	}
	ordering, err := p.Order()
	if err != nil {
		return levels
	}

	// run.Pos() returns rune indices, end inclusive.
	for i := range ordering.NumRuns() {
		run := ordering.Run(i)
		start, end := run.Pos()
		level := uint8(0)
		switch {
		case run.Direction() == bidi.RightToLeft:
			level = 1
		case baseLevel == 1:
			level = 2
		}
		for j := max(start, 0); j <= end && j < len(levels); j++ {
			levels[j] = level
		}
	}
	return levels
}

// resolveScripts returns the script of each rune. Inherited characters take
// the script before them; Common characters take the script of their
// neighbors when both sides agree or only one side is known.
func resolveScripts(runes []rune) []language.Script {
	scripts := make([]language.Script, len(runes))
	last := language.Common
	for i, r := range runes {
		s := language.LookupScript(r)
		switch s {
		case language.Inherited:
			s = last
		case language.Common:
		default:
			last = s
		}
		scripts[i] = s
	}

	last = language.Common
	for i := range scripts {
		if scripts[i] != language.Common {
			last = scripts[i]
			continue
		}
		scripts[i] = resolveCommonScript(last, nextConcreteScript(scripts, i+1))
	}
	return scripts
}

func nextConcreteScript(scripts []language.Script, start int) language.Script {
	for j := start; j < len(scripts); j++ {
		if scripts[j] != language.Common {
			return scripts[j]
		}
	}
	return language.Common
}

func resolveCommonScript(prev, next language.Script) language.Script {
	switch {
	case prev != language.Common:
		return prev
	case next != language.Common:
		return next
	default:
		return language.Common
	}
}

// ItemBoundaries returns the sorted, deduplicated start and end positions of
// ranges, for ItemizeOptions.Boundaries.
func ItemBoundaries(ranges [][2]int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, r := range ranges {
		for _, b := range r {
			if !seen[b] {
				seen[b] = true
				out = append(out, b)
			}
		}
	}
	sort.Ints(out)
	return out
}
