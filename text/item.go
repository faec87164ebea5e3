package text

import (
	"sort"

	"github.com/go-text/typesetting/language"

	"github.com/gogpu/paragraph/metric"
)

// ItemKind classifies a script item.
type ItemKind int

const (
	// KindPlain is shaped text.
	KindPlain ItemKind = iota
	// KindTab is a single tab character; its width depends on the tab stops.
	KindTab
	// KindObject is a single U+FFFC standing for an inline object of
	// caller-declared size.
	KindObject
	// KindLineSeparator is a single line or paragraph separator that ends a line.
	KindLineSeparator
)

// String returns the string representation of the kind.
func (k ItemKind) String() string {
	switch k {
	case KindPlain:
		return "Plain"
	case KindTab:
		return "Tab"
	case KindObject:
		return "Object"
	case KindLineSeparator:
		return "LineSeparator"
	default:
		return unknownStr
	}
}

// ScriptItem is a maximal run of characters sharing script, embedding level,
// kind, and format. Items reference their glyphs in the layout's GlyphLayout
// arena by GlyphStart and GlyphCount once shaped.
type ScriptItem struct {
	Position  int // first character
	Length    int
	BidiLevel uint8
	Script    language.Script
	Kind      ItemKind

	// Format indexes the format range covering the item, or -1.
	Format int

	// Set when the item is shaped.
	Shaped     bool
	GlyphStart int
	GlyphCount int
	Engines    EngineSelection

	// Width is the declared width of objects and the computed width of tabs.
	Width   metric.Fixed
	Ascent  metric.Fixed
	Descent metric.Fixed
	Leading metric.Fixed
}

// End returns the position after the last character of the item.
func (si *ScriptItem) End() int { return si.Position + si.Length }

// Direction returns the direction implied by the embedding level.
func (si *ScriptItem) Direction() Direction { return DirectionForLevel(si.BidiLevel) }

// IsRTL reports whether the item runs right-to-left.
func (si *ScriptItem) IsRTL() bool { return si.BidiLevel%2 == 1 }

// ResetShaping forgets the glyphs of the item.
func (si *ScriptItem) ResetShaping() {
	si.Shaped = false
	si.GlyphStart = 0
	si.GlyphCount = 0
	si.Engines = EngineSelection{}
}

// FindItem returns the index of the item containing the character at pos,
// or -1 if pos is before the first item. Positions past the end map to the
// last item.
func FindItem(items []ScriptItem, pos int) int {
	i := sort.Search(len(items), func(i int) bool { return items[i].Position > pos })
	return i - 1
}

// ValidateItems checks that items tile [0, length) in order without gaps.
func ValidateItems(items []ScriptItem, length int) error {
	pos := 0
	for i := range items {
		it := &items[i]
		switch {
		case it.Position != pos:
			return &ItemError{Index: i, Reason: "does not start where the previous item ends"}
		case it.Length <= 0:
			return &ItemError{Index: i, Reason: "is empty"}
		case it.Kind != KindPlain && it.Length != 1:
			return &ItemError{Index: i, Reason: it.Kind.String() + " items must be one character"}
		}
		pos = it.End()
	}
	if pos != length {
		return &ItemError{Index: len(items), Reason: "items end before the text does"}
	}
	return nil
}
