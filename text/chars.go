package text

import "unicode"

// Characters with a layout meaning.
const (
	Tab                = '\t'
	LineFeed           = '\n'
	SoftHyphen         = '\u00AD'
	NoBreakSpace       = '\u00A0'
	FigureSpace        = '\u2007'
	NarrowNoBreakSpace = '\u202F'
	ZeroWidthSpace     = '\u200B'
	LineSeparator      = '\u2028'
	ParagraphSeparator = '\u2029'
	ObjectReplacement  = '\uFFFC'
	Hyphen             = '-'
)

// KindOf returns the item kind a character forces, or KindPlain.
func KindOf(r rune) ItemKind {
	switch r {
	case Tab:
		return KindTab
	case ObjectReplacement:
		return KindObject
	case LineFeed, LineSeparator, ParagraphSeparator:
		return KindLineSeparator
	}
	return KindPlain
}

// IsBreakableSpace reports whether r is whitespace a line may break after.
// No-break spaces are not.
func IsBreakableSpace(r rune) bool {
	switch r {
	case NoBreakSpace, FigureSpace, NarrowNoBreakSpace:
		return false
	}
	return unicode.IsSpace(r)
}

// IsInvisible reports whether r produces no visible glyph. Engines mark
// the glyphs of such characters DontPrint.
func IsInvisible(r rune) bool {
	if r == SoftHyphen || r == Tab || KindOf(r) == KindLineSeparator {
		return true
	}
	return unicode.Is(unicode.Cf, r) || unicode.Is(unicode.Cc, r)
}
