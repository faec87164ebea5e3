package text

import "github.com/go-text/typesetting/segmenter"

// CharAttributes are the per-character properties layout needs. Boundary
// flags refer to the position just before the character.
type CharAttributes struct {
	// GraphemeBoundary: a cursor may be placed before this character.
	GraphemeBoundary bool
	// LineBreak: a line may break before this character.
	LineBreak bool
	// MandatoryBreak: a line must break before this character.
	MandatoryBreak bool
	// WhiteSpace: the character is breakable whitespace.
	WhiteSpace bool
	// WordStart and WordEnd delimit words for word-wise cursor movement.
	WordStart bool
	WordEnd   bool
}

// ComputeAttributes segments runes with the Unicode grapheme (UAX #29),
// line-break (UAX #14), and word boundary rules.
func ComputeAttributes(runes []rune) []CharAttributes {
	n := len(runes)
	attrs := make([]CharAttributes, n)
	if n == 0 {
		return attrs
	}

	var seg segmenter.Segmenter
	seg.Init(runes)

	graphemes := seg.GraphemeIterator()
	for graphemes.Next() {
		attrs[graphemes.Grapheme().Offset].GraphemeBoundary = true
	}

	lines := seg.LineIterator()
	for lines.Next() {
		l := lines.Line()
		if l.Offset > 0 {
			attrs[l.Offset].LineBreak = true
		}
		if end := l.Offset + len(l.Text); l.IsMandatoryBreak && end < n {
			attrs[end].MandatoryBreak = true
		}
	}

	words := seg.WordIterator()
	for words.Next() {
		w := words.Word()
		attrs[w.Offset].WordStart = true
		if end := w.Offset + len(w.Text); end < n {
			attrs[end].WordEnd = true
		}
	}

	for i, r := range runes {
		attrs[i].WhiteSpace = IsBreakableSpace(r)
	}
	attrs[0].GraphemeBoundary = true
	return attrs
}
