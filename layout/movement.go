package layout

import (
	"strings"

	"github.com/gogpu/paragraph/text"
)

// CursorMove selects the unit of logical cursor movement.
type CursorMove uint8

const (
	// SkipCharacters moves by grapheme cluster.
	SkipCharacters CursorMove = iota
	// SkipWords moves to the start of the next or previous word.
	SkipWords
)

// wordSeparators end a word for SkipWords movement.
const wordSeparators = ".,?!@#$:;-<>[](){}=/+%&^*'\"`~|\\"

func (l *TextLayout) atWordSeparator(pos int) bool {
	return strings.ContainsRune(wordSeparators, l.runes[pos])
}

func (l *TextLayout) atSpace(pos int) bool {
	return l.attrs[pos].WhiteSpace
}

// IsValidCursorPosition reports whether the cursor may be placed at pos.
func (l *TextLayout) IsValidCursorPosition(pos int) bool {
	if pos < 0 || pos > len(l.runes) {
		return false
	}
	return pos == len(l.runes) || l.attrs[pos].GraphemeBoundary
}

// NextCursorPosition returns the cursor position after pos in logical
// order.
func (l *TextLayout) NextCursorPosition(pos int, mode CursorMove) int {
	n := len(l.runes)
	if pos < 0 || pos >= n {
		return pos
	}
	if mode == SkipCharacters {
		pos++
		for pos < n && !l.attrs[pos].GraphemeBoundary {
			pos++
		}
		return pos
	}

	if l.atWordSeparator(pos) {
		pos++
		for pos < n && l.atWordSeparator(pos) {
			pos++
		}
	} else {
		for pos < n && !l.atSpace(pos) && !l.atWordSeparator(pos) {
			pos++
		}
	}
	for pos < n && l.atSpace(pos) {
		pos++
	}
	return pos
}

// PreviousCursorPosition returns the cursor position before pos in logical
// order.
func (l *TextLayout) PreviousCursorPosition(pos int, mode CursorMove) int {
	if pos <= 0 || pos > len(l.runes) {
		return pos
	}
	if mode == SkipCharacters {
		pos--
		for pos > 0 && !l.attrs[pos].GraphemeBoundary {
			pos--
		}
		return pos
	}

	for pos > 0 && l.atSpace(pos-1) {
		pos--
	}
	if pos > 0 && l.atWordSeparator(pos-1) {
		pos--
		for pos > 0 && l.atWordSeparator(pos-1) {
			pos--
		}
	} else {
		for pos > 0 && !l.atSpace(pos-1) && !l.atWordSeparator(pos-1) {
			pos--
		}
	}
	return pos
}

// RightCursorPosition returns the cursor position visually right of pos.
func (l *TextLayout) RightCursorPosition(pos int) int {
	return l.visualMove(pos, true)
}

// LeftCursorPosition returns the cursor position visually left of pos.
func (l *TextLayout) LeftCursorPosition(pos int) int {
	return l.visualMove(pos, false)
}

func (l *TextLayout) hasBidi() bool {
	if l.opts.Direction == text.DirectionRTL {
		return true
	}
	for i := range l.Items() {
		if l.items[i].BidiLevel > 0 {
			return true
		}
	}
	return false
}

// visualMove moves the cursor one position in visual order along the
// insertion points of its line, continuing on the adjacent line at the
// ends.
func (l *TextLayout) visualMove(pos int, right bool) int {
	rtl := l.opts.Direction == text.DirectionRTL
	if !l.hasBidi() {
		if right != rtl {
			return l.NextCursorPosition(pos, SkipCharacters)
		}
		return l.PreviousCursorPosition(pos, SkipCharacters)
	}

	line := l.LineForTextPosition(pos)
	if !line.IsValid() {
		return pos
	}
	i := line.index
	points := l.insertionPoints(i)
	for k, p := range points {
		if p != pos {
			continue
		}
		if right && k+1 < len(points) {
			return points[k+1]
		}
		if !right && k > 0 {
			return points[k-1]
		}
		if right != rtl {
			if i+1 < len(l.lines) {
				next := l.insertionPoints(i + 1)
				if len(next) > 0 {
					if rtl {
						return next[len(next)-1]
					}
					return next[0]
				}
			}
		} else if i > 0 {
			prev := l.insertionPoints(i - 1)
			if len(prev) > 0 {
				if rtl {
					return prev[0]
				}
				return prev[len(prev)-1]
			}
		}
		break
	}
	return pos
}

// insertionPoints lists the grapheme boundaries of line i from left to
// right. The last line also holds the end of the text.
func (l *TextLayout) insertionPoints(i int) []int {
	sl := &l.lines[i]
	end := sl.End()
	last := i == len(l.lines)-1
	var points []int
	for _, it := range l.visualItems(sl.From, end) {
		si := &l.items[it]
		from, to := max(sl.From, si.Position), min(end, si.End())
		if last && to == len(l.runes) {
			to++
		}
		if si.IsRTL() {
			for p := to - 1; p >= from; p-- {
				if l.IsValidCursorPosition(p) {
					points = append(points, p)
				}
			}
		} else {
			for p := from; p < to; p++ {
				if l.IsValidCursorPosition(p) {
					points = append(points, p)
				}
			}
		}
	}
	return points
}
