package layout

import (
	"strings"

	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// WrapMode specifies where lines may break.
type WrapMode uint8

const (
	// NoWrap never breaks lines; only separators end a line.
	NoWrap WrapMode = iota

	// ManualWrap fills lines without checking the width; lines still end
	// at separators and at the column limit of SetNumColumns.
	ManualWrap

	// WrapAtWordBoundary breaks at line-break opportunities only.
	// Long words overflow the line.
	WrapAtWordBoundary

	// WrapAnywhere breaks at any grapheme boundary.
	WrapAnywhere

	// WrapAtWordBoundaryOrAnywhere breaks at word boundaries and falls
	// back to WrapAnywhere for lines that would overflow.
	WrapAtWordBoundaryOrAnywhere
)

// String returns the string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case NoWrap:
		return "NoWrap"
	case ManualWrap:
		return "ManualWrap"
	case WrapAtWordBoundary:
		return "WrapAtWordBoundary"
	case WrapAnywhere:
		return "WrapAnywhere"
	case WrapAtWordBoundaryOrAnywhere:
		return "WrapAtWordBoundaryOrAnywhere"
	default:
		return unknownStr
	}
}

// ParseWrapMode parses the short names used by fixtures and the command
// line: none, manual, word, anywhere and word-or-anywhere.
func ParseWrapMode(s string) (WrapMode, bool) {
	switch strings.ToLower(s) {
	case "none", "nowrap":
		return NoWrap, true
	case "manual":
		return ManualWrap, true
	case "word":
		return WrapAtWordBoundary, true
	case "anywhere":
		return WrapAnywhere, true
	case "word-or-anywhere":
		return WrapAtWordBoundaryOrAnywhere, true
	}
	return WrapAtWordBoundary, false
}

// Alignment specifies the horizontal alignment of lines within their width.
type Alignment uint8

const (
	// AlignLeft aligns lines to the left edge (default).
	AlignLeft Alignment = iota
	// AlignRight aligns lines to the right edge.
	AlignRight
	// AlignCenter centers lines.
	AlignCenter
	// AlignJustify stretches whitespace so lines fill their width.
	AlignJustify
	// AlignLeading aligns to the left in LTR paragraphs and to the right
	// in RTL paragraphs.
	AlignLeading
	// AlignTrailing is the opposite of AlignLeading.
	AlignTrailing
)

// String returns the string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignRight:
		return "Right"
	case AlignCenter:
		return "Center"
	case AlignJustify:
		return "Justify"
	case AlignLeading:
		return "Leading"
	case AlignTrailing:
		return "Trailing"
	default:
		return unknownStr
	}
}

// ParseAlignment parses left, right, center, justify, leading and trailing.
func ParseAlignment(s string) (Alignment, bool) {
	for a := AlignLeft; a <= AlignTrailing; a++ {
		if strings.EqualFold(s, a.String()) {
			return a, true
		}
	}
	return AlignLeft, false
}

// resolve maps the direction-relative alignments to absolute ones.
func (a Alignment) resolve(dir text.Direction) Alignment {
	switch a {
	case AlignLeading:
		if dir == text.DirectionRTL {
			return AlignRight
		}
		return AlignLeft
	case AlignTrailing:
		if dir == text.DirectionRTL {
			return AlignLeft
		}
		return AlignRight
	}
	return a
}

// Flags are boolean layout switches.
type Flags uint8

const (
	// IncludeTrailingSpaces counts trailing whitespace in the natural
	// width of a line.
	IncludeTrailingSpaces Flags = 1 << iota

	// ShowSeparators renders line and paragraph separators with a
	// visible glyph.
	ShowSeparators

	// ForceJustify justifies the last line and lines ending in a
	// separator too.
	ForceJustify
)

// TabType specifies how text is placed relative to a tab stop.
type TabType uint8

const (
	// TabLeft starts the text at the stop.
	TabLeft TabType = iota
	// TabRight ends the text at the stop.
	TabRight
	// TabCenter centers the text on the stop.
	TabCenter
	// TabDelimiter aligns the delimiter character on the stop.
	TabDelimiter
)

// String returns the string representation of the tab type.
func (t TabType) String() string {
	switch t {
	case TabLeft:
		return "Left"
	case TabRight:
		return "Right"
	case TabCenter:
		return "Center"
	case TabDelimiter:
		return "Delimiter"
	default:
		return unknownStr
	}
}

// TabStop is an explicit tab position measured from the start of the line.
type TabStop struct {
	Position  metric.Fixed
	Type      TabType
	Delimiter rune // used by TabDelimiter
}

// StyleOverlay holds the decorations a format range applies to glyph runs.
type StyleOverlay struct {
	Underline bool
	Overline  bool
	StrikeOut bool
}

// FormatRange applies an overlay to the characters [Start, Start+Length).
// Item boundaries are forced at the edges of every range.
type FormatRange struct {
	Start   int
	Length  int
	Overlay StyleOverlay
}

// End returns the position after the range.
func (f FormatRange) End() int { return f.Start + f.Length }

// ObjectSizer reports the size of the inline object at text position pos.
// The object is represented by U+FFFC in the text.
type ObjectSizer func(pos int) (width, ascent, descent metric.Fixed)

// defaultTabStopDistance is the distance between implicit tab stops.
var defaultTabStopDistance = metric.FromInt(80)

// Options configures a TextLayout.
type Options struct {
	// WrapMode selects where lines may break.
	WrapMode WrapMode

	// Alignment of lines within their width.
	Alignment Alignment

	// Direction is the paragraph base direction.
	Direction text.Direction

	// Flags are additional layout switches.
	Flags Flags

	// TabStopDistance is the distance between implicit tab stops after
	// the last explicit one. Zero or negative values use 80.
	TabStopDistance metric.Fixed

	// Tabs are explicit tab stops, sorted by position.
	Tabs []TabStop

	// ObjectSizer sizes inline objects. Without it objects have zero width
	// and the line metrics of the engine.
	ObjectSizer ObjectSizer

	// CacheGlyphs keeps shaped glyphs after EndLayout. Otherwise they are
	// released and reshaped on demand by later queries.
	CacheGlyphs bool

	// Formats are decoration ranges reported on glyph runs.
	Formats []FormatRange
}

// DefaultOptions returns sensible default layout options.
func DefaultOptions() Options {
	return Options{
		WrapMode:        WrapAtWordBoundary,
		Alignment:       AlignLeft,
		Direction:       text.DirectionLTR,
		TabStopDistance: defaultTabStopDistance,
	}
}

// Option configures a TextLayout created with New.
type Option func(*Options)

// WithWrapMode sets the wrap mode.
func WithWrapMode(m WrapMode) Option {
	return func(o *Options) {
		o.WrapMode = m
	}
}

// WithAlignment sets the line alignment.
func WithAlignment(a Alignment) Option {
	return func(o *Options) {
		o.Alignment = a
	}
}

// WithDirection sets the paragraph base direction.
func WithDirection(d text.Direction) Option {
	return func(o *Options) {
		o.Direction = d
	}
}

// WithFlags sets the layout flags.
func WithFlags(f Flags) Option {
	return func(o *Options) {
		o.Flags = f
	}
}

// WithTabStopDistance sets the distance between implicit tab stops.
func WithTabStopDistance(d metric.Fixed) Option {
	return func(o *Options) {
		o.TabStopDistance = d
	}
}

// WithTabs sets explicit tab stops.
func WithTabs(tabs ...TabStop) Option {
	return func(o *Options) {
		o.Tabs = append([]TabStop(nil), tabs...)
	}
}

// WithObjectSizer sets the function sizing inline objects.
func WithObjectSizer(s ObjectSizer) Option {
	return func(o *Options) {
		o.ObjectSizer = s
	}
}

// WithCache keeps shaped glyphs after EndLayout.
func WithCache(enabled bool) Option {
	return func(o *Options) {
		o.CacheGlyphs = enabled
	}
}

// WithFormats sets the decoration ranges.
func WithFormats(formats ...FormatRange) Option {
	return func(o *Options) {
		o.Formats = append([]FormatRange(nil), formats...)
	}
}

func (o *Options) tabStopDistance() metric.Fixed {
	if o.TabStopDistance <= 0 {
		return defaultTabStopDistance
	}
	return o.TabStopDistance
}
