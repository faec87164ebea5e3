package fixture

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	fixtureLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(fixtureLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// File is a parsed fixture file: a list of paragraphs.
type File struct {
	Paragraphs []*Paragraph `parser:"@@*"`
}

// Paragraph describes one paragraph, its layout options and the widths of
// its lines.
type Paragraph struct {
	Pos        lexer.Position `parser:""`
	Name       string         `parser:"'paragraph' @Ident?"`
	Text       StringLiteral  `parser:"@String"`
	Statements []*Statement   `parser:"'{' @@* '}'"`
}

// Statement is one setting inside a paragraph block.
type Statement struct {
	Pos lexer.Position `parser:""`

	Width     []float64     `parser:"  'width' @Number+"`
	Columns   *int          `parser:"| 'columns' @Number"`
	Wrap      *string       `parser:"| 'wrap' @Ident"`
	Align     *string       `parser:"| 'align' @Ident"`
	Direction *string       `parser:"| 'direction' @('ltr' | 'rtl')"`
	Flags     []string      `parser:"| 'flags' @('trailing-spaces' | 'show-separators' | 'force-justify')+"`
	Cache     bool          `parser:"| @'cache'"`
	TabStop   *float64      `parser:"| 'tabstop' @Number"`
	Tab       *TabStmt      `parser:"| 'tab' @@"`
	Level     *LevelStmt    `parser:"| 'level' @@"`
	Object    *ObjectStmt   `parser:"| 'object' @@"`
	Format    *FormatStmt   `parser:"| 'format' @@"`
	Expect    *ExpectStmt   `parser:"| 'expect' @@"`
	Position  *PositionStmt `parser:"| 'position' @@"`
}

// TabStmt is an explicit tab stop.
type TabStmt struct {
	Position  float64        `parser:"@Number"`
	Type      string         `parser:"@('left' | 'right' | 'center' | 'delimiter')?"`
	Delimiter *StringLiteral `parser:"@String?"`
}

// LevelStmt overrides the embedding level of a range of characters.
type LevelStmt struct {
	Start  int `parser:"@Number"`
	Length int `parser:"@Number"`
	Level  int `parser:"@Number"`
}

// ObjectStmt sizes the inline object at a text position.
type ObjectStmt struct {
	At      int     `parser:"@Number"`
	Width   float64 `parser:"'width' @Number"`
	Ascent  float64 `parser:"( 'ascent' @Number )?"`
	Descent float64 `parser:"( 'descent' @Number )?"`
}

// FormatStmt decorates a range of characters.
type FormatStmt struct {
	Start  int      `parser:"@Number"`
	Length int      `parser:"@Number"`
	Styles []string `parser:"@('underline' | 'overline' | 'strikeout')*"`
}

// ExpectStmt states the expected extent of the next line.
type ExpectStmt struct {
	From     int `parser:"@Number"`
	Length   int `parser:"@Number"`
	Trailing int `parser:"@Number?"`
}

// PositionStmt states the expected x of a cursor position on the line
// holding it.
type PositionStmt struct {
	At int     `parser:"@Number"`
	X  float64 `parser:"'x' @Number"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse reads a fixture file. name is used in error positions.
func Parse(name string, r io.Reader) (*File, error) {
	f, err := fileParser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	return f, nil
}

// ParseString parses fixture source held in a string.
func ParseString(src string) (*File, error) {
	return Parse("", strings.NewReader(src))
}

// Lookup returns the paragraph with the given name.
func (f *File) Lookup(name string) (*Paragraph, bool) {
	for _, p := range f.Paragraphs {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}
