// Package text holds the data model and the font collaborators of the layout
// engine.
//
// A paragraph is described by:
//
//   - ScriptItem: a run of characters sharing script, embedding level, and
//     kind (plain text, tab, inline object, or line separator)
//   - GlyphLayout: an arena of shaped glyphs referenced by items through
//     GlyphStart/GlyphCount
//   - CharAttributes: per-character grapheme, line-break, word, and
//     whitespace properties
//
// Shaping is delegated to an Engine. Three engines are provided:
//
//   - GoTextEngine: HarfBuzz shaping via github.com/go-text/typesetting
//   - SfntEngine: one glyph per character via golang.org/x/image/font/sfnt
//   - FallbackEngine: an ordered list of engines, choosing per character
//     the first engine that has a glyph
//
// # Example usage
//
//	engine, err := text.NewGoTextEngine(goregular.TTF, 12)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runes := []rune("Hello, שלום")
//	items := text.Itemize(runes, text.ItemizeOptions{Direction: text.DirectionLTR})
//	shaped, err := engine.Shape(text.ShapeRequest{
//	    Text:      runes,
//	    Start:     items[0].Position,
//	    End:       items[0].End(),
//	    Direction: items[0].Direction(),
//	    Script:    items[0].Script,
//	})
//
// Engines cache shaped runs in an LRU cache and are safe for concurrent use.
package text
