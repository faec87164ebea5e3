package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned when a font size is not positive.
	ErrInvalidSize = errors.New("text: font size must be positive")

	// ErrEmptyEngines is returned when no engines are given to NewFallbackEngine.
	ErrEmptyEngines = errors.New("text: engines cannot be empty")

	// ErrInvalidRange is returned when a shape request range is outside the text.
	ErrInvalidRange = errors.New("text: invalid shaping range")

	// ErrNoGlyphs is returned when a backend produces no glyphs for a non-empty run.
	ErrNoGlyphs = errors.New("text: shaping produced no glyphs")

	// ErrInvalidShaping is returned by Shaped.Validate.
	ErrInvalidShaping = errors.New("text: inconsistent shaping output")

	// ErrInvalidItems is returned when script items do not tile the text.
	ErrInvalidItems = errors.New("text: items do not cover the text")
)

// ItemError reports which script item failed validation.
type ItemError struct {
	Index  int
	Reason string
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("text: item %d: %s", e.Index, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidItems).
func (e *ItemError) Unwrap() error { return ErrInvalidItems }
