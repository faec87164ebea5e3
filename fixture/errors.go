package fixture

import "errors"

// Sentinel errors for the fixture package.
var (
	// ErrInvalidValue is returned by Build for an unknown wrap mode,
	// alignment or tab delimiter.
	ErrInvalidValue = errors.New("fixture: invalid value")

	// ErrOutOfRange is returned by Build when a level, object or format
	// statement refers to characters outside the text.
	ErrOutOfRange = errors.New("fixture: range outside the text")

	// ErrNotObject is returned by Build when an object statement does not
	// point at U+FFFC.
	ErrNotObject = errors.New("fixture: no object replacement character at position")

	// ErrMismatch is returned by Verify when the layout differs from the
	// expectations of the paragraph.
	ErrMismatch = errors.New("fixture: layout does not match expectation")
)
