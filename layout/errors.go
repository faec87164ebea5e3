package layout

import "errors"

// Sentinel errors for the layout package.
var (
	// ErrNilEngine is returned by New when no engine is given.
	ErrNilEngine = errors.New("layout: engine cannot be nil")

	// ErrNotLayingOut is logged when a line is created or bounded outside
	// BeginLayout/EndLayout.
	ErrNotLayingOut = errors.New("layout: not inside BeginLayout/EndLayout")

	// ErrAlreadyLayingOut is logged when BeginLayout is called twice.
	ErrAlreadyLayingOut = errors.New("layout: BeginLayout called while laying out")

	// ErrInvalidLine is logged when a query uses a line that does not exist.
	ErrInvalidLine = errors.New("layout: invalid line")

	// ErrLineClosed is logged when a line other than the last one is rebounded.
	ErrLineClosed = errors.New("layout: line is already closed")
)
