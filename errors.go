package paramcache

import "errors"

var (
	// ErrParameterNotFound reports that the backend does not recognize a
	// requested parameter name. Store implementations wrap it so callers
	// can test with errors.Is.
	ErrParameterNotFound = errors.New("parameter not found")

	// ErrInvalidParameter reports a malformed parameter declaration. It is
	// surfaced eagerly at declaration time, never on the read path.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnimplemented is returned when the refresh machinery is invoked
	// without a concrete fetch behind it.
	ErrUnimplemented = errors.New("refresh not implemented")
)
