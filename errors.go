package tempdir

import (
	"errors"
	"fmt"
)

var (
	// ErrEnvironmentUnavailable is returned when the build-output root is not
	// provided by the surrounding build or test harness.
	ErrEnvironmentUnavailable = errors.New("build output root unavailable")

	// ErrInvalidPath is returned when a caller-supplied relative path is empty,
	// absolute, or could escape the namespace directory.
	ErrInvalidPath = errors.New("invalid temp dir path")
)

// InvalidPathError describes why a relative path was rejected.
type InvalidPathError struct {
	// Path is the value the caller passed in.
	Path string
	// Reason is a short human readable explanation, e.g. "contains parent dir".
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidPath, e.Path, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidPath).
func (e *InvalidPathError) Unwrap() error {
	return ErrInvalidPath
}
