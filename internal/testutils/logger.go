// Package testutils provides helpers shared by the tests of this module:
// a test logger and fixtures that point the build-output environment
// variable at a per-test directory. It is intended for tests only.
package testutils

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// Logger returns a zerolog.Logger configured for testing.
func Logger(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(os.Stdout).Level(zerolog.DebugLevel).With().Str("test", t.Name()).Logger()
}
