package testutils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// OutDirFixture points the environment variable key at a fresh directory
// owned by the test and returns that directory. The previous value is
// restored when the test finishes.
//
// Tests using it cannot run in parallel, see testing.T.Setenv.
func OutDirFixture(t *testing.T, key string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(key, dir)
	return dir
}

// UnsetEnv removes key from the environment for the duration of the test.
func UnsetEnv(t *testing.T, key string) {
	t.Helper()
	// Setenv registers the restore of the original value.
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key), "failed to unset "+key)
}
