package testutils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// DefaultReturnTimeout bounds how long helpers wait for a call to return.
const DefaultReturnTimeout = 10 * time.Second

// RequireCallMustReturnWithinTimeout invokes f on its own goroutine and fails
// the test if f does not return, or exit its goroutine, before timeout.
func RequireCallMustReturnWithinTimeout(
	t *testing.T,
	f func(),
	timeout time.Duration,
	failureMsg string) {
	t.Helper()
	done := make(chan struct{})

	go func() {
		// Deferred so runtime.Goexit, as done by FailNow, still closes done.
		defer close(done)
		f()
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		require.Fail(t, fmt.Sprintf("function did not return on time: %s", failureMsg))
	}
}
