package tempdir

import (
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thep2p/outdir-tempdir/internal/testutils"
)

// fatalRecorder is a testing.TB that records Fatalf instead of failing the
// enclosing test.
type fatalRecorder struct {
	testing.TB
	msg      string
	cleanups []func()
}

func (f *fatalRecorder) Helper() {}

func (f *fatalRecorder) Fatalf(format string, args ...any) {
	f.msg = fmt.Sprintf(format, args...)
	runtime.Goexit()
}

func (f *fatalRecorder) Cleanup(fn func()) {
	f.cleanups = append(f.cleanups, fn)
}

// TestWithPathT_ReleasesOnCleanup validates the handle is released when the
// owning test ends, honouring an AutoRemove made after registration.
func TestWithPathT_ReleasesOnCleanup(t *testing.T) {
	root := testutils.OutDirFixture(t, EnvOutDir)

	var removed, kept string
	t.Run("scope", func(t *testing.T) {
		td := WithPathT(t, "scoped/removed")
		removed = td.Path()
		require.DirExists(t, removed)
		// flag flipped after the cleanup was registered
		td.AutoRemove()

		kept = WithPathT(t, "scoped/kept").Path()
	})

	require.NoDirExists(t, removed)
	require.DirExists(t, kept)
	require.Equal(t, filepath.Join(root, Namespace, "scoped", "kept"), kept)
}

// TestNewT_ReleasesOnCleanup validates NewT registers its release.
func TestNewT_ReleasesOnCleanup(t *testing.T) {
	testutils.OutDirFixture(t, EnvOutDir)

	var path string
	t.Run("scope", func(t *testing.T) {
		path = NewT(t, WithLogger(testutils.Logger(t))).AutoRemove().Path()
		require.DirExists(t, path)
	})
	require.NoDirExists(t, path)
}

// TestHelpers_FailOnError validates that construction errors fail the test
// and register no cleanup.
func TestHelpers_FailOnError(t *testing.T) {
	testutils.UnsetEnv(t, EnvOutDir)

	rec := &fatalRecorder{}
	testutils.RequireCallMustReturnWithinTimeout(t, func() {
		NewT(rec)
	}, testutils.DefaultReturnTimeout, "NewT with missing environment")
	require.Contains(t, rec.msg, ErrEnvironmentUnavailable.Error())
	require.Empty(t, rec.cleanups)

	testutils.OutDirFixture(t, EnvOutDir)
	rec = &fatalRecorder{}
	testutils.RequireCallMustReturnWithinTimeout(t, func() {
		WithPathT(rec, "../escape")
	}, testutils.DefaultReturnTimeout, "WithPathT with traversal")
	require.Contains(t, rec.msg, ErrInvalidPath.Error())
	require.Empty(t, rec.cleanups)
}
