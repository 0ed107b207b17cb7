package tempdir

import "testing"

// NewT is New for use inside tests. It fails the test if the directory
// cannot be created and registers Release with tb.Cleanup, so the
// auto-remove flag is evaluated when the test finishes.
func NewT(tb testing.TB, opts ...Option) *TempDir {
	tb.Helper()
	td, err := New(opts...)
	if err != nil {
		tb.Fatalf("failed to create temp dir: %v", err)
	}
	tb.Cleanup(td.Release)
	return td
}

// WithPathT is WithPath for use inside tests; see NewT.
func WithPathT(tb testing.TB, relative string, opts ...Option) *TempDir {
	tb.Helper()
	td, err := WithPath(relative, opts...)
	if err != nil {
		tb.Fatalf("failed to create temp dir %q: %v", relative, err)
	}
	tb.Cleanup(td.Release)
	return td
}
