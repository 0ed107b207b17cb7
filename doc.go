// Package tempdir creates temporary directories for tests inside the
// build-output directory instead of the OS temp directory.
//
// The build-output root is read from the OUT_DIR environment variable and
// every directory is created under <OUT_DIR>/outdir-tempdir-tmp, so cleaning
// the build output also removes stray test directories.
//
// # Usage
//
// A randomly named directory that is removed when the function returns:
//
//	dir, err := tempdir.New()
//	if err != nil {
//	    return err
//	}
//	dir.AutoRemove()
//	defer dir.Release()
//
//	// <OUT_DIR>/outdir-tempdir-tmp/test-<uuid>
//	path := dir.Path()
//
// A fixed path shared across test runs, kept after the test:
//
//	dir := tempdir.WithPathT(t, "fixtures/chain")
//
// Inside tests, NewT and WithPathT fail the test on error and register the
// release with t.Cleanup:
//
//	dir := tempdir.WithPathT(t, "foo/bar/baz").AutoRemove()
//
// # Cleanup
//
// Release removes the directory only when AutoRemove has been called by the
// time Release runs. Removal errors are never reported to the caller.
package tempdir
