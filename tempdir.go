package tempdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// dirPerm is the mode used for every directory created by this package.
const dirPerm = 0o755

// TempDir is a handle to a directory under the build-output root.
//
// The directory is left in place when the handle is released unless
// AutoRemove was called. A handle must be released exactly once, typically
// with defer or through NewT/WithPathT which register the release with the
// test.
type TempDir struct {
	logger zerolog.Logger
	// base is the namespace directory.
	base string
	path string
	// created is the topmost directory of the relative path that did not
	// exist before construction, or empty if path already existed. Pruning
	// of empty parents never goes above it.
	created string

	autoRemove atomic.Bool
	once       sync.Once
}

// Option configures a TempDir at construction.
type Option func(*TempDir)

// WithLogger sets the logger used for creation and cleanup events.
func WithLogger(logger zerolog.Logger) Option {
	return func(td *TempDir) {
		td.logger = logger
	}
}

// New creates a randomly named directory
// <OUT_DIR>/outdir-tempdir-tmp/test-<uuid>.
//
// Returns ErrEnvironmentUnavailable if OUT_DIR is not set, or a wrapped I/O
// error if the directory cannot be created.
func New(opts ...Option) (*TempDir, error) {
	return create(defaultLeafPrefix+uuid.NewString(), opts)
}

// WithPath creates the directory <OUT_DIR>/outdir-tempdir-tmp/<relative>,
// including any missing intermediate directories. Calling it again with the
// same relative path returns a handle to the same, already existing,
// directory.
//
// relative must be a non-empty relative path without ".." segments;
// otherwise an error matching ErrInvalidPath is returned and nothing is
// created.
func WithPath(relative string, opts ...Option) (*TempDir, error) {
	leaf, err := cleanRelative(relative)
	if err != nil {
		return nil, err
	}
	return create(leaf, opts)
}

func create(leaf string, opts []Option) (*TempDir, error) {
	loc, err := resolve(leaf)
	if err != nil {
		return nil, err
	}

	td := &TempDir{
		logger: zerolog.Nop(),
		base:   loc.Base,
		path:   loc.full(),
	}
	for _, opt := range opts {
		opt(td)
	}
	td.logger = td.logger.With().Str("component", "tempdir").Str("path", td.path).Logger()

	td.created = firstMissing(loc.Base, loc.Leaf)
	if err := os.MkdirAll(td.path, dirPerm); err != nil {
		return nil, fmt.Errorf("create temp dir %s: %w", td.path, err)
	}
	td.logger.Debug().Msg("temp dir ready")
	return td, nil
}

// AutoRemove marks the directory for recursive removal on Release and
// returns the same handle.
func (td *TempDir) AutoRemove() *TempDir {
	td.autoRemove.Store(true)
	return td
}

// Path returns the absolute path of the managed directory.
func (td *TempDir) Path() string {
	return td.path
}

// Release ends the handle's scope. If AutoRemove was called, the directory
// and everything beneath it is removed, along with the intermediate
// directories this handle created that are left empty. Directories that
// existed before the handle was constructed are never pruned. Failures are
// logged and otherwise ignored. Only the first call has any effect.
//
// Pruning is not synchronized with other handles: a concurrent WithPath
// below a directory being pruned may fail with an I/O error.
func (td *TempDir) Release() {
	td.once.Do(func() {
		if !td.autoRemove.Load() {
			td.logger.Debug().Msg("temp dir kept")
			return
		}
		if err := os.RemoveAll(td.path); err != nil {
			td.logger.Debug().Err(err).Msg("failed to remove temp dir")
			return
		}
		td.pruneEmptyParents()
		td.logger.Debug().Msg("temp dir removed")
	})
}

// pruneEmptyParents removes now-empty directories between path and
// created, inclusive. os.Remove refuses non-empty directories.
func (td *TempDir) pruneEmptyParents() {
	if td.created == "" || td.created == td.path {
		return
	}
	prefix := td.base + string(filepath.Separator)
	for dir := filepath.Dir(td.path); strings.HasPrefix(dir, prefix); dir = filepath.Dir(dir) {
		if err := os.Remove(dir); err != nil || dir == td.created {
			return
		}
	}
}

// firstMissing returns the topmost directory on the way from base to
// base/leaf that does not exist yet, or "" if base/leaf exists.
func firstMissing(base, leaf string) string {
	dir := base
	for _, seg := range strings.Split(leaf, string(filepath.Separator)) {
		dir = filepath.Join(dir, seg)
		if _, err := os.Lstat(dir); errors.Is(err, fs.ErrNotExist) {
			return dir
		}
	}
	return ""
}
