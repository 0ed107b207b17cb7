package tempdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// EnvOutDir is the environment variable holding the build-output root.
	EnvOutDir = "OUT_DIR"

	// Namespace is the directory created directly under the build-output root.
	// All managed directories live beneath it so they never collide with
	// build artifacts.
	Namespace = "outdir-tempdir-tmp"

	// defaultLeafPrefix prefixes randomly named directories.
	defaultLeafPrefix = "test-"
)

// location is a fully resolved target for a managed directory.
type location struct {
	// Base is <root>/<Namespace>.
	Base string `validate:"required,abspath"`
	// Leaf is the cleaned path of the directory relative to Base.
	Leaf string `validate:"required,relpath"`
}

// full returns the absolute path of the managed directory.
func (l location) full() string {
	return filepath.Join(l.Base, l.Leaf)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("abspath", func(fl validator.FieldLevel) bool {
		return filepath.IsAbs(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register abspath validation: %v", err))
	}
	if err := v.RegisterValidation("relpath", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		return p != "." && filepath.IsLocal(p)
	}); err != nil {
		panic(fmt.Sprintf("register relpath validation: %v", err))
	}
	return v
}

// outDir returns the absolute build-output root read from EnvOutDir.
func outDir() (string, error) {
	root, ok := os.LookupEnv(EnvOutDir)
	if !ok || strings.TrimSpace(root) == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrEnvironmentUnavailable, EnvOutDir)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s=%q: %v", ErrEnvironmentUnavailable, EnvOutDir, root, err)
	}
	return abs, nil
}

// Root returns the namespace directory under the build-output root, i.e. the
// common parent of every directory this package creates.
func Root() (string, error) {
	root, err := outDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, Namespace), nil
}

// cleanRelative normalizes a caller-supplied relative path. Current-dir
// segments and repeated separators are dropped; anything that could resolve
// outside the namespace directory, or to the namespace directory itself, is
// rejected.
func cleanRelative(relative string) (string, error) {
	if strings.TrimSpace(relative) == "" {
		return "", &InvalidPathError{Path: relative, Reason: "empty path"}
	}
	if filepath.IsAbs(relative) || filepath.VolumeName(relative) != "" || isSeparator(rune(relative[0])) {
		return "", &InvalidPathError{Path: relative, Reason: "contains root dir"}
	}

	segments := strings.FieldsFunc(relative, isSeparator)
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		switch s {
		case ".":
			continue
		case "..":
			return "", &InvalidPathError{Path: relative, Reason: "contains parent dir"}
		default:
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "", &InvalidPathError{Path: relative, Reason: "resolves to the namespace root"}
	}
	return filepath.Join(parts...), nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == filepath.Separator
}

// resolve builds the location of leaf under the build-output root. It never
// touches the filesystem.
func resolve(leaf string) (location, error) {
	root, err := outDir()
	if err != nil {
		return location{}, err
	}
	loc := location{
		Base: filepath.Join(root, Namespace),
		Leaf: leaf,
	}
	if err := validate.Struct(loc); err != nil {
		return location{}, locationError(loc, err)
	}
	return loc, nil
}

// locationError maps a validation failure of loc to this package's errors.
// Only a bad Leaf is reported as an invalid path; a bad Base means the
// build-output root itself is unusable.
func locationError(loc location, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate temp dir location: %w", err)
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Leaf":
		reason := "escapes the namespace directory"
		if fe.Tag() == "required" {
			reason = "empty path"
		}
		return &InvalidPathError{Path: loc.Leaf, Reason: reason}
	default:
		return fmt.Errorf("%w: namespace directory %q is not an absolute path", ErrEnvironmentUnavailable, loc.Base)
	}
}
