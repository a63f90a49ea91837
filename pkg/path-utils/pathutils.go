// Package pathutils compares filesystem paths at component granularity.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pathwise/fsprobe/pkg/filesystem"
	fserrors "github.com/pathwise/fsprobe/pkg/fs-errors"
)

// WeaklyCanonical resolves path to an absolute, symlink-free form while
// tolerating nonexistent trailing components: symlinks are resolved for
// the longest prefix that exists on disk and the remainder is appended
// after lexical cleaning. The walk keeps the raw component sequence, so
// a ".." following a symlink steps out of the symlink's resolved target
// rather than being collapsed lexically against the link name. Errors
// other than nonexistence (for example a permission failure while
// resolving) are reported as system errors.
func WeaklyCanonical(fs filesystem.FileSystem, path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		wd, err := os.Getwd()
		if err != nil {
			return "", fserrors.Wrap(fserrors.KindSystem, "canonicalize", path, err)
		}
		// Concatenate instead of Join so ".." segments survive until
		// symlink resolution has seen the components before them.
		abs = wd + string(filepath.Separator) + abs
	}

	parts := components(abs)
	sep := string(filepath.Separator)
	for i := len(parts); i > 0; i-- {
		candidate := sep + strings.Join(parts[:i], sep)
		resolved, err := fs.EvalSymlinks(candidate)
		if err == nil {
			return filepath.Join(append([]string{resolved}, parts[i:]...)...), nil
		}
		if !fs.IsNotExist(err) {
			return "", fserrors.Wrap(fserrors.KindSystem, "canonicalize", candidate, err)
		}
	}
	return filepath.Join(append([]string{sep}, parts...)...), nil
}

// components splits a path into its non-empty components. "." and ".."
// entries are preserved.
func components(path string) []string {
	var out []string
	for _, c := range strings.Split(path, string(filepath.Separator)) {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// PathStartsWith reports whether path is contained within prefixPath:
// equal to it or a descendant of it. Both inputs are weakly
// canonicalized, then the component sequences are compared in lock-step;
// containment holds iff every prefix component matches the corresponding
// path component. The comparison is purely lexical after normalization,
// so "/a/bb" is not contained in "/a/b".
func PathStartsWith(fs filesystem.FileSystem, path, prefixPath string) (bool, error) {
	absPath, err := WeaklyCanonical(fs, path)
	if err != nil {
		return false, err
	}
	absPrefix, err := WeaklyCanonical(fs, prefixPath)
	if err != nil {
		return false, err
	}

	pathParts := components(absPath)
	prefixParts := components(absPrefix)
	if len(prefixParts) > len(pathParts) {
		return false, nil
	}
	for i, part := range prefixParts {
		if pathParts[i] != part {
			return false, nil
		}
	}
	return true, nil
}
