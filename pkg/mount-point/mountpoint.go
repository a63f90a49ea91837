//go:build unix

// Package mountpoint locates the mount boundaries that contain filesystem
// paths and names the filesystems attached at them.
package mountpoint

import (
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/pathwise/fsprobe/pkg/filesystem"
	fserrors "github.com/pathwise/fsprobe/pkg/fs-errors"
)

// unixStat is used to mock the unix.Stat function.
var unixStat = unix.Stat

// DeviceID returns the device identifier of the filesystem containing
// path. Two paths with equal device identifiers reside on the same
// mounted filesystem. The value is only meaningful for comparison.
func DeviceID(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unixStat(path, &st); err != nil {
		return 0, fserrors.Wrap(fserrors.KindSystem, "stat", path, err)
	}
	return uint64(st.Dev), nil //nolint:unconvert // Dev width differs between unix platforms
}

// Resolver finds mount points by walking paths upward and watching for
// device-identifier changes. It holds no state between calls.
type Resolver struct {
	fs filesystem.FileSystem
}

func NewResolver(fs filesystem.FileSystem) *Resolver {
	return &Resolver{fs: fs}
}

// MountPoint returns the mount point of the filesystem containing
// absolutePath. The path must be absolute; a relative path is a caller
// bug and fails with a logic error before anything touches the disk.
//
// The path is canonicalized first, then walked upward one component at a
// time. If a parent has a different device identifier than the path, the
// device containing the path is mounted at the path, so the walk stops
// there. Reaching the root without a device change means the root
// filesystem contains the path.
func (r *Resolver) MountPoint(absolutePath string) (string, error) {
	if !filepath.IsAbs(absolutePath) {
		return "", fserrors.Logicf("mount_point", "path %q is relative, it's a bug", absolutePath)
	}

	canonical, err := r.fs.EvalSymlinks(filepath.Clean(absolutePath))
	if err != nil {
		return "", fserrors.Wrap(fserrors.KindSystem, "mount_point", absolutePath, err)
	}

	deviceID, err := DeviceID(canonical)
	if err != nil {
		return "", err
	}

	// If /some/path/to/dir and /some/path/to have different device ids,
	// then the device holding /some/path/to/dir/filename is mounted at
	// /some/path/to/dir.
	current := canonical
	for {
		parent := filepath.Dir(current)
		if parent == current {
			// Reached the filesystem root.
			return current, nil
		}
		parentID, err := DeviceID(parent)
		if err != nil {
			return "", err
		}
		if parentID != deviceID {
			return current, nil
		}
		current = parent
	}
}
