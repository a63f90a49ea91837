//go:build unix

// Package filesystemstats answers capacity questions about mounted
// filesystems through the statfs(2) family of calls.
package filesystemstats

import (
	"errors"

	"golang.org/x/sys/unix"

	fserrors "github.com/pathwise/fsprobe/pkg/fs-errors"
)

// unixStatfs is used to mock the unix.Statfs function.
var unixStatfs = unix.Statfs

// retryable reports whether a statfs failure was caused by signal
// interruption and should be retried. Kept as its own predicate so the
// retry condition stays testable on its own.
func retryable(err error) bool {
	return errors.Is(err, unix.EINTR)
}

// StatVFS returns the filesystem statistics for the filesystem containing
// path. The underlying call is retried unconditionally while it keeps
// failing with EINTR; any other failure is fatal and reported with the
// offending path and errno attached.
func StatVFS(path string) (unix.Statfs_t, error) {
	var stat unix.Statfs_t
	for {
		err := unixStatfs(path, &stat)
		if err == nil {
			return stat, nil
		}
		if retryable(err) {
			continue
		}
		return stat, fserrors.Wrap(fserrors.KindStatVFS, "statvfs", path, err)
	}
}

// AvailableBytes returns the number of bytes available to unprivileged
// callers on the filesystem containing path. Bavail is used rather than
// Bfree so root-reserved blocks are not counted.
func AvailableBytes(path string) (uint64, error) {
	stat, err := StatVFS(path)
	if err != nil {
		return 0, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil //nolint:unconvert // field widths differ between unix platforms
}

// EnoughSpaceInDirectory reports whether the filesystem containing path
// has at least dataSize bytes free. This is an advisory check, not a
// reservation: nothing prevents the space from disappearing before a
// subsequent write.
func EnoughSpaceInDirectory(path string, dataSize uint64) (bool, error) {
	free, err := AvailableBytes(path)
	if err != nil {
		return false, err
	}
	return dataSize <= free, nil
}
