//go:build linux

package mountpoint

import (
	"k8s.io/mount-utils"

	fserrors "github.com/pathwise/fsprobe/pkg/fs-errors"
)

// DefaultMountsFile is the live kernel mount table. /etc/mtab is a
// symlink to it on current systems.
const DefaultMountsFile = "/proc/mounts"

// listMounts is used to mock mount.ListProcMounts.
var listMounts = mount.ListProcMounts

// FilesystemName returns the source name (device or pseudo-filesystem
// identifier) of the filesystem mounted at mountPoint, read from
// mountsFile (DefaultMountsFile when empty).
//
// The table is re-read on every call and scanned for an entry whose mount
// directory matches mountPoint exactly. No path normalization is applied:
// callers should pass a mount point as produced by Resolver.MountPoint to
// avoid spurious misses.
func FilesystemName(mountsFile, mountPoint string) (string, error) {
	if mountsFile == "" {
		mountsFile = DefaultMountsFile
	}
	mounts, err := listMounts(mountsFile)
	if err != nil {
		return "", fserrors.Wrap(fserrors.KindSystem, "filesystem_name", mountsFile, err)
	}
	for _, mp := range mounts {
		if mp.Path == mountPoint {
			return mp.Device, nil
		}
	}
	return "", fserrors.New(fserrors.KindNotFound, "filesystem_name", mountPoint)
}
