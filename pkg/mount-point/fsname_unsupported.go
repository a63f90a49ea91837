//go:build !linux

package mountpoint

import (
	fserrors "github.com/pathwise/fsprobe/pkg/fs-errors"
)

// DefaultMountsFile is empty here: the platform has no enumerable mount
// table.
const DefaultMountsFile = ""

// FilesystemName requires a live mount table, which only Linux exposes.
// It fails with a not-supported error regardless of input.
func FilesystemName(_, mountPoint string) (string, error) {
	return "", fserrors.New(fserrors.KindNotSupported, "filesystem_name", mountPoint)
}
