//go:build unix

package probe

import (
	"context"
	"errors"

	filesystemstats "github.com/pathwise/fsprobe/pkg/filesystem-stats"
	fserrors "github.com/pathwise/fsprobe/pkg/fs-errors"
	"github.com/pathwise/fsprobe/pkg/hwinfo"
)

// PathDescription aggregates what fsprobe knows about the storage behind
// a path.
type PathDescription struct {
	Path           string
	MountPoint     string
	FilesystemName string
	AvailableBytes uint64

	// Disk and Partition are set only when the filesystem source is a
	// local block device present in the hardware inventory.
	Disk      string
	Partition string
}

// Describe resolves the mount point containing path, names the
// filesystem mounted there, reports its free space and, when the source
// is a local block device, names the backing disk and partition.
//
// A missing source name (platform without a mount table, or a mount the
// table does not list) leaves FilesystemName empty rather than failing
// the whole description.
func (p *Prober) Describe(ctx context.Context, path string) (*PathDescription, error) {
	mp, err := p.MountPoint(ctx, path)
	if err != nil {
		return nil, err
	}

	desc := &PathDescription{Path: path, MountPoint: mp}

	name, err := p.FilesystemName(ctx, mp)
	switch {
	case err == nil:
		desc.FilesystemName = name
	case errors.Is(err, fserrors.KindNotSupported), errors.Is(err, fserrors.KindNotFound):
		// The description stays useful without a source name.
	default:
		return nil, err
	}

	avail, err := filesystemstats.AvailableBytes(mp)
	if err != nil {
		return nil, err
	}
	desc.AvailableBytes = avail

	if desc.FilesystemName != "" {
		inventory, err := p.hw.Block()
		if err != nil {
			// Advisory enrichment only.
			p.log.V(2).Info("Block inventory unavailable", "err", err)
			return desc, nil
		}
		part, disk := hwinfo.FindPartition(inventory, desc.FilesystemName)
		if disk != nil {
			desc.Disk = disk.Name
		}
		if part != nil {
			desc.Partition = part.Name
		}
	}
	return desc, nil
}
