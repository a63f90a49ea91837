package hwinfo

import (
	"strings"

	"github.com/jaypipes/ghw"
)

// HardwareInfo exposes the host block-device inventory behind an
// interface so tests can substitute a fixed topology.
type HardwareInfo interface {
	Block() (*ghw.BlockInfo, error)
}

type hwInfo struct{}

func (h *hwInfo) Block() (*ghw.BlockInfo, error) {
	return ghw.Block()
}

func NewHardwareInfo() HardwareInfo {
	return &hwInfo{}
}

// FindPartition matches a filesystem source name such as /dev/sdb1 to the
// partition and disk backing it. Partition names in the inventory carry
// no /dev prefix. Returns nils when the source is not a block device
// known to the inventory (pseudo filesystems, network mounts).
func FindPartition(info *ghw.BlockInfo, device string) (*ghw.Partition, *ghw.Disk) {
	name := strings.TrimPrefix(device, "/dev/")
	if name == device {
		// Not a /dev path, nothing to match.
		return nil, nil
	}
	for _, disk := range info.Disks {
		if disk.Name == name {
			return nil, disk
		}
		for _, part := range disk.Partitions {
			if part.Name == name {
				return part, disk
			}
		}
	}
	return nil, nil
}
