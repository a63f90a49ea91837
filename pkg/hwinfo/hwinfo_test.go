package hwinfo

import (
	"testing"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlockInfo() *ghw.BlockInfo {
	return &ghw.BlockInfo{
		Disks: []*block.Disk{
			{
				Name: "sda",
				Partitions: []*block.Partition{
					{Name: "sda1", MountPoint: "/"},
					{Name: "sda2", MountPoint: "/boot"},
				},
			},
			{
				Name: "sdb",
				Partitions: []*block.Partition{
					{Name: "sdb1", MountPoint: "/mnt/data"},
				},
			},
		},
	}
}

func TestFindPartition(t *testing.T) {
	info := testBlockInfo()

	part, disk := FindPartition(info, "/dev/sdb1")
	require.NotNil(t, part)
	require.NotNil(t, disk)
	assert.Equal(t, "sdb1", part.Name)
	assert.Equal(t, "sdb", disk.Name)
}

func TestFindPartitionWholeDisk(t *testing.T) {
	info := testBlockInfo()

	part, disk := FindPartition(info, "/dev/sda")
	assert.Nil(t, part)
	require.NotNil(t, disk)
	assert.Equal(t, "sda", disk.Name)
}

func TestFindPartitionNonBlockSource(t *testing.T) {
	info := testBlockInfo()

	tests := []struct {
		name   string
		device string
	}{
		{name: "pseudo filesystem", device: "tmpfs"},
		{name: "unknown device", device: "/dev/sdz9"},
		{name: "nfs source", device: "fileserver:/export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part, disk := FindPartition(info, tt.device)
			assert.Nil(t, part)
			assert.Nil(t, disk)
		})
	}
}
