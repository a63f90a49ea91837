//go:build linux

package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/block"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathwise/fsprobe/pkg/filesystem"
	fserrors "github.com/pathwise/fsprobe/pkg/fs-errors"
	"github.com/pathwise/fsprobe/pkg/logger"
	mountpoint "github.com/pathwise/fsprobe/pkg/mount-point"
	"github.com/pathwise/fsprobe/pkg/observability"
)

type fakeHardwareInfo struct {
	info *ghw.BlockInfo
	err  error
}

func (f *fakeHardwareInfo) Block() (*ghw.BlockInfo, error) {
	return f.info, f.err
}

func newTestProber(t *testing.T, mountsFile string, hw *fakeHardwareInfo) *Prober {
	t.Helper()
	fs := filesystem.NewFileSystem()
	p := &Prober{
		fs:         fs,
		resolver:   mountpoint.NewResolver(fs),
		hw:         hw,
		log:        logger.NewLogger(context.Background()),
		mountsFile: mountsFile,
	}
	return p
}

func TestMountPointRelativePathIsLogicError(t *testing.T) {
	p := NewProber(context.Background(), "")

	_, err := p.MountPoint(context.Background(), "relative/path")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fserrors.KindLogic))
}

func TestMountPointAndStatVFSOnRealFilesystem(t *testing.T) {
	p := NewProber(context.Background(), "")
	dir := t.TempDir()

	mp, err := p.MountPoint(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(mp))

	stat, err := p.StatVFS(context.Background(), dir)
	require.NoError(t, err)
	assert.NotZero(t, stat.Bsize)

	ok, err := p.EnoughSpaceInDirectory(context.Background(), dir, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPathStartsWith(t *testing.T) {
	p := NewProber(context.Background(), "")

	ok, err := p.PathStartsWith(context.Background(), "/fsprobe-none/var/lib/app", "/fsprobe-none/var/lib")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.PathStartsWith(context.Background(), "/fsprobe-none/var/libx", "/fsprobe-none/var/lib")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFreeSpaceAndContainmentRecordMetrics(t *testing.T) {
	p := NewProber(context.Background(), "")
	dir := t.TempDir()

	freeBefore := testutil.ToFloat64(observability.FreeSpaceTotal.WithLabelValues(observability.Completed))
	containsBefore := testutil.ToFloat64(observability.PathContainsTotal.WithLabelValues(observability.Completed))

	ok, err := p.EnoughSpaceInDirectory(context.Background(), dir, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = p.PathStartsWith(context.Background(), filepath.Join(dir, "sub"), dir)
	require.NoError(t, err)

	assert.Equal(t, freeBefore+1, testutil.ToFloat64(observability.FreeSpaceTotal.WithLabelValues(observability.Completed)))
	assert.Equal(t, containsBefore+1, testutil.ToFloat64(observability.PathContainsTotal.WithLabelValues(observability.Completed)))
}

func TestCreateTemporaryFile(t *testing.T) {
	p := NewProber(context.Background(), "")
	dir := filepath.Join(t.TempDir(), "scratch", "deep")

	f, err := p.CreateTemporaryFile(context.Background(), dir)
	require.NoError(t, err)

	name := f.Name()
	assert.Equal(t, dir, filepath.Dir(name))
	require.NoError(t, f.Close())

	_, statErr := os.Stat(name)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFilesystemNameFromFixtureTable(t *testing.T) {
	mountsFile := filepath.Join(t.TempDir(), "mounts")
	content := "/dev/sdb1 /mnt/data ext4 rw,relatime 0 0\n"
	require.NoError(t, os.WriteFile(mountsFile, []byte(content), 0o600))

	p := newTestProber(t, mountsFile, &fakeHardwareInfo{info: &ghw.BlockInfo{}})

	name, err := p.FilesystemName(context.Background(), "/mnt/data")
	require.NoError(t, err)
	assert.Equal(t, "/dev/sdb1", name)

	_, err = p.FilesystemName(context.Background(), "/mnt/other")
	assert.True(t, errors.Is(err, fserrors.KindNotFound))
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()

	// Resolve the real mount point first so the fixture table can name
	// it.
	resolver := mountpoint.NewResolver(filesystem.NewFileSystem())
	mp, err := resolver.MountPoint(dir)
	require.NoError(t, err)

	mountsFile := filepath.Join(t.TempDir(), "mounts")
	content := fmt.Sprintf("/dev/sda1 %s ext4 rw,relatime 0 0\n", mp)
	require.NoError(t, os.WriteFile(mountsFile, []byte(content), 0o600))

	hw := &fakeHardwareInfo{info: &ghw.BlockInfo{
		Disks: []*block.Disk{
			{
				Name: "sda",
				Partitions: []*block.Partition{
					{Name: "sda1", MountPoint: mp},
				},
			},
		},
	}}

	p := newTestProber(t, mountsFile, hw)

	desc, err := p.Describe(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, mp, desc.MountPoint)
	assert.Equal(t, "/dev/sda1", desc.FilesystemName)
	assert.Equal(t, "sda", desc.Disk)
	assert.Equal(t, "sda1", desc.Partition)
	assert.NotZero(t, desc.AvailableBytes)
}

func TestDescribeToleratesMissingTableEntry(t *testing.T) {
	mountsFile := filepath.Join(t.TempDir(), "mounts")
	require.NoError(t, os.WriteFile(mountsFile, []byte("tmpfs /run tmpfs rw 0 0\n"), 0o600))

	p := newTestProber(t, mountsFile, &fakeHardwareInfo{info: &ghw.BlockInfo{}})

	desc, err := p.Describe(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, desc.FilesystemName)
	assert.Empty(t, desc.Disk)
}
