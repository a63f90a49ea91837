package tempfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pathwise/fsprobe/mocks"
	"github.com/pathwise/fsprobe/pkg/filesystem"
	fserrors "github.com/pathwise/fsprobe/pkg/fs-errors"
)

func TestNewCreatesMissingAncestors(t *testing.T) {
	fs := filesystem.NewFileSystem()
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	f, err := New(fs, dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(f.Name()))
	_, statErr := os.Stat(f.Name())
	assert.NoError(t, statErr)

	require.NoError(t, f.Close())
}

func TestCloseRemovesFile(t *testing.T) {
	fs := filesystem.NewFileSystem()
	dir := t.TempDir()

	f, err := New(fs, dir)
	require.NoError(t, err)

	_, err = f.Write([]byte("scratch data"))
	require.NoError(t, err)

	name := f.Name()
	require.NoError(t, f.Close())

	_, statErr := os.Stat(name)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTwoFilesDoNotCollide(t *testing.T) {
	fs := filesystem.NewFileSystem()
	dir := t.TempDir()

	first, err := New(fs, dir)
	require.NoError(t, err)
	defer first.Close()

	second, err := New(fs, dir)
	require.NoError(t, err)
	defer second.Close()

	assert.NotEqual(t, first.Name(), second.Name())
}

func TestKeepLeavesFileInPlace(t *testing.T) {
	fs := filesystem.NewFileSystem()
	dir := t.TempDir()

	f, err := New(fs, dir)
	require.NoError(t, err)

	f.Keep()
	name := f.Name()
	require.NoError(t, f.Close())

	_, statErr := os.Stat(name)
	assert.NoError(t, statErr)
}

func TestNewPropagatesDirectoryCreationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fs := mocks.NewMockFileSystem(ctrl)
	fs.EXPECT().MkdirAll("/no/permission", gomock.Any()).Return(os.ErrPermission)

	_, err := New(fs, "/no/permission")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fserrors.KindSystem))
	assert.True(t, errors.Is(err, os.ErrPermission))
}
