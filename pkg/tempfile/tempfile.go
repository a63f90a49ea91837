// Package tempfile materializes exclusively-owned temporary files.
package tempfile

import (
	"os"

	"github.com/pathwise/fsprobe/pkg/filesystem"
	fserrors "github.com/pathwise/fsprobe/pkg/fs-errors"
)

const dirPermission = os.FileMode(0o755)

// File is an exclusively-owned temporary file. Closing the handle
// removes the file from disk.
type File struct {
	f    *os.File
	fs   filesystem.FileSystem
	keep bool
}

// New creates directory dir together with any missing ancestors, then
// creates a fresh temporary file inside it. The returned handle is owned
// by the caller alone.
func New(fs filesystem.FileSystem, dir string) (*File, error) {
	if err := fs.MkdirAll(dir, dirPermission); err != nil {
		return nil, fserrors.Wrap(fserrors.KindSystem, "create_temporary_file", dir, err)
	}
	f, err := fs.CreateTemp(dir, "tmp")
	if err != nil {
		return nil, fserrors.Wrap(fserrors.KindSystem, "create_temporary_file", dir, err)
	}
	return &File{f: f, fs: fs}, nil
}

// Name returns the full path of the temporary file.
func (t *File) Name() string { return t.f.Name() }

func (t *File) Write(p []byte) (int, error) { return t.f.Write(p) }

func (t *File) Read(p []byte) (int, error) { return t.f.Read(p) }

// Keep disables removal on Close, leaving the file in place for the
// caller.
func (t *File) Keep() { t.keep = true }

// Close closes the file and, unless Keep was called, removes it from
// disk. The handle must not be used afterwards.
func (t *File) Close() error {
	closeErr := t.f.Close()
	if t.keep {
		return closeErr
	}
	removeErr := t.fs.Remove(t.f.Name())
	if closeErr != nil {
		return closeErr
	}
	return removeErr
}
