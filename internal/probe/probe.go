//go:build unix

// Package probe wires the filesystem queries together with logging,
// metrics and tracing for consumers that want one handle over all of
// them.
package probe

import (
	"context"
	"time"

	"golang.org/x/sys/unix"

	"github.com/pathwise/fsprobe/pkg/filesystem"
	filesystemstats "github.com/pathwise/fsprobe/pkg/filesystem-stats"
	"github.com/pathwise/fsprobe/pkg/hwinfo"
	"github.com/pathwise/fsprobe/pkg/logger"
	mountpoint "github.com/pathwise/fsprobe/pkg/mount-point"
	"github.com/pathwise/fsprobe/pkg/observability"
	pathutils "github.com/pathwise/fsprobe/pkg/path-utils"
	"github.com/pathwise/fsprobe/pkg/tempfile"
)

// Prober answers filesystem-introspection queries. It holds no mutable
// state: every query reads the OS state fresh, so a single Prober is safe
// for concurrent use.
type Prober struct {
	fs         filesystem.FileSystem
	resolver   *mountpoint.Resolver
	hw         hwinfo.HardwareInfo
	log        *logger.Logger
	mountsFile string
}

// NewProber builds a Prober over the real filesystem. mountsFile
// overrides the mount-table location; empty selects the platform
// default.
func NewProber(ctx context.Context, mountsFile string) *Prober {
	fs := filesystem.NewFileSystem()
	return &Prober{
		fs:         fs,
		resolver:   mountpoint.NewResolver(fs),
		hw:         hwinfo.NewHardwareInfo(),
		log:        logger.NewLogger(ctx),
		mountsFile: mountsFile,
	}
}

// MountPoint resolves the mount point containing path. The path must be
// absolute.
func (p *Prober) MountPoint(ctx context.Context, path string) (string, error) {
	log, _, done := p.log.WithMethod("MountPoint")
	defer done()
	start := time.Now()
	_, span := observability.StartSpan(ctx, "MountPoint")

	mp, err := p.resolver.MountPoint(path)

	observability.RecordMetrics(observability.MountPointTotal, observability.MountPointDuration, statusOf(err), start)
	observability.TraceFunctionData(span, "MountPoint", map[string]string{"path": path}, err)
	if err != nil {
		log.Error(err, "Failed to resolve mount point", "path", path)
		return "", err
	}
	log.V(2).Info("Resolved mount point", "path", path, "mountPoint", mp)
	return mp, nil
}

// FilesystemName returns the source name of the filesystem mounted at
// mountPoint, as it appears in the live mount table.
func (p *Prober) FilesystemName(ctx context.Context, mp string) (string, error) {
	log, _, done := p.log.WithMethod("FilesystemName")
	defer done()
	start := time.Now()
	_, span := observability.StartSpan(ctx, "FilesystemName")

	name, err := mountpoint.FilesystemName(p.mountsFile, mp)

	observability.RecordMetrics(observability.FilesystemNameTotal, observability.FilesystemNameDuration, statusOf(err), start)
	observability.TraceFunctionData(span, "FilesystemName", map[string]string{"mountPoint": mp}, err)
	if err != nil {
		log.Error(err, "Failed to look up filesystem name", "mountPoint", mp)
		return "", err
	}
	log.V(2).Info("Found filesystem name", "mountPoint", mp, "name", name)
	return name, nil
}

// StatVFS returns the filesystem statistics for the filesystem
// containing path.
func (p *Prober) StatVFS(ctx context.Context, path string) (unix.Statfs_t, error) {
	log, _, done := p.log.WithMethod("StatVFS")
	defer done()
	start := time.Now()
	_, span := observability.StartSpan(ctx, "StatVFS")

	stat, err := filesystemstats.StatVFS(path)

	observability.RecordMetrics(observability.StatVFSTotal, observability.StatVFSDuration, statusOf(err), start)
	observability.TraceFunctionData(span, "StatVFS", map[string]string{"path": path}, err)
	if err != nil {
		log.Error(err, "Failed to query filesystem statistics", "path", path)
		return stat, err
	}
	return stat, nil
}

// EnoughSpaceInDirectory reports whether the filesystem containing path
// has at least dataSize bytes free.
func (p *Prober) EnoughSpaceInDirectory(ctx context.Context, path string, dataSize uint64) (bool, error) {
	log, _, done := p.log.WithMethod("EnoughSpaceInDirectory")
	defer done()
	start := time.Now()
	_, span := observability.StartSpan(ctx, "EnoughSpaceInDirectory")

	ok, err := filesystemstats.EnoughSpaceInDirectory(path, dataSize)

	observability.RecordMetrics(observability.FreeSpaceTotal, observability.FreeSpaceDuration, statusOf(err), start)
	observability.TraceFunctionData(span, "EnoughSpaceInDirectory", map[string]string{"path": path}, err)
	if err != nil {
		log.Error(err, "Failed to check free space", "path", path)
		return false, err
	}
	return ok, nil
}

// PathStartsWith reports whether path is equal to or a descendant of
// prefixPath.
func (p *Prober) PathStartsWith(ctx context.Context, path, prefixPath string) (bool, error) {
	log, _, done := p.log.WithMethod("PathStartsWith")
	defer done()
	start := time.Now()
	_, span := observability.StartSpan(ctx, "PathStartsWith")

	ok, err := pathutils.PathStartsWith(p.fs, path, prefixPath)

	observability.RecordMetrics(observability.PathContainsTotal, observability.PathContainsDuration, statusOf(err), start)
	observability.TraceFunctionData(span, "PathStartsWith", map[string]string{"path": path, "prefixPath": prefixPath}, err)
	if err != nil {
		log.Error(err, "Failed to check path containment", "path", path, "prefixPath", prefixPath)
		return false, err
	}
	return ok, nil
}

// CreateTemporaryFile ensures dir exists, creating missing ancestors,
// and returns an exclusively-owned temporary file rooted there.
func (p *Prober) CreateTemporaryFile(ctx context.Context, dir string) (*tempfile.File, error) {
	log, _, done := p.log.WithMethod("CreateTemporaryFile")
	defer done()
	start := time.Now()
	_, span := observability.StartSpan(ctx, "CreateTemporaryFile")

	f, err := tempfile.New(p.fs, dir)

	observability.RecordMetrics(observability.TempFileTotal, observability.TempFileDuration, statusOf(err), start)
	observability.TraceFunctionData(span, "CreateTemporaryFile", map[string]string{"dir": dir}, err)
	if err != nil {
		log.Error(err, "Failed to create temporary file", "dir", dir)
		return nil, err
	}
	log.V(2).Info("Created temporary file", "name", f.Name())
	return f, nil
}

func statusOf(err error) string {
	if err != nil {
		return observability.Failed
	}
	return observability.Completed
}
