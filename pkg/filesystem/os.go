package filesystem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/logging"
	"github.com/arthur-debert/photosnap/pkg/types"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *osFS) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (o *osFS) Create(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *osFS) Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}

func (o *osFS) Link(oldname, newname string) error {
	return os.Link(oldname, newname)
}

// Clone tries a copy-on-write clone first and falls back to a byte copy
// when the volume cannot share extents between the two files.
func (o *osFS) Clone(src, dst string) error {
	err := cloneFile(src, dst)
	if err == nil {
		return nil
	}
	if !errors.IsErrorCode(err, errors.ErrCloneUnsupported) {
		return err
	}
	logger := logging.GetLogger("filesystem")
	logger.Trace().
		Str("src", src).
		Str("dst", dst).
		Msg("clone unsupported, copying")
	return CopyFile(o, src, dst)
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}

func (o *osFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// Capabilities probes the volume by creating a scratch directory inside
// path and attempting each link primitive there.
func (o *osFS) Capabilities(path string) (types.VolumeCapabilities, error) {
	var caps types.VolumeCapabilities

	probe, err := os.MkdirTemp(path, ".photosnap-probe-")
	if err != nil {
		return caps, errors.Wrapf(err, errors.ErrFileAccess, "cannot probe volume at %s", path)
	}
	defer func() { _ = os.RemoveAll(probe) }()

	src := filepath.Join(probe, "source")
	if err := os.WriteFile(src, []byte("probe"), 0644); err != nil {
		return caps, errors.Wrapf(err, errors.ErrFileCreate, "cannot probe volume at %s", path)
	}

	caps.Symlinks = os.Symlink(src, filepath.Join(probe, "symlink")) == nil
	caps.Hardlinks = os.Link(src, filepath.Join(probe, "hardlink")) == nil
	caps.Clones = cloneFile(src, filepath.Join(probe, "clone")) == nil

	logger := logging.GetLogger("filesystem")
	logger.Debug().
		Str("path", path).
		Bool("symlinks", caps.Symlinks).
		Bool("hardlinks", caps.Hardlinks).
		Bool("clones", caps.Clones).
		Msg("volume capabilities")

	return caps, nil
}
