package types

import (
	"context"
	"io"
	"io/fs"
)

// FS is the filesystem interface required for photosnap operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Link operations
	Symlink(oldname, newname string) error
	Link(oldname, newname string) error
	// Clone makes dst a copy of src, sharing storage where the volume supports it.
	Clone(src, dst string) error

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Capabilities reports which link primitives the volume holding path supports.
	Capabilities(path string) (VolumeCapabilities, error)
}

// VolumeCapabilities describes the link primitives a volume supports
type VolumeCapabilities struct {
	Symlinks  bool
	Hardlinks bool
	Clones    bool
}

// Catalog enumerates a media library
type Catalog interface {
	// Authorize verifies the library can be read. It runs before anything else.
	Authorize(ctx context.Context) error

	// ListByMediaType lists assets of one kind, newest creation date first.
	ListByMediaType(ctx context.Context, query ListQuery) ([]Asset, error)

	// ListByIDs lists the assets matching the given local identifiers.
	ListByIDs(ctx context.Context, ids []string) ([]Asset, error)

	// ResourcesOf returns every resource attached to an asset.
	ResourcesOf(asset Asset) []RawResource
}

// ContentProvider transfers the bytes of one resource to a local path
type ContentProvider interface {
	Fetch(ctx context.Context, res RawResource, dest string, networkAllowed bool) error
}
