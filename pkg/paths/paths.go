package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/photosnap/pkg/errors"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// PathSet holds the parent, base and destination roots of a run. The zero
// base means no base snapshot is in play.
type PathSet struct {
	parent string
	base   string
	dest   string
}

// NewPathSet normalizes parent and returns a PathSet rooted at it.
func NewPathSet(parent string) (PathSet, error) {
	norm, err := NormalizePath(parent)
	if err != nil {
		return PathSet{}, err
	}
	return PathSet{parent: norm}, nil
}

// WithBase returns a copy whose base root is ref. Relative refs are taken
// under the parent root.
func (p PathSet) WithBase(ref string) PathSet {
	p.base = p.resolve(ref)
	return p
}

// WithDest returns a copy whose destination root is dir. Relative dirs are
// taken under the parent root.
func (p PathSet) WithDest(dir string) PathSet {
	p.dest = p.resolve(dir)
	return p
}

func (p PathSet) resolve(ref string) string {
	ref = expandHome(ref)
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(p.parent, ref)
}

// ParentRoot returns the folder holding the snapshot folders
func (p PathSet) ParentRoot() string { return p.parent }

// BaseRoot returns the base snapshot folder, or "" when there is none
func (p PathSet) BaseRoot() string { return p.base }

// DestRoot returns the snapshot folder being written
func (p PathSet) DestRoot() string { return p.dest }

// HasBase reports whether a base snapshot is set
func (p PathSet) HasBase() bool { return p.base != "" }

// DestPath maps a record's relative path under the destination root
func (p PathSet) DestPath(rel string) string {
	return filepath.Join(p.dest, filepath.FromSlash(rel))
}

// BasePath maps a record's relative path under the base root. It returns
// "" when no base is set.
func (p PathSet) BasePath(rel string) string {
	if p.base == "" {
		return ""
	}
	return filepath.Join(p.base, filepath.FromSlash(rel))
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (p PathSet) MarshalZerologObject(e *zerolog.Event) {
	e.Str("parent", p.parent).Str("dest", p.dest)
	if p.base != "" {
		e.Str("base", p.base)
	}
}

// NormalizePath expands ~, makes path absolute and cleans it.
func NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := expandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// IsWithin reports whether path lies inside root.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
