package filesystem

import (
	"bytes"
	"io"
	"path/filepath"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/types"
)

const compareChunk = 64 * 1024

// Exists reports whether anything, including a dangling symlink, is at path.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}

// IsDir reports whether path is an existing directory.
func IsDir(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// EnsureParent creates the parent directory of path.
func EnsureParent(fsys types.FS, path string) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dir)
	}
	return nil
}

// CopyFile streams src into a newly created dst.
func CopyFile(fsys types.FS, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src)
	}
	defer func() { _ = in.Close() }()

	out, err := fsys.Create(dst)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot create %s", dst)
	}
	// No partial file is left at dst
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = fsys.Remove(dst)
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		_ = fsys.Remove(dst)
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot close %s", dst)
	}
	return nil
}

// SameContent compares two files byte for byte. Files of different sizes
// are unequal without reading either.
func SameContent(fsys types.FS, a, b string) (bool, error) {
	infoA, err := fsys.Stat(a)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", a)
	}
	infoB, err := fsys.Stat(b)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", b)
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	fa, err := fsys.Open(a)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", a)
	}
	defer func() { _ = fa.Close() }()
	fb, err := fsys.Open(b)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", b)
	}
	defer func() { _ = fb.Close() }()

	bufA := make([]byte, compareChunk)
	bufB := make([]byte, compareChunk)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		doneA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		doneB := errB == io.EOF || errB == io.ErrUnexpectedEOF
		if errA != nil && !doneA {
			return false, errors.Wrapf(errA, errors.ErrFileAccess, "cannot read %s", a)
		}
		if errB != nil && !doneB {
			return false, errors.Wrapf(errB, errors.ErrFileAccess, "cannot read %s", b)
		}
		if doneA || doneB {
			return doneA && doneB, nil
		}
	}
}
