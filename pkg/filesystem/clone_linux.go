//go:build linux

package filesystem

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/arthur-debert/photosnap/pkg/errors"
)

// cloneFile shares src's extents with a new file at dst through FICLONE.
// Volumes without reflink support report ErrCloneUnsupported.
func cloneFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCloneCreate, "cannot create %s", dst)
	}

	if err := unix.IoctlFileClone(int(out.Fd()), int(in.Fd())); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return errors.Wrapf(err, errors.ErrCloneUnsupported, "cannot clone %s", src)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrCloneCreate, "cannot close %s", dst)
	}
	return nil
}
