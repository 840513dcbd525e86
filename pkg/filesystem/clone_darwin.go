//go:build darwin

package filesystem

import (
	"golang.org/x/sys/unix"

	"github.com/arthur-debert/photosnap/pkg/errors"
)

// cloneFile creates dst as an APFS clone of src.
func cloneFile(src, dst string) error {
	err := unix.Clonefile(src, dst, unix.CLONE_NOFOLLOW)
	if err == nil {
		return nil
	}
	if err == unix.ENOTSUP || err == unix.EXDEV {
		return errors.Wrapf(err, errors.ErrCloneUnsupported, "cannot clone %s", src)
	}
	return errors.Wrapf(err, errors.ErrCloneCreate, "cannot clone %s to %s", src, dst)
}
