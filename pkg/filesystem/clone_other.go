//go:build !linux && !darwin

package filesystem

import "github.com/arthur-debert/photosnap/pkg/errors"

func cloneFile(src, dst string) error {
	return errors.Newf(errors.ErrCloneUnsupported, "clones are not supported on this platform (%s)", src)
}
