// Package filesystem provides filesystem implementations for photosnap.
//
// This package contains implementations of the types.FS interface: the
// OS filesystem, with copy-on-write clones where the volume supports them,
// and an afero-backed filesystem used by tests. It also holds the small
// helpers the snapshot pipeline shares (existence checks, byte comparison).
package filesystem
