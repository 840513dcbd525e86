// Package paths resolves the filesystem locations photosnap works with.
//
// A PathSet carries the three roots of a run:
//
//   - parent: the user-supplied folder holding dated snapshot folders
//   - base: the earlier snapshot read by append, incremental and verify runs
//   - dest: the snapshot being written
//
// Resource records carry slash-separated relative paths; DestPath and
// BasePath turn them into OS paths under the matching root.
//
// # Environment Variables
//
//   - PHOTOSNAP_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/photosnap)
//   - PHOTOSNAP_CACHE_DIR: Override XDG cache directory (default: $XDG_CACHE_HOME/photosnap)
package paths
