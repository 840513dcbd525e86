// Package fetch runs the per-resource work of a snapshot.
//
// For every selected resource of every asset, the Dispatcher decides
// synchronously what to do (keep an existing file, write a dry-run
// placeholder, reuse the base copy through a clone, hard link or symlink,
// skip it, or fetch it) and then executes all decisions concurrently, one
// goroutine per resource, joining on a single barrier. Each resource ends
// with exactly one success or failure in the run statistics, except skipped
// resources which the base snapshot already satisfies.
package fetch
