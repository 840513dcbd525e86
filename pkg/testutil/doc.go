// Package testutil provides utilities for testing photosnap components.
//
// Key components:
//   - NewTestFS: in-memory types.FS backed by afero
//   - MockCatalog: function-field implementation of types.Catalog
//   - MockProvider: types.ContentProvider that writes canned bytes
//
// All test data should be defined inline, not in external files.
package testutil
