// Package types defines the core types and interfaces shared across photosnap.
// This includes the storage interface (FS), the asset catalog and content
// provider collaborators, and the library data structures they exchange:
// Asset, RawResource, MediaKind and the platform resource type codes.
package types
