// Package library provides the asset catalog and content provider photosnap
// reads from: a directory holding a manifest (library.yaml or library.toml)
// that lists assets and their resources.
//
// A minimal YAML manifest:
//
//	assets:
//	  - id: 9F983DBA-EC35-42B8-8773-B597CF782EDD/L0/001
//	    kind: image
//	    created: 2024-01-02T10:00:00Z
//	    modified: 2024-01-03T08:30:00Z
//	    resources:
//	      - type: photo
//	        filename: IMG_0001.HEIC
//	        source: originals/IMG_0001.HEIC
//	      - type: fullSizePhoto
//	        filename: FullSizeRender.jpeg
//	        source: https://cdn.example.com/render/0001.jpeg
//
// A resource source is either a path relative to the library root or an
// http(s) URL. Remote sources are only fetched when the network is allowed.
// Resource types are platform names (photo, fullSizePhoto, pairedVideo, ...)
// or, through the code field, raw platform type codes.
package library
