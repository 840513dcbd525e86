// Package resource turns raw catalog resources into records with a stable
// asset identifier and a deterministic path relative to a snapshot root,
// and selects which records of an asset are worth fetching.
//
// The relative path is "<assetID>/<category label>.<ext>", for example
// "9F983DBA-EC35-42B8-8773-B597CF782EDD/Photo - Modified.heic". Two runs
// over the same library always produce the same paths, which is what lets
// an incremental run find the previous copy of a resource by path alone.
package resource
