package types

import (
	"strings"
	"time"
)

// MediaKind is the primary media type of an asset
type MediaKind int

const (
	MediaUnknown MediaKind = 0
	MediaImage   MediaKind = 1
	MediaVideo   MediaKind = 2
	MediaAudio   MediaKind = 3
)

// String returns the lower-case name used in manifests and logs
func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaVideo:
		return "video"
	case MediaAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// ParseMediaKind maps a manifest kind name to a MediaKind
func ParseMediaKind(name string) (MediaKind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "image", "photo":
		return MediaImage, true
	case "video":
		return MediaVideo, true
	case "audio":
		return MediaAudio, true
	default:
		return MediaUnknown, false
	}
}

// DefaultMediaTypes selects audio, photos and videos
const DefaultMediaTypes = "APV"

// MediaKindsFromFilter converts a media-type filter string (A, P, V in any
// order and case) into the kinds to list. Photos come first, then videos,
// then audio.
func MediaKindsFromFilter(filter string) []MediaKind {
	filter = strings.ToUpper(filter)
	var kinds []MediaKind
	if strings.Contains(filter, "P") {
		kinds = append(kinds, MediaImage)
	}
	if strings.Contains(filter, "V") {
		kinds = append(kinds, MediaVideo)
	}
	if strings.Contains(filter, "A") {
		kinds = append(kinds, MediaAudio)
	}
	return kinds
}

// Resource type codes as numbered by the platform photo library.
const (
	ResourcePhoto                     = 1
	ResourceVideo                     = 2
	ResourceAudio                     = 3
	ResourceAlternatePhoto            = 4
	ResourceFullSizePhoto             = 5
	ResourceFullSizeVideo             = 6
	ResourceAdjustmentData            = 7
	ResourceAdjustmentBasePhoto       = 8
	ResourcePairedVideo               = 9
	ResourceFullSizePairedVideo       = 10
	ResourceAdjustmentBasePairedVideo = 11
	ResourceAdjustmentBaseVideo       = 12
)

var resourceTypeNames = map[string]int{
	"photo":                     ResourcePhoto,
	"video":                     ResourceVideo,
	"audio":                     ResourceAudio,
	"alternatephoto":            ResourceAlternatePhoto,
	"fullsizephoto":             ResourceFullSizePhoto,
	"fullsizevideo":             ResourceFullSizeVideo,
	"adjustmentdata":            ResourceAdjustmentData,
	"adjustmentbasephoto":       ResourceAdjustmentBasePhoto,
	"pairedvideo":               ResourcePairedVideo,
	"fullsizepairedvideo":       ResourceFullSizePairedVideo,
	"adjustmentbasepairedvideo": ResourceAdjustmentBasePairedVideo,
	"adjustmentbasevideo":       ResourceAdjustmentBaseVideo,
}

// ResourceTypeCode maps a resource type name such as "fullSizePhoto" to its
// platform code. Matching ignores case, dashes and underscores.
func ResourceTypeCode(name string) (int, bool) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	code, ok := resourceTypeNames[key]
	return code, ok
}

// HiddenPolicy controls whether hidden assets are listed
type HiddenPolicy int

const (
	IncludeHidden HiddenPolicy = iota
	ExcludeHidden
)

// Asset is one logical media item in the library
type Asset struct {
	// LocalID is the platform identifier, e.g. "9F98.../L0/001"
	LocalID  string
	Kind     MediaKind
	Hidden   bool
	Created  *time.Time
	Modified *time.Time
}

// RawResource is a resource exactly as the catalog reports it
type RawResource struct {
	AssetLocalID     string
	OriginalFilename string
	TypeCode         int
	// Source locates the content: a path relative to the library root or an http(s) URL
	Source string
}

// ListQuery narrows a ListByMediaType call
type ListQuery struct {
	Kind   MediaKind
	Hidden HiddenPolicy
	// Limit caps the number of results; zero means unlimited
	Limit int
	// Since keeps only assets created or modified at or after this instant
	Since *time.Time
}
