package resource

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/photosnap/pkg/logging"
	"github.com/arthur-debert/photosnap/pkg/types"
)

// SyntheticPrefix marks asset ids generated for resources that arrived
// without a local identifier.
const SyntheticPrefix = "INVALID_"

// Category classifies a resource within its asset
type Category int

const (
	Unknown Category = iota
	OriginalPhoto
	ModifiedPhoto
	AlternatePhoto
	OriginalVideo
	ModifiedVideo
	LivePhotoPairing
	ModifiedLivePhotoPairing
	Audio
)

var categoryLabels = map[Category]string{
	OriginalPhoto:            "Photo",
	ModifiedPhoto:            "Photo - Modified",
	AlternatePhoto:           "Photo - Alternate",
	OriginalVideo:            "Video",
	ModifiedVideo:            "Video - Modified",
	LivePhotoPairing:         "Live Photo",
	ModifiedLivePhotoPairing: "Live Photo - Modified",
	Audio:                    "Audio",
}

// CategoryOf maps a platform resource type code to a category. Adjustment
// data and adjustment bases are not fetched and map to Unknown, as does
// any code this version does not know.
func CategoryOf(code int) Category {
	switch code {
	case types.ResourcePhoto:
		return OriginalPhoto
	case types.ResourceFullSizePhoto:
		return ModifiedPhoto
	case types.ResourceAlternatePhoto:
		return AlternatePhoto
	case types.ResourceVideo:
		return OriginalVideo
	case types.ResourceFullSizeVideo:
		return ModifiedVideo
	case types.ResourcePairedVideo:
		return LivePhotoPairing
	case types.ResourceFullSizePairedVideo:
		return ModifiedLivePhotoPairing
	case types.ResourceAudio:
		return Audio
	default:
		return Unknown
	}
}

// Label returns the file name stem used for the category. Unknown needs
// the raw code to be told apart, so use Record.Label where one is at hand.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return "Unknown"
}

func (c Category) String() string {
	return c.Label()
}

// Record is one fetchable content unit of an asset
type Record struct {
	AssetID   string
	Synthetic bool
	Category  Category
	RawType   int
	Extension string
	// RelativePath is "<AssetID>/<label>.<Extension>", slash separated
	RelativePath string
	// Updated is the owning asset's max(created, modified). The zero value
	// means a timestamp was missing and the asset is treated as infinitely new.
	Updated time.Time
	Raw     types.RawResource
}

// Label returns the category label, including the raw code for unknown types.
func (r Record) Label() string {
	if r.Category == Unknown {
		return fmt.Sprintf("Unknown - %d", r.RawType)
	}
	return r.Category.Label()
}

// UnchangedSince reports whether the owning asset was last touched strictly
// before cutoff. Unknown timestamps are never unchanged.
func (r Record) UnchangedSince(cutoff time.Time) bool {
	if r.Updated.IsZero() {
		return false
	}
	return r.Updated.Before(cutoff)
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (r Record) MarshalZerologObject(e *zerolog.Event) {
	e.Str("asset", r.AssetID).
		Str("category", r.Label()).
		Str("path", r.RelativePath)
	if r.Synthetic {
		e.Bool("synthetic", true)
	}
}

// AssetID derives the stable asset identifier from a platform local id by
// truncating at the first "/". An empty id yields a fresh synthetic value
// that can never match a real asset; synthetic reports which case applied.
func AssetID(localID string) (id string, synthetic bool) {
	if localID == "" {
		return SyntheticPrefix + strings.ToUpper(uuid.NewString()), true
	}
	if i := strings.Index(localID, "/"); i >= 0 {
		return localID[:i], false
	}
	return localID, false
}

// Identify builds the record for one resource. Timestamps are left for
// the caller to fill in.
func Identify(localID, originalFilename string, code int) Record {
	logger := logging.GetLogger("resource")

	id, synthetic := AssetID(localID)
	if synthetic {
		logger.Warn().
			Str("filename", originalFilename).
			Str("asset", id).
			Msg("resource has no asset identifier")
	}

	category := CategoryOf(code)
	if category == Unknown {
		logger.Warn().
			Str("asset", id).
			Int("type", code).
			Msg("unexpected resource type")
	}

	rec := Record{
		AssetID:   id,
		Synthetic: synthetic,
		Category:  category,
		RawType:   code,
		Extension: strings.ToLower(strings.TrimPrefix(path.Ext(originalFilename), ".")),
	}
	rec.RelativePath = rec.AssetID + "/" + rec.Label() + "." + rec.Extension
	return rec
}

// FromRaw identifies raw and stamps it with the owning asset's timestamp.
func FromRaw(raw types.RawResource, asset types.Asset) Record {
	rec := Identify(raw.AssetLocalID, raw.OriginalFilename, raw.TypeCode)
	rec.Updated = OwnerTimestamp(asset)
	rec.Raw = raw
	return rec
}

// OwnerTimestamp returns max(created, modified), or the zero time if the
// asset is missing either date.
func OwnerTimestamp(asset types.Asset) time.Time {
	if asset.Created == nil || asset.Modified == nil {
		return time.Time{}
	}
	if asset.Modified.After(*asset.Created) {
		return *asset.Modified
	}
	return *asset.Created
}
