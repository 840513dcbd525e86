package resource

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/photosnap/pkg/types"
)

// Diagnostic messages emitted by Select
const (
	MsgNoOriginal      = "no original resource"
	MsgInvalidModified = "invalid modified resources"
)

// Diagnostic is a non-fatal observation about an asset's resources
type Diagnostic struct {
	AssetID string
	Group   string
	Message string
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (d Diagnostic) MarshalZerologObject(e *zerolog.Event) {
	e.Str("asset", d.AssetID).Str("group", d.Group)
}

// group pairs an original category with its optional modified counterpart.
type group struct {
	name     string
	original Category
	modified Category
}

var groups = []group{
	{name: "photo", original: OriginalPhoto, modified: ModifiedPhoto},
	{name: "alternate", original: AlternatePhoto, modified: Unknown},
	{name: "live photo", original: LivePhotoPairing, modified: ModifiedLivePhotoPairing},
	{name: "video", original: OriginalVideo, modified: ModifiedVideo},
	{name: "audio", original: Audio, modified: Unknown},
}

// Select picks the records of one asset to fetch. Each group keeps its
// single original and the first modified candidate, so an asset yields at
// most two records per group. kind is the asset's primary media kind: a
// video with a modified still but no original photo is expected and is not
// reported.
func Select(kind types.MediaKind, records []Record) ([]Record, []Diagnostic) {
	var (
		selected    []Record
		diagnostics []Diagnostic
	)
	if len(records) == 0 {
		return nil, nil
	}
	assetID := records[0].AssetID

	byCategory := make(map[Category][]Record)
	for _, r := range records {
		if r.Category == Unknown {
			continue
		}
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	for _, g := range groups {
		originals := byCategory[g.original]
		var modified []Record
		if g.modified != Unknown {
			modified = byCategory[g.modified]
		}
		if len(originals) == 0 && len(modified) == 0 {
			continue
		}

		if len(originals) == 1 {
			selected = append(selected, originals[0])
		} else if !(kind == types.MediaVideo && len(byCategory[ModifiedPhoto]) > 0) {
			diagnostics = append(diagnostics, Diagnostic{AssetID: assetID, Group: g.name, Message: MsgNoOriginal})
		}

		if len(modified) > 0 {
			selected = append(selected, modified[0])
			if len(modified) > 1 {
				diagnostics = append(diagnostics, Diagnostic{AssetID: assetID, Group: g.name, Message: MsgInvalidModified})
			}
		}
	}

	return selected, diagnostics
}
