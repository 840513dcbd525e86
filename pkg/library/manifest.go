package library

import (
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/types"
)

// Manifest is the on-disk description of a library
type Manifest struct {
	Assets []ManifestAsset `yaml:"assets" toml:"assets"`
}

// ManifestAsset is one asset entry
type ManifestAsset struct {
	ID        string             `yaml:"id" toml:"id"`
	Kind      string             `yaml:"kind" toml:"kind"`
	Hidden    bool               `yaml:"hidden,omitempty" toml:"hidden,omitempty"`
	Created   *time.Time         `yaml:"created,omitempty" toml:"created,omitempty"`
	Modified  *time.Time         `yaml:"modified,omitempty" toml:"modified,omitempty"`
	Resources []ManifestResource `yaml:"resources" toml:"resources"`
}

// ManifestResource is one resource of an asset. Type names the platform
// resource type; Code gives the raw type code instead.
type ManifestResource struct {
	Type     string `yaml:"type,omitempty" toml:"type,omitempty"`
	Code     int    `yaml:"code,omitempty" toml:"code,omitempty"`
	Filename string `yaml:"filename,omitempty" toml:"filename,omitempty"`
	Source   string `yaml:"source" toml:"source"`
}

// ParseManifest decodes data as YAML or TOML depending on the extension
// of name.
func ParseManifest(name string, data []byte) (*Manifest, error) {
	var m Manifest
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "invalid YAML manifest %s", name)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "invalid TOML manifest %s", name)
		}
	default:
		return nil, errors.Newf(errors.ErrManifestInvalid, "unsupported manifest format: %s", name)
	}
	return &m, nil
}

// Build converts the manifest into catalog assets and their resources.
func (m *Manifest) Build() ([]types.Asset, map[string][]types.RawResource, error) {
	assets := make([]types.Asset, 0, len(m.Assets))
	resources := make(map[string][]types.RawResource, len(m.Assets))

	for i, ma := range m.Assets {
		if ma.ID == "" {
			return nil, nil, errors.Newf(errors.ErrManifestInvalid, "asset %d has no id", i)
		}
		if _, dup := resources[ma.ID]; dup {
			return nil, nil, errors.Newf(errors.ErrManifestInvalid, "duplicate asset id %s", ma.ID)
		}
		kind, ok := types.ParseMediaKind(ma.Kind)
		if !ok {
			return nil, nil, errors.Newf(errors.ErrManifestInvalid, "asset %s has unknown kind %q", ma.ID, ma.Kind)
		}

		raws := make([]types.RawResource, 0, len(ma.Resources))
		for j, mr := range ma.Resources {
			raw, err := mr.raw(ma.ID)
			if err != nil {
				return nil, nil, errors.Wrapf(err, errors.ErrManifestInvalid, "asset %s resource %d", ma.ID, j)
			}
			raws = append(raws, raw)
		}

		assets = append(assets, types.Asset{
			LocalID:  ma.ID,
			Kind:     kind,
			Hidden:   ma.Hidden,
			Created:  ma.Created,
			Modified: ma.Modified,
		})
		resources[ma.ID] = raws
	}
	return assets, resources, nil
}

func (mr ManifestResource) raw(assetID string) (types.RawResource, error) {
	if mr.Source == "" {
		return types.RawResource{}, errors.New(errors.ErrManifestInvalid, "resource has no source")
	}

	code := mr.Code
	if mr.Type != "" {
		named, ok := types.ResourceTypeCode(mr.Type)
		if !ok {
			return types.RawResource{}, errors.Newf(errors.ErrManifestInvalid, "unknown resource type %q", mr.Type)
		}
		if code != 0 && code != named {
			return types.RawResource{}, errors.Newf(errors.ErrManifestInvalid, "resource type %q does not match code %d", mr.Type, code)
		}
		code = named
	}
	if code <= 0 {
		return types.RawResource{}, errors.New(errors.ErrManifestInvalid, "resource needs a type or a positive code")
	}

	filename := mr.Filename
	if filename == "" {
		filename = path.Base(sourcePath(mr.Source))
	}

	return types.RawResource{
		AssetLocalID:     assetID,
		OriginalFilename: filename,
		TypeCode:         code,
		Source:           mr.Source,
	}, nil
}

// sourcePath strips any URL scheme, host and query from a source.
func sourcePath(source string) string {
	if i := strings.Index(source, "://"); i >= 0 {
		source = source[i+3:]
		if j := strings.IndexByte(source, '/'); j >= 0 {
			source = source[j:]
		}
	}
	if i := strings.IndexAny(source, "?#"); i >= 0 {
		source = source[:i]
	}
	return source
}
