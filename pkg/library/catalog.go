package library

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/logging"
	"github.com/arthur-debert/photosnap/pkg/types"
)

// DefaultManifest is the manifest file name looked up in the library root
const DefaultManifest = "library.yaml"

// Catalog implements types.Catalog over a manifest library
type Catalog struct {
	fs       types.FS
	root     string
	manifest string
	logger   zerolog.Logger

	mu        sync.Mutex
	loaded    bool
	assets    []types.Asset
	resources map[string][]types.RawResource
}

// Open returns a catalog for the library at root. The manifest is read by
// Authorize. An empty manifest name means DefaultManifest.
func Open(fs types.FS, root, manifest string) *Catalog {
	if manifest == "" {
		manifest = DefaultManifest
	}
	return &Catalog{
		fs:       fs,
		root:     root,
		manifest: manifest,
		logger:   logging.GetLogger("library"),
	}
}

// Root returns the library root
func (c *Catalog) Root() string {
	return c.root
}

// ManifestPath returns the manifest location
func (c *Catalog) ManifestPath() string {
	if filepath.IsAbs(c.manifest) {
		return c.manifest
	}
	return filepath.Join(c.root, c.manifest)
}

// Authorize reads and validates the manifest. A library that cannot be
// read is an authorization failure.
func (c *Catalog) Authorize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Catalog) load() error {
	if c.loaded {
		return nil
	}

	manifestPath := c.ManifestPath()
	data, err := c.fs.ReadFile(manifestPath)
	if err != nil {
		code := errors.ErrManifestLoad
		if os.IsPermission(err) {
			code = errors.ErrAuthorization
		}
		return errors.Wrapf(err, code, "unable to read library manifest %s", manifestPath)
	}

	m, err := ParseManifest(manifestPath, data)
	if err != nil {
		return err
	}
	assets, resources, err := m.Build()
	if err != nil {
		return err
	}

	c.assets = assets
	c.resources = resources
	c.loaded = true
	c.logger.Info().
		Str("manifest", manifestPath).
		Int("assets", len(assets)).
		Msg("library loaded")
	return nil
}

func (c *Catalog) snapshot() ([]types.Asset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.assets, nil
}

// ListByMediaType lists assets of one kind, newest creation date first.
func (c *Catalog) ListByMediaType(ctx context.Context, q types.ListQuery) ([]types.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := c.snapshot()
	if err != nil {
		return nil, err
	}

	var out []types.Asset
	for _, a := range all {
		if a.Kind != q.Kind {
			continue
		}
		if a.Hidden && q.Hidden == types.ExcludeHidden {
			continue
		}
		if q.Since != nil && !touchedSince(a, *q.Since) {
			continue
		}
		out = append(out, a)
	}

	sortByCreatedDesc(out)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}

	c.logger.Debug().
		Stringer("kind", q.Kind).
		Int("count", len(out)).
		Msg("listed assets")
	return out, nil
}

// ListByIDs lists assets by local identifier. An id may also be the bare
// asset id, the part before the first "/".
func (c *Catalog) ListByIDs(ctx context.Context, ids []string) ([]types.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := c.snapshot()
	if err != nil {
		return nil, err
	}

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var out []types.Asset
	for _, a := range all {
		short := a.LocalID
		if i := strings.Index(short, "/"); i >= 0 {
			short = short[:i]
		}
		if want[a.LocalID] || want[short] {
			out = append(out, a)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

// ResourcesOf returns the resources of an asset
func (c *Catalog) ResourcesOf(asset types.Asset) []types.RawResource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resources[asset.LocalID]
}

// touchedSince reports whether the asset was created or modified at or
// after cutoff. Assets missing a date are always included.
func touchedSince(a types.Asset, cutoff time.Time) bool {
	if a.Created == nil || a.Modified == nil {
		return true
	}
	return !a.Created.Before(cutoff) || !a.Modified.Before(cutoff)
}

func sortByCreatedDesc(assets []types.Asset) {
	sort.SliceStable(assets, func(i, j int) bool {
		ci, cj := assets[i].Created, assets[j].Created
		switch {
		case ci == nil:
			return false
		case cj == nil:
			return true
		default:
			return ci.After(*cj)
		}
	})
}
