package fetch

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/filesystem"
	"github.com/arthur-debert/photosnap/pkg/logging"
	"github.com/arthur-debert/photosnap/pkg/planner"
	"github.com/arthur-debert/photosnap/pkg/resource"
	"github.com/arthur-debert/photosnap/pkg/stats"
	"github.com/arthur-debert/photosnap/pkg/types"
)

// Options tune the dispatcher
type Options struct {
	// WarnExists records resources already at the destination as failures
	WarnExists bool
	// DryRun writes empty placeholders instead of fetching
	DryRun bool
	// NetworkAllowed lets the content provider reach remote sources
	NetworkAllowed bool
}

// Dispatcher fans out the work of one asset set
type Dispatcher struct {
	fs       types.FS
	catalog  types.Catalog
	provider types.ContentProvider
	plan     *planner.Plan
	opts     Options
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher for a ready plan
func NewDispatcher(fs types.FS, catalog types.Catalog, provider types.ContentProvider, plan *planner.Plan, opts Options) *Dispatcher {
	return &Dispatcher{
		fs:       fs,
		catalog:  catalog,
		provider: provider,
		plan:     plan,
		opts:     opts,
		logger:   logging.GetLogger("fetch"),
	}
}

// Records identifies and selects the resources of each asset. Selection
// diagnostics are logged as warnings.
func (d *Dispatcher) Records(assets []types.Asset) []resource.Record {
	var out []resource.Record
	for _, asset := range assets {
		raws := d.catalog.ResourcesOf(asset)
		records := make([]resource.Record, 0, len(raws))
		for _, raw := range raws {
			records = append(records, resource.FromRaw(raw, asset))
		}

		selected, diagnostics := resource.Select(asset.Kind, records)
		for _, diag := range diagnostics {
			d.logger.Warn().EmbedObject(diag).Msg(diag.Message)
		}
		out = append(out, selected...)
	}
	return out
}

// FetchAssets runs every selected resource of assets and returns the
// statistics once all of them finished.
func (d *Dispatcher) FetchAssets(ctx context.Context, assets []types.Asset) *stats.FetchStats {
	st := stats.New()
	records := d.Records(assets)
	d.logger.Info().
		Int("assets", len(assets)).
		Int("resources", len(records)).
		Msg("fetching asset set")

	var g errgroup.Group
	for _, rec := range records {
		dec := d.Decide(rec)
		d.logger.Debug().EmbedObject(dec).Msg("decision")
		g.Go(func() error {
			d.execute(ctx, dec, st)
			return nil // Failures are recorded, never propagated
		})
	}
	_ = g.Wait()

	return st
}

func (d *Dispatcher) execute(ctx context.Context, dec Decision, st *stats.FetchStats) {
	rec := dec.Record
	switch dec.Action {
	case ActionExisting:
		if d.opts.WarnExists {
			d.logger.Warn().EmbedObject(rec).Str("dest", dec.Dest).Msg("destination exists")
			d.record(st, rec, false)
			return
		}
		d.record(st, rec, true)

	case ActionPlaceholder:
		d.record(st, rec, d.placeholder(dec) == nil)

	case ActionThinCopy:
		d.record(st, rec, d.thinCopy(dec) == nil)

	case ActionSkip:
		d.logger.Trace().EmbedObject(rec).Msg("unchanged since base")

	case ActionFetch:
		d.record(st, rec, d.fetch(ctx, dec))
	}
}

func (d *Dispatcher) record(st *stats.FetchStats, rec resource.Record, success bool) {
	st.Record(rec.AssetID, rec.RelativePath, success)
}

func (d *Dispatcher) placeholder(dec Decision) error {
	if err := filesystem.EnsureParent(d.fs, dec.Dest); err != nil {
		d.logFailure(dec, err)
		return err
	}
	if err := d.fs.WriteFile(dec.Dest, nil, 0644); err != nil {
		err = errors.Wrapf(err, errors.ErrFileCreate, "unable to create placeholder %s", dec.Dest)
		d.logFailure(dec, err)
		return err
	}
	return nil
}

func (d *Dispatcher) thinCopy(dec Decision) error {
	if err := filesystem.EnsureParent(d.fs, dec.Dest); err != nil {
		d.logFailure(dec, err)
		return err
	}

	var err error
	switch dec.Link {
	case planner.LinkClone:
		if cerr := d.fs.Clone(dec.Base, dec.Dest); cerr != nil {
			err = errors.Wrapf(cerr, errors.ErrCloneCreate, "unable to clone %s", dec.Base)
		}
	case planner.LinkHardlink:
		if lerr := d.fs.Link(dec.Base, dec.Dest); lerr != nil {
			err = errors.Wrapf(lerr, errors.ErrHardlinkCreate, "unable to hard link %s", dec.Base)
		}
	case planner.LinkSymlink:
		if serr := d.fs.Symlink(dec.Base, dec.Dest); serr != nil {
			err = errors.Wrapf(serr, errors.ErrSymlinkCreate, "unable to symlink %s", dec.Base)
		}
	default:
		err = errors.Newf(errors.ErrInternal, "thin copy without link strategy for %s", dec.Dest)
	}
	if err != nil {
		d.logFailure(dec, err)
		return err
	}
	d.logger.Debug().EmbedObject(dec).Msg("linked")
	return nil
}

// fetch transfers the resource and, in verify mode, checks and removes it.
func (d *Dispatcher) fetch(ctx context.Context, dec Decision) bool {
	if err := filesystem.EnsureParent(d.fs, dec.Dest); err != nil {
		d.logFailure(dec, err)
		return false
	}

	d.logger.Info().EmbedObject(dec.Record).Msg("fetching")
	err := d.provider.Fetch(ctx, dec.Record.Raw, dec.Dest, d.opts.NetworkAllowed)

	verify, verifying := d.plan.Mode.(planner.Verify)
	if verifying {
		defer d.discard(dec.Dest)
	}

	if err != nil {
		d.logFailure(dec, errors.Wrapf(err, errors.ErrFetch, "unable to fetch %s", dec.Record.RelativePath))
		return false
	}
	if !verifying {
		return true
	}
	return d.verify(dec, verify.CompareDate)
}

func (d *Dispatcher) verify(dec Decision, compareDate time.Time) bool {
	if !dec.Record.UnchangedSince(compareDate) {
		d.logger.Warn().EmbedObject(dec.Record).Msg("asset changed since base, skipping comparison")
		return true
	}

	same, err := filesystem.SameContent(d.fs, dec.Dest, dec.Base)
	if err != nil {
		d.logFailure(dec, errors.Wrapf(err, errors.ErrVerifyMismatch, "unable to compare %s", dec.Record.RelativePath))
		return false
	}
	if !same {
		d.logFailure(dec, errors.Newf(errors.ErrVerifyMismatch, "content differs from base: %s", dec.Record.RelativePath))
		return false
	}
	d.logger.Debug().EmbedObject(dec.Record).Msg("verified")
	return true
}

func (d *Dispatcher) discard(path string) {
	if err := d.fs.Remove(path); err != nil && filesystem.Exists(d.fs, path) {
		d.logger.Warn().Err(err).Str("path", path).Msg("unable to remove verified file")
	}
}

// baseValid reports whether the base snapshot holds a copy of rec that is
// still current: the file exists and the asset is older than compareDate.
func (d *Dispatcher) baseValid(base string, rec resource.Record, compareDate time.Time) bool {
	if base == "" || !rec.UnchangedSince(compareDate) {
		return false
	}
	return filesystem.Exists(d.fs, base)
}

func (d *Dispatcher) logFailure(dec Decision, err error) {
	d.logger.Error().Err(err).EmbedObject(dec.Record).Msg("resource failed")
}
