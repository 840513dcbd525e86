// Package snapshot orchestrates a complete photosnap run: authorize the
// library, plan, list the assets, then fetch each asset set in turn.
package snapshot

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/fetch"
	"github.com/arthur-debert/photosnap/pkg/logging"
	"github.com/arthur-debert/photosnap/pkg/planner"
	"github.com/arthur-debert/photosnap/pkg/stats"
	"github.com/arthur-debert/photosnap/pkg/types"
)

// Options are the inputs of a run
type Options struct {
	Plan planner.Options

	// MediaTypes selects kinds with the letters A, P and V
	MediaTypes string
	// IDs lists assets explicitly and overrides MediaTypes
	IDs []string
	// FetchLimit caps the assets listed per media type; zero is unlimited
	FetchLimit    int
	ExcludeHidden bool

	Fetch fetch.Options
}

// AssetSet is a group of assets fetched behind one barrier
type AssetSet struct {
	Label  string
	Assets []types.Asset
}

// SetResult is the outcome of one asset set
type SetResult struct {
	Label   string
	Total   int
	Summary stats.Summary
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (s SetResult) MarshalZerologObject(e *zerolog.Event) {
	e.Str("set", s.Label).Int("assets", s.Total).EmbedObject(s.Summary)
}

// Result is the outcome of a run
type Result struct {
	Plan *planner.Plan
	Sets []SetResult
}

// Complete reports whether every asset set finished without failures
func (r *Result) Complete() bool {
	for _, s := range r.Sets {
		if !s.Summary.Complete() {
			return false
		}
	}
	return true
}

// ExitCode is ExitOK for a complete run and ExitIncomplete otherwise
func (r *Result) ExitCode() int {
	if r.Complete() {
		return errors.ExitOK
	}
	return errors.ExitIncomplete
}

// Runner ties the catalog, the content provider and the filesystem together
type Runner struct {
	fs          types.FS
	catalog     types.Catalog
	provider    types.ContentProvider
	planOptions []planner.Option
	logger      zerolog.Logger
}

// NewRunner creates a runner. Planner options are passed through, which
// lets tests fix the clock.
func NewRunner(fs types.FS, catalog types.Catalog, provider types.ContentProvider, opts ...planner.Option) *Runner {
	return &Runner{
		fs:          fs,
		catalog:     catalog,
		provider:    provider,
		planOptions: opts,
		logger:      logging.GetLogger("snapshot"),
	}
}

// Run executes a full run. Pre-flight failures return a coded error before
// anything is fetched; resource failures are reported through the Result.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	done := logging.LogOperationStart(r.logger, "snapshot")
	defer done()

	if err := r.catalog.Authorize(ctx); err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			return nil, errors.Wrap(err, errors.ErrAuthorization, "library access denied")
		}
		return nil, err
	}

	plan, err := planner.New(r.fs, r.planOptions...).Plan(opts.Plan)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := plan.Cleanup(); err != nil {
			r.logger.Warn().Err(err).Msg("unable to remove scratch folder")
		}
	}()

	sets, err := r.listAssets(ctx, opts, plan)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, errors.New(errors.ErrNoAssets, "found 0 media assets")
	}
	// An incremental run that skips every resource still leaves its dated folder
	if err := r.fs.MkdirAll(plan.Paths.DestRoot(), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "unable to create %s", plan.Paths.DestRoot())
	}

	result := &Result{Plan: plan}
	dispatcher := fetch.NewDispatcher(r.fs, r.catalog, r.provider, plan, opts.Fetch)
	for _, set := range sets {
		st := dispatcher.FetchAssets(ctx, set.Assets)
		res := SetResult{Label: set.Label, Total: len(set.Assets), Summary: st.Summary()}
		r.logger.Info().EmbedObject(res).Msg("asset set finished")
		result.Sets = append(result.Sets, res)
	}
	return result, nil
}

// listAssets builds the asset sets of the run. Empty listings are dropped.
func (r *Runner) listAssets(ctx context.Context, opts Options, plan *planner.Plan) ([]AssetSet, error) {
	var sets []AssetSet
	add := func(label string, assets []types.Asset) {
		r.logger.Info().Str("set", label).Int("count", len(assets)).Msg("found assets")
		if len(assets) > 0 {
			sets = append(sets, AssetSet{Label: label, Assets: assets})
		}
	}

	if len(opts.IDs) > 0 {
		if opts.MediaTypes != "" && opts.MediaTypes != types.DefaultMediaTypes {
			r.logger.Warn().Str("media_types", opts.MediaTypes).Msg("media types ignored when listing by id")
		}
		assets, err := r.catalog.ListByIDs(ctx, opts.IDs)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestLoad, "unable to list assets by id")
		}
		add("ids", assets)
		return sets, nil
	}

	mediaTypes := opts.MediaTypes
	if mediaTypes == "" {
		mediaTypes = types.DefaultMediaTypes
	}
	hidden := types.IncludeHidden
	if opts.ExcludeHidden {
		hidden = types.ExcludeHidden
	}
	// Link strategies need every resource to decide between copy and
	// reuse, so only plain incremental runs narrow the listing.
	var since *time.Time
	if inc, ok := plan.Mode.(planner.Incremental); ok && inc.Link == planner.LinkNone {
		cutoff := inc.CompareDate
		since = &cutoff
	}

	for _, kind := range types.MediaKindsFromFilter(mediaTypes) {
		assets, err := r.catalog.ListByMediaType(ctx, types.ListQuery{
			Kind:   kind,
			Hidden: hidden,
			Limit:  opts.FetchLimit,
			Since:  since,
		})
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestLoad, "unable to list %s assets", kind)
		}
		add(kind.String(), assets)
	}
	return sets, nil
}
