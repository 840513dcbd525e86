package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/photosnap/pkg/filesystem"
	"github.com/arthur-debert/photosnap/pkg/planner"
	"github.com/arthur-debert/photosnap/pkg/testutil"
	"github.com/arthur-debert/photosnap/pkg/types"
)

const (
	oldID   = "AAAA-OLD"
	newID   = "BBBB-NEW"
	undated = "CCCC-UNDATED"

	baseName = "2024-06-01_00-00-00"
	destName = "2024-07-15_10-30-00"
)

var (
	now     = time.Date(2024, 7, 15, 10, 30, 0, 0, time.Local)
	oldTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	newTime = time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)
)

type fixture struct {
	fs       types.FS
	catalog  *testutil.MockCatalog
	provider *testutil.MockProvider
	assets   []types.Asset
}

func newFixture(t *testing.T, fs types.FS, parent string) *fixture {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Join(parent, baseName), 0755))

	assets := []types.Asset{
		{LocalID: oldID + "/L0/001", Kind: types.MediaImage, Created: &oldTime, Modified: &oldTime},
		{LocalID: newID + "/L0/001", Kind: types.MediaImage, Created: &oldTime, Modified: &newTime},
		{LocalID: undated + "/L0/001", Kind: types.MediaVideo, Created: &oldTime},
	}
	catalog := &testutil.MockCatalog{
		Assets: assets,
		Resources: map[string][]types.RawResource{
			assets[0].LocalID: {
				{AssetLocalID: assets[0].LocalID, OriginalFilename: "IMG_1.HEIC", TypeCode: types.ResourcePhoto, Source: "old-photo"},
				{AssetLocalID: assets[0].LocalID, OriginalFilename: "FullSizeRender.jpeg", TypeCode: types.ResourceFullSizePhoto, Source: "old-edit"},
			},
			assets[1].LocalID: {
				{AssetLocalID: assets[1].LocalID, OriginalFilename: "IMG_2.JPG", TypeCode: types.ResourcePhoto, Source: "new-photo"},
			},
			assets[2].LocalID: {
				{AssetLocalID: assets[2].LocalID, OriginalFilename: "IMG_3.MOV", TypeCode: types.ResourceVideo, Source: "undated-video"},
			},
		},
	}
	provider := &testutil.MockProvider{
		FS: fs,
		Content: map[string]string{
			"old-photo":     "old photo bytes",
			"old-edit":      "old edit bytes",
			"new-photo":     "new photo bytes",
			"undated-video": "video bytes",
		},
	}
	return &fixture{fs: fs, catalog: catalog, provider: provider, assets: assets}
}

// seedBase writes a base snapshot holding every resource with the
// content the provider would return.
func (f *fixture) seedBase(t *testing.T, parent string) {
	t.Helper()
	base := filepath.Join(parent, baseName)
	testutil.WriteFile(t, f.fs, filepath.Join(base, oldID, "Photo.heic"), "old photo bytes")
	testutil.WriteFile(t, f.fs, filepath.Join(base, oldID, "Photo - Modified.jpeg"), "old edit bytes")
	testutil.WriteFile(t, f.fs, filepath.Join(base, newID, "Photo.jpg"), "stale bytes")
	testutil.WriteFile(t, f.fs, filepath.Join(base, undated, "Video.mov"), "video bytes")
}

func (f *fixture) plan(t *testing.T, opts planner.Options) *planner.Plan {
	t.Helper()
	p := planner.New(f.fs, planner.WithClock(func() time.Time { return now }))
	plan, err := p.Plan(opts)
	require.NoError(t, err)
	return plan
}

func (f *fixture) dispatcher(plan *planner.Plan, opts Options) *Dispatcher {
	return NewDispatcher(f.fs, f.catalog, f.provider, plan, opts)
}

func TestFetchSnapshot(t *testing.T) {
	f := newFixture(t, testutil.NewTestFS(), "/photos")
	plan := f.plan(t, planner.Options{Parent: "/photos"})

	st := f.dispatcher(plan, Options{}).FetchAssets(context.Background(), f.assets)
	sum := st.Summary()

	assert.Len(t, sum.ResourcesSucceeded, 4)
	assert.Empty(t, sum.ResourcesFailed)
	assert.Equal(t, []string{oldID, newID, undated}, sum.AssetsSucceeded)

	dest := "/photos/" + destName
	testutil.AssertFileContent(t, f.fs, dest+"/"+oldID+"/Photo.heic", "old photo bytes")
	testutil.AssertFileContent(t, f.fs, dest+"/"+oldID+"/Photo - Modified.jpeg", "old edit bytes")
	testutil.AssertFileContent(t, f.fs, dest+"/"+newID+"/Photo.jpg", "new photo bytes")
	testutil.AssertFileContent(t, f.fs, dest+"/"+undated+"/Video.mov", "video bytes")
}

func TestFetchIdempotent(t *testing.T) {
	f := newFixture(t, testutil.NewTestFS(), "/photos")
	plan := f.plan(t, planner.Options{Parent: "/photos"})

	f.dispatcher(plan, Options{}).FetchAssets(context.Background(), f.assets)
	require.Equal(t, 4, f.provider.FetchCount())

	// Second run into the same destination writes nothing new
	st := f.dispatcher(plan, Options{}).FetchAssets(context.Background(), f.assets)
	assert.Equal(t, 4, f.provider.FetchCount())
	sum := st.Summary()
	assert.Len(t, sum.ResourcesSucceeded, 4)
	assert.True(t, sum.Complete())

	// Unless existing files are warned about
	st = f.dispatcher(plan, Options{WarnExists: true}).FetchAssets(context.Background(), f.assets)
	sum = st.Summary()
	assert.Empty(t, sum.ResourcesSucceeded)
	assert.Len(t, sum.ResourcesFailed, 4)
	assert.Len(t, sum.AssetsFailed, 3)
}

func TestFetchDryRun(t *testing.T) {
	f := newFixture(t, testutil.NewTestFS(), "/photos")
	plan := f.plan(t, planner.Options{Parent: "/photos"})

	st := f.dispatcher(plan, Options{DryRun: true}).FetchAssets(context.Background(), f.assets)
	assert.Len(t, st.Summary().ResourcesSucceeded, 4)
	assert.Equal(t, 0, f.provider.FetchCount())
	testutil.AssertFileContent(t, f.fs, "/photos/"+destName+"/"+oldID+"/Photo.heic", "")
}

func TestFetchFailures(t *testing.T) {
	f := newFixture(t, testutil.NewTestFS(), "/photos")
	f.provider.Fail = map[string]bool{"old-edit": true}
	plan := f.plan(t, planner.Options{Parent: "/photos"})

	sum := f.dispatcher(plan, Options{}).FetchAssets(context.Background(), f.assets).Summary()
	assert.Equal(t, []string{oldID + "/Photo - Modified.jpeg"}, sum.ResourcesFailed)
	assert.Equal(t, []string{oldID}, sum.AssetsFailed)
	// An asset with any failed resource is not a success
	assert.Equal(t, []string{newID, undated}, sum.AssetsSucceeded)
	assert.Len(t, sum.ResourcesSucceeded, 3)
}

func TestFetchIncrementalSkip(t *testing.T) {
	f := newFixture(t, testutil.NewTestFS(), "/photos")
	f.seedBase(t, "/photos")
	plan := f.plan(t, planner.Options{Parent: "/photos", Incremental: true, Base: planner.Recent})

	sum := f.dispatcher(plan, Options{}).FetchAssets(context.Background(), f.assets).Summary()

	// The unchanged asset is satisfied by the base snapshot
	dest := "/photos/" + destName
	testutil.AssertNotExists(t, f.fs, dest+"/"+oldID+"/Photo.heic")
	testutil.AssertFileContent(t, f.fs, dest+"/"+newID+"/Photo.jpg", "new photo bytes")
	testutil.AssertFileContent(t, f.fs, dest+"/"+undated+"/Video.mov", "video bytes")
	assert.Equal(t, []string{newID, undated}, sum.AssetsSucceeded)
	assert.Equal(t, 2, f.provider.FetchCount())
}

func TestFetchIncrementalSymlink(t *testing.T) {
	f := newFixture(t, testutil.NewTestFS(), "/photos")
	f.seedBase(t, "/photos")
	plan := f.plan(t, planner.Options{Parent: "/photos", Symlink: true, Base: baseName})

	sum := f.dispatcher(plan, Options{}).FetchAssets(context.Background(), f.assets).Summary()
	assert.Len(t, sum.ResourcesSucceeded, 4)
	assert.Equal(t, 2, f.provider.FetchCount())

	// The in-memory filesystem stores the symlink target as content
	dest := "/photos/" + destName
	testutil.AssertFileContent(t, f.fs, dest+"/"+oldID+"/Photo.heic", "/photos/"+baseName+"/"+oldID+"/Photo.heic")
	testutil.AssertFileContent(t, f.fs, dest+"/"+newID+"/Photo.jpg", "new photo bytes")
}

func TestFetchIncrementalClone(t *testing.T) {
	f := newFixture(t, testutil.NewTestFS(), "/photos")
	f.seedBase(t, "/photos")
	plan := f.plan(t, planner.Options{Parent: "/photos", Clone: true, Base: baseName})

	sum := f.dispatcher(plan, Options{}).FetchAssets(context.Background(), f.assets).Summary()
	assert.True(t, sum.Complete())
	dest := "/photos/" + destName
	testutil.AssertFileContent(t, f.fs, dest+"/"+oldID+"/Photo - Modified.jpeg", "old edit bytes")
	testutil.AssertFileContent(t, f.fs, dest+"/"+newID+"/Photo.jpg", "new photo bytes")
}

func TestFetchIncrementalMissingBaseCopy(t *testing.T) {
	f := newFixture(t, testutil.NewTestFS(), "/photos")
	// Base folder exists but holds nothing
	plan := f.plan(t, planner.Options{Parent: "/photos", Clone: true, Base: baseName})

	sum := f.dispatcher(plan, Options{}).FetchAssets(context.Background(), f.assets).Summary()
	assert.True(t, sum.Complete())
	assert.Equal(t, 4, f.provider.FetchCount())
}

func TestFetchIncrementalHardlink(t *testing.T) {
	parent := t.TempDir()
	f := newFixture(t, filesystem.NewOS(), parent)
	f.seedBase(t, parent)
	plan := f.plan(t, planner.Options{Parent: parent, Hardlink: true, Base: planner.Recent})

	sum := f.dispatcher(plan, Options{}).FetchAssets(context.Background(), f.assets).Summary()
	assert.True(t, sum.Complete())
	assert.Equal(t, 2, f.provider.FetchCount())

	baseInfo, err := os.Stat(filepath.Join(parent, baseName, oldID, "Photo.heic"))
	require.NoError(t, err)
	destInfo, err := os.Stat(filepath.Join(parent, destName, oldID, "Photo.heic"))
	require.NoError(t, err)
	assert.True(t, os.SameFile(baseInfo, destInfo))

	// Changed assets are re-fetched even though the base has a copy
	baseInfo, err = os.Stat(filepath.Join(parent, baseName, newID, "Photo.jpg"))
	require.NoError(t, err)
	destInfo, err = os.Stat(filepath.Join(parent, destName, newID, "Photo.jpg"))
	require.NoError(t, err)
	assert.False(t, os.SameFile(baseInfo, destInfo))
	testutil.AssertFileContent(t, f.fs, filepath.Join(parent, destName, newID, "Photo.jpg"), "new photo bytes")
}

func TestFetchVerify(t *testing.T) {
	f := newFixture(t, testutil.NewTestFS(), "/photos")
	f.seedBase(t, "/photos")
	// Corrupt one unchanged resource in the base
	testutil.WriteFile(t, f.fs, "/photos/"+baseName+"/"+oldID+"/Photo - Modified.jpeg", "bit rot")
	f.provider.Fail = map[string]bool{"undated-video": true}

	plan := f.plan(t, planner.Options{Parent: "/photos", Verify: true, Base: baseName, ScratchDir: "/scratch"})
	sum := f.dispatcher(plan, Options{}).FetchAssets(context.Background(), f.assets).Summary()

	assert.Equal(t, []string{oldID + "/Photo - Modified.jpeg", undated + "/Video.mov"}, sum.ResourcesFailed)
	// Changed assets skip comparison
	assert.Contains(t, sum.ResourcesSucceeded, newID+"/Photo.jpg")
	assert.Contains(t, sum.ResourcesSucceeded, oldID+"/Photo.heic")

	// Nothing is left behind in the scratch folder
	for _, rel := range []string{oldID + "/Photo.heic", oldID + "/Photo - Modified.jpeg", newID + "/Photo.jpg", undated + "/Video.mov"} {
		testutil.AssertNotExists(t, f.fs, "/scratch/"+rel)
	}
	require.NoError(t, plan.Cleanup())
	testutil.AssertNotExists(t, f.fs, "/scratch")
}

func TestDecide(t *testing.T) {
	f := newFixture(t, testutil.NewTestFS(), "/photos")
	f.seedBase(t, "/photos")
	plan := f.plan(t, planner.Options{Parent: "/photos", Hardlink: false, Symlink: true, Base: baseName})
	d := f.dispatcher(plan, Options{})

	records := d.Records(f.assets)
	require.Len(t, records, 4)

	actions := make(map[string]Action)
	for _, rec := range records {
		actions[rec.RelativePath] = d.Decide(rec).Action
	}
	assert.Equal(t, ActionThinCopy, actions[oldID+"/Photo.heic"])
	assert.Equal(t, ActionThinCopy, actions[oldID+"/Photo - Modified.jpeg"])
	assert.Equal(t, ActionFetch, actions[newID+"/Photo.jpg"])
	// Missing timestamps are treated as infinitely new
	assert.Equal(t, ActionFetch, actions[undated+"/Video.mov"])

	testutil.WriteFile(t, f.fs, plan.Paths.DestPath(newID+"/Photo.jpg"), "x")
	dec := d.Decide(records[2])
	assert.Equal(t, ActionExisting, dec.Action)
}
