package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/planner"
	"github.com/arthur-debert/photosnap/pkg/snapshot"
	"github.com/arthur-debert/photosnap/pkg/stats"
	"github.com/arthur-debert/photosnap/pkg/ui"
)

func sampleResult() *snapshot.Result {
	return &snapshot.Result{
		Sets: []snapshot.SetResult{
			{
				Label: "image",
				Total: 3,
				Summary: stats.Summary{
					ResourcesSucceeded: []string{"a/1.jpg", "b/2.jpg", "c/3.jpg"},
					ResourcesFailed:    []string{"c/3.mov"},
					AssetsSucceeded:    []string{"a", "b"},
					AssetsFailed:       []string{"c"},
				},
			},
			{
				Label: "video",
				Total: 1,
				Summary: stats.Summary{
					ResourcesSucceeded: []string{"d/4.mov"},
					AssetsSucceeded:    []string{"d"},
				},
			},
		},
	}
}

func render(t *testing.T, format ui.Format, fn func(ui.Renderer) error) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := ui.NewRenderer(format, &buf)
	require.NoError(t, err)
	require.NoError(t, fn(r))
	return buf.String()
}

func TestTextReport(t *testing.T) {
	out := render(t, ui.FormatText, func(r ui.Renderer) error {
		return r.RenderReport(sampleResult(), false)
	})

	expected := "[image]\n" +
		"Fetched 2 of 3 assets with 1 errors\n" +
		"Incomplete assets:\n" +
		"\tc\n" +
		"[video]\n" +
		"Fetched 1 of 1 assets with 0 errors\n"
	assert.Equal(t, expected, out)
}

func TestTextReportVerboseSingleSet(t *testing.T) {
	result := sampleResult()
	result.Sets = result.Sets[:1]

	out := render(t, ui.FormatText, func(r ui.Renderer) error {
		return r.RenderReport(result, true)
	})

	expected := "Fetched 2 of 3 assets with 1 errors\n" +
		"Resources: 3/1 success/failure\n" +
		"Incomplete assets:\n" +
		"\tc\n"
	assert.Equal(t, expected, out)
}

func TestTerminalReport(t *testing.T) {
	out := render(t, ui.FormatTerminal, func(r ui.Renderer) error {
		return r.RenderReport(sampleResult(), true)
	})

	assert.Contains(t, out, "image")
	assert.Contains(t, out, "Fetched 2 of 3 assets with 1 errors")
	assert.Contains(t, out, "Resources: 1/0 success/failure")
	assert.Contains(t, out, "Incomplete assets:")
	assert.Contains(t, out, "c")
}

func TestJSONReport(t *testing.T) {
	out := render(t, ui.FormatJSON, func(r ui.Renderer) error {
		return r.RenderReport(sampleResult(), false)
	})

	var decoded struct {
		Complete bool `json:"complete"`
		ExitCode int  `json:"exit_code"`
		Sets     []struct {
			Label           string   `json:"label"`
			Assets          int      `json:"assets"`
			AssetsSucceeded int      `json:"assets_succeeded"`
			AssetsFailed    []string `json:"assets_failed"`
			ResourcesFailed []string `json:"resources_failed"`
		} `json:"sets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.False(t, decoded.Complete)
	assert.Equal(t, errors.ExitIncomplete, decoded.ExitCode)
	require.Len(t, decoded.Sets, 2)
	assert.Equal(t, "image", decoded.Sets[0].Label)
	assert.Equal(t, 3, decoded.Sets[0].Assets)
	assert.Equal(t, 2, decoded.Sets[0].AssetsSucceeded)
	assert.Equal(t, []string{"c"}, decoded.Sets[0].AssetsFailed)
	assert.Nil(t, decoded.Sets[0].ResourcesFailed)
	assert.Equal(t, []string{}, decoded.Sets[1].AssetsFailed)
}

func TestRenderSnapshots(t *testing.T) {
	folders := []planner.SnapshotFolder{
		{Name: "2024-06-01_00-00-00", Time: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "2024-07-15_10-30-00", Time: time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC)},
	}

	t.Run("text", func(t *testing.T) {
		out := render(t, ui.FormatText, func(r ui.Renderer) error { return r.RenderSnapshots(folders) })
		assert.Equal(t, "2024-06-01_00-00-00\n2024-07-15_10-30-00\n", out)
	})

	t.Run("terminal marks the latest", func(t *testing.T) {
		out := render(t, ui.FormatTerminal, func(r ui.Renderer) error { return r.RenderSnapshots(folders) })
		assert.Contains(t, out, "2024-06-01_00-00-00")
		assert.Contains(t, out, "2024-07-15_10-30-00")
		assert.Contains(t, out, planner.Recent)
	})

	t.Run("json", func(t *testing.T) {
		out := render(t, ui.FormatJSON, func(r ui.Renderer) error { return r.RenderSnapshots(folders) })
		assert.Contains(t, out, `"name": "2024-07-15_10-30-00"`)
		assert.Contains(t, out, `"time": "2024-07-15T10:30:00Z"`)
	})

	t.Run("empty", func(t *testing.T) {
		out := render(t, ui.FormatText, func(r ui.Renderer) error { return r.RenderSnapshots(nil) })
		assert.Equal(t, "No snapshots found\n", out)
	})
}

func TestRenderError(t *testing.T) {
	err := errors.New(errors.ErrDestExists, "destination already exists")

	t.Run("text", func(t *testing.T) {
		out := render(t, ui.FormatText, func(r ui.Renderer) error { return r.RenderError(err) })
		assert.Equal(t, "Error: destination already exists\n", out)
	})

	t.Run("json carries the code", func(t *testing.T) {
		out := render(t, ui.FormatJSON, func(r ui.Renderer) error { return r.RenderError(err) })
		assert.Contains(t, out, `"code": "DEST_EXISTS"`)
	})
}

func TestGetStyleUnknown(t *testing.T) {
	assert.Equal(t, "plain", ui.GetStyle("NoSuchStyle").Render("plain"))
}

func TestLoadStylesInvalid(t *testing.T) {
	assert.Error(t, ui.LoadStyles([]byte("colors: [")))
}
