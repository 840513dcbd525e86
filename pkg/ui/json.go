package ui

import (
	"encoding/json"
	"io"
	"time"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/planner"
	"github.com/arthur-debert/photosnap/pkg/snapshot"
)

// jsonRenderer writes indented JSON documents
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(w io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

type jsonSet struct {
	Label              string   `json:"label"`
	Assets             int      `json:"assets"`
	AssetsSucceeded    int      `json:"assets_succeeded"`
	AssetsFailed       []string `json:"assets_failed"`
	ResourcesSucceeded int      `json:"resources_succeeded"`
	ResourcesFailed    []string `json:"resources_failed,omitempty"`
}

type jsonReport struct {
	Mode        string    `json:"mode,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Complete    bool      `json:"complete"`
	ExitCode    int       `json:"exit_code"`
	Sets        []jsonSet `json:"sets"`
}

func (r *jsonRenderer) RenderReport(result *snapshot.Result, verbose bool) error {
	report := jsonReport{
		Complete: result.Complete(),
		ExitCode: result.ExitCode(),
		Sets:     make([]jsonSet, 0, len(result.Sets)),
	}
	if result.Plan != nil {
		report.Mode = result.Plan.Mode.Name()
		report.Destination = result.Plan.Paths.DestRoot()
	}
	for _, set := range result.Sets {
		js := jsonSet{
			Label:              set.Label,
			Assets:             set.Total,
			AssetsSucceeded:    len(set.Summary.AssetsSucceeded),
			AssetsFailed:       set.Summary.AssetsFailed,
			ResourcesSucceeded: len(set.Summary.ResourcesSucceeded),
		}
		if js.AssetsFailed == nil {
			js.AssetsFailed = []string{}
		}
		if verbose {
			js.ResourcesFailed = set.Summary.ResourcesFailed
		}
		report.Sets = append(report.Sets, js)
	}
	return r.encoder.Encode(report)
}

type jsonSnapshot struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

func (r *jsonRenderer) RenderSnapshots(folders []planner.SnapshotFolder) error {
	out := make([]jsonSnapshot, 0, len(folders))
	for _, f := range folders {
		out = append(out, jsonSnapshot{Name: f.Name, Time: f.Time.Format(time.RFC3339)})
	}
	return r.encoder.Encode(map[string]interface{}{"snapshots": out})
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]interface{}{
		"error":   errorMessage(err),
		"code":    string(errors.GetErrorCode(err)),
		"details": errors.GetErrorDetails(err),
	})
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
