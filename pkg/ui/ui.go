// Package ui renders the results of a photosnap run.
// It supports terminal (rich), text (plain), and JSON output formats.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/planner"
	"github.com/arthur-debert/photosnap/pkg/snapshot"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderReport renders the per asset set outcome of a run
	RenderReport(result *snapshot.Result, verbose bool) error

	// RenderSnapshots renders the snapshot folders of a parent root, oldest first
	RenderSnapshots(folders []planner.SnapshotFolder) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format writing to output. FormatAuto
// is resolved against output first.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch resolveFormat(format, output) {
	case FormatTerminal:
		return &terminalRenderer{w: output}, nil
	case FormatText:
		return &textRenderer{w: output}, nil
	case FormatJSON:
		return newJSONRenderer(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q", format)
	}
}

// fetchedLine is the headline of an asset set report
func fetchedLine(set snapshot.SetResult) string {
	return fmt.Sprintf("Fetched %d of %d assets with %d errors",
		len(set.Summary.AssetsSucceeded), set.Total, len(set.Summary.AssetsFailed))
}

// resourcesLine is the verbose resource tally of an asset set report
func resourcesLine(set snapshot.SetResult) string {
	return fmt.Sprintf("Resources: %d/%d success/failure",
		len(set.Summary.ResourcesSucceeded), len(set.Summary.ResourcesFailed))
}
