package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/planner"
	"github.com/arthur-debert/photosnap/pkg/snapshot"
)

// terminalRenderer writes lipgloss styled output
type terminalRenderer struct {
	w io.Writer
}

func (r *terminalRenderer) RenderReport(result *snapshot.Result, verbose bool) error {
	var b strings.Builder
	if result.Plan != nil {
		b.WriteString(GetStyle("Muted").Render(fmt.Sprintf("%s into %s", result.Plan.Mode.Name(), result.Plan.Paths.DestRoot())))
		b.WriteString("\n")
	}
	for _, set := range result.Sets {
		b.WriteString(GetStyle("Header").Render(set.Label))
		b.WriteString("\n")

		line := fetchedLine(set)
		if set.Summary.Complete() {
			b.WriteString(GetStyle("Success").Render(line))
		} else {
			b.WriteString(GetStyle("Warning").Render(line))
		}
		b.WriteString("\n")

		if verbose {
			b.WriteString(GetStyle("Muted").Render(resourcesLine(set)))
			b.WriteString("\n")
		}
		if len(set.Summary.AssetsFailed) == 0 {
			continue
		}
		b.WriteString(GetStyle("Error").Render("Incomplete assets:"))
		b.WriteString("\n")
		for _, id := range set.Summary.AssetsFailed {
			b.WriteString(GetStyle("AssetID").Render(id))
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *terminalRenderer) RenderSnapshots(folders []planner.SnapshotFolder) error {
	if len(folders) == 0 {
		_, err := fmt.Fprintln(r.w, GetStyle("Muted").Render("No snapshots found"))
		return err
	}
	var b strings.Builder
	for i, f := range folders {
		name := GetStyle("FilePath").Render(f.Name)
		if i == len(folders)-1 {
			name = GetStyle("Latest").Render(f.Name) + " " + GetStyle("Muted").Render("("+planner.Recent+")")
		}
		b.WriteString(name)
		b.WriteString("\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *terminalRenderer) RenderError(err error) error {
	msg := GetStyle("Error").Render("Error:") + " " + errorMessage(err)
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		msg += " " + GetStyle("Muted").Render("["+string(code)+"]")
	}
	_, werr := fmt.Fprintln(r.w, msg)
	return werr
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}
