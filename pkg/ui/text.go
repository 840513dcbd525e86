package ui

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/planner"
	"github.com/arthur-debert/photosnap/pkg/snapshot"
)

// textRenderer writes plain text with no styling
type textRenderer struct {
	w io.Writer
}

func (r *textRenderer) RenderReport(result *snapshot.Result, verbose bool) error {
	for _, set := range result.Sets {
		if len(result.Sets) > 1 {
			if _, err := fmt.Fprintf(r.w, "[%s]\n", set.Label); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(r.w, fetchedLine(set)); err != nil {
			return err
		}
		if verbose {
			if _, err := fmt.Fprintln(r.w, resourcesLine(set)); err != nil {
				return err
			}
		}
		if len(set.Summary.AssetsFailed) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(r.w, "Incomplete assets:"); err != nil {
			return err
		}
		for _, id := range set.Summary.AssetsFailed {
			if _, err := fmt.Fprintf(r.w, "\t%s\n", id); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *textRenderer) RenderSnapshots(folders []planner.SnapshotFolder) error {
	if len(folders) == 0 {
		_, err := fmt.Fprintln(r.w, "No snapshots found")
		return err
	}
	for _, f := range folders {
		if _, err := fmt.Fprintln(r.w, f.Name); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "Error: %s\n", errorMessage(err))
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

// errorMessage strips the code prefix from coded errors
func errorMessage(err error) string {
	var snapErr *errors.PhotosnapError
	if stderrors.As(err, &snapErr) {
		if snapErr.Wrapped != nil {
			return fmt.Sprintf("%s: %v", snapErr.Message, snapErr.Wrapped)
		}
		return snapErr.Message
	}
	return err.Error()
}
