package fetch

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/photosnap/pkg/filesystem"
	"github.com/arthur-debert/photosnap/pkg/planner"
	"github.com/arthur-debert/photosnap/pkg/resource"
)

// Action is what the dispatcher does with one resource
type Action int

const (
	// ActionExisting records a file already at the destination
	ActionExisting Action = iota
	// ActionPlaceholder writes an empty file in dry-run mode
	ActionPlaceholder
	// ActionThinCopy clones, hard links or symlinks the base copy
	ActionThinCopy
	// ActionSkip leaves the resource to the base snapshot
	ActionSkip
	// ActionFetch asks the content provider for the resource
	ActionFetch
)

func (a Action) String() string {
	switch a {
	case ActionExisting:
		return "existing"
	case ActionPlaceholder:
		return "placeholder"
	case ActionThinCopy:
		return "thin-copy"
	case ActionSkip:
		return "skip"
	default:
		return "fetch"
	}
}

// Decision is the resolved action for one resource record
type Decision struct {
	Action Action
	Record resource.Record
	// Dest is the absolute destination path
	Dest string
	// Base is the absolute path of the base copy, "" without a base
	Base string
	// Link is the thin-copy primitive for ActionThinCopy
	Link planner.LinkStrategy
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (d Decision) MarshalZerologObject(e *zerolog.Event) {
	e.Stringer("action", d.Action).EmbedObject(d.Record)
	if d.Action == ActionThinCopy {
		e.Stringer("link", d.Link)
	}
}

// Decide evaluates the decision tree for one record. It only inspects the
// filesystem and never writes to it.
func (d *Dispatcher) Decide(rec resource.Record) Decision {
	ps := d.plan.Paths
	dec := Decision{
		Record: rec,
		Dest:   ps.DestPath(rec.RelativePath),
		Base:   ps.BasePath(rec.RelativePath),
	}

	if filesystem.Exists(d.fs, dec.Dest) {
		dec.Action = ActionExisting
		return dec
	}

	if d.opts.DryRun {
		dec.Action = ActionPlaceholder
		return dec
	}

	if inc, ok := d.plan.Mode.(planner.Incremental); ok && d.baseValid(dec.Base, rec, inc.CompareDate) {
		if inc.Link == planner.LinkNone {
			dec.Action = ActionSkip
		} else {
			dec.Action = ActionThinCopy
			dec.Link = inc.Link
		}
		return dec
	}

	dec.Action = ActionFetch
	return dec
}
