package planner

import (
	"time"

	"github.com/rs/zerolog"
)

// LinkStrategy is how an incremental run reuses unchanged resources
type LinkStrategy int

const (
	// LinkNone skips unchanged resources entirely
	LinkNone LinkStrategy = iota
	// LinkClone copies unchanged resources, sharing storage where possible
	LinkClone
	// LinkHardlink hard links unchanged resources to the base copy
	LinkHardlink
	// LinkSymlink symlinks unchanged resources to the base copy
	LinkSymlink
)

func (l LinkStrategy) String() string {
	switch l {
	case LinkClone:
		return "clone"
	case LinkHardlink:
		return "hardlink"
	case LinkSymlink:
		return "symlink"
	default:
		return "none"
	}
}

// Mode is the run mode. It is one of Snapshot, Append, Incremental or
// Verify, each carrying only the data it needs.
type Mode interface {
	Name() string
	isMode()
}

// Snapshot writes a complete new snapshot folder
type Snapshot struct{}

// Append fetches missing resources into an existing snapshot folder
type Append struct{}

// Incremental writes a new snapshot, reusing resources of the base snapshot
// whose asset is older than CompareDate
type Incremental struct {
	Link        LinkStrategy
	CompareDate time.Time
}

// Verify fetches into a scratch folder and compares against the base snapshot
type Verify struct {
	CompareDate time.Time
}

func (Snapshot) Name() string    { return "snapshot" }
func (Append) Name() string      { return "append" }
func (Incremental) Name() string { return "incremental" }
func (Verify) Name() string      { return "verify" }

func (Snapshot) isMode()    {}
func (Append) isMode()      {}
func (Incremental) isMode() {}
func (Verify) isMode()      {}

// CompareDateOf returns the compare date of incremental and verify modes.
func CompareDateOf(m Mode) (time.Time, bool) {
	switch m := m.(type) {
	case Incremental:
		return m.CompareDate, true
	case Verify:
		return m.CompareDate, true
	default:
		return time.Time{}, false
	}
}

// LinkOf returns the link strategy of an incremental mode, LinkNone otherwise.
func LinkOf(m Mode) LinkStrategy {
	if inc, ok := m.(Incremental); ok {
		return inc.Link
	}
	return LinkNone
}

// LogMode adds the mode and its data to a log event.
func LogMode(e *zerolog.Event, m Mode) *zerolog.Event {
	e = e.Str("mode", m.Name())
	if inc, ok := m.(Incremental); ok {
		e = e.Stringer("link", inc.Link)
	}
	if cmp, ok := CompareDateOf(m); ok {
		e = e.Time("compare_date", cmp)
	}
	return e
}
