package planner

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/filesystem"
	"github.com/arthur-debert/photosnap/pkg/logging"
	"github.com/arthur-debert/photosnap/pkg/paths"
	"github.com/arthur-debert/photosnap/pkg/types"
)

// State is a step of the planning sequence
type State int

const (
	Idle State = iota
	ModeResolved
	PathsResolved
	CapabilityChecked
	BaseResolved
	CompareDateResolved
	Ready
)

var stateNames = [...]string{
	Idle:                "idle",
	ModeResolved:        "mode-resolved",
	PathsResolved:       "paths-resolved",
	CapabilityChecked:   "capability-checked",
	BaseResolved:        "base-resolved",
	CompareDateResolved: "compare-date-resolved",
	Ready:               "ready",
}

func (s State) String() string {
	if s < Idle || s > Ready {
		return "invalid"
	}
	return stateNames[s]
}

// Options are the parsed inputs of a run
type Options struct {
	// Parent is the folder holding snapshot folders
	Parent string

	Append      bool
	Incremental bool
	Verify      bool
	Clone       bool
	Hardlink    bool
	Symlink     bool

	// Base is a folder relative to Parent, or Recent
	Base string
	// CompareDate overrides the date parsed from the base folder name
	CompareDate string
	// DateFormat is the Unicode date pattern of snapshot folder names
	DateFormat string
	// ScratchDir is where verify runs fetch; defaults to paths.ScratchDir()
	ScratchDir string
}

// Plan is the outcome of planning
type Plan struct {
	Mode   Mode
	Paths  paths.PathSet
	Layout string

	fs types.FS
}

// CompareDate returns the compare date of incremental and verify runs
func (p *Plan) CompareDate() (time.Time, bool) {
	return CompareDateOf(p.Mode)
}

// Cleanup removes the scratch destination of a verify run. It does nothing
// for other modes.
func (p *Plan) Cleanup() error {
	if _, ok := p.Mode.(Verify); !ok {
		return nil
	}
	if err := p.fs.RemoveAll(p.Paths.DestRoot()); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "unable to remove %s", p.Paths.DestRoot())
	}
	return nil
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (p *Plan) MarshalZerologObject(e *zerolog.Event) {
	LogMode(e, p.Mode).EmbedObject(p.Paths)
}

// Planner resolves Options into a Plan
type Planner struct {
	fs     types.FS
	now    func() time.Time
	state  State
	logger zerolog.Logger
}

// Option configures a Planner
type Option func(*Planner)

// WithClock sets the clock used to name new snapshot folders
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// New creates a Planner working on fs
func New(fs types.FS, opts ...Option) *Planner {
	p := &Planner{
		fs:     fs,
		now:    time.Now,
		logger: logging.GetLogger("planner"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the last state reached
func (p *Planner) State() State {
	return p.state
}

func (p *Planner) advance(to State) {
	if to != p.state+1 {
		panic("planner: invalid transition from " + p.state.String() + " to " + to.String())
	}
	p.logger.Trace().Stringer("from", p.state).Stringer("to", to).Msg("transition")
	p.state = to
}

// modeKind is the mode before its compare date is known
type modeKind int

const (
	kindSnapshot modeKind = iota
	kindAppend
	kindIncremental
	kindVerify
)

// Plan validates opts and resolves everything a run needs.
func (p *Planner) Plan(opts Options) (*Plan, error) {
	p.state = Idle

	if opts.DateFormat == "" {
		opts.DateFormat = DefaultDateFormat
	}
	layout, err := Layout(opts.DateFormat)
	if err != nil {
		return nil, err
	}

	// Mode
	kind, link, err := resolveMode(opts)
	if err != nil {
		return nil, err
	}
	if kind == kindSnapshot && opts.Base != "" {
		p.logger.Warn().Str("base", opts.Base).Msg("base folder ignored in snapshot mode")
	}
	if (kind == kindSnapshot || kind == kindAppend) && opts.CompareDate != "" {
		p.logger.Warn().Str("compare_date", opts.CompareDate).Msg("compare date ignored without incremental or verify")
	}
	p.advance(ModeResolved)

	// Paths
	ps, err := p.resolvePaths(opts, kind, layout)
	if err != nil {
		return nil, err
	}
	p.advance(PathsResolved)

	// Capability
	if kind == kindIncremental && link != LinkNone {
		if err := p.checkCapability(ps.ParentRoot(), link); err != nil {
			return nil, err
		}
	}
	p.advance(CapabilityChecked)

	// Base
	if kind == kindIncremental || kind == kindVerify {
		base, err := p.resolveBase(ps.ParentRoot(), opts.Base, layout)
		if err != nil {
			return nil, err
		}
		ps = ps.WithBase(base)
		if !filesystem.IsDir(p.fs, ps.BaseRoot()) {
			return nil, errors.Newf(errors.ErrBaseNotFound, "base folder does not exist: %s", ps.BaseRoot())
		}
		p.logger.Info().Str("base", ps.BaseRoot()).Msg("base folder")
	}
	if kind == kindVerify {
		if err := checkScratch(ps.DestRoot(), ps.BaseRoot()); err != nil {
			return nil, err
		}
		if err := p.fs.RemoveAll(ps.DestRoot()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "unable to clear scratch folder %s", ps.DestRoot())
		}
	}
	p.advance(BaseResolved)

	// Compare date
	var mode Mode
	switch kind {
	case kindSnapshot:
		mode = Snapshot{}
	case kindAppend:
		mode = Append{}
	case kindIncremental, kindVerify:
		compareString := opts.CompareDate
		if compareString == "" {
			compareString = filepath.Base(ps.BaseRoot())
		}
		compareDate, err := ParseFolderTime(layout, compareString)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrDateParse, "unable to parse compare date %q", compareString)
		}
		p.logger.Info().Time("compare_date", compareDate).Msg("compare date")
		if kind == kindIncremental {
			mode = Incremental{Link: link, CompareDate: compareDate}
		} else {
			mode = Verify{CompareDate: compareDate}
		}
	}
	p.advance(CompareDateResolved)

	plan := &Plan{Mode: mode, Paths: ps, Layout: layout, fs: p.fs}
	p.advance(Ready)
	p.logger.Info().EmbedObject(plan).Msg("plan ready")
	return plan, nil
}

func resolveMode(opts Options) (modeKind, LinkStrategy, error) {
	link := LinkNone
	links := 0
	if opts.Clone {
		link = LinkClone
		links++
	}
	if opts.Hardlink {
		link = LinkHardlink
		links++
	}
	if opts.Symlink {
		link = LinkSymlink
		links++
	}
	if links > 1 {
		return 0, 0, errors.New(errors.ErrIncompatibleMode, "only one of --clone, --hardlink and --symlink may be used")
	}

	incremental := opts.Incremental || links == 1
	modes := 0
	for _, on := range []bool{opts.Append, incremental, opts.Verify} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return 0, 0, errors.New(errors.ErrIncompatibleMode, "only one of append, incremental and verify may be used")
	}

	kind := kindSnapshot
	switch {
	case opts.Append:
		kind = kindAppend
	case incremental:
		kind = kindIncremental
	case opts.Verify:
		kind = kindVerify
	}
	if kind != kindSnapshot && opts.Base == "" {
		return 0, 0, errors.New(errors.ErrIncompatibleMode, "append, incremental and verify require a base folder")
	}
	return kind, link, nil
}

func (p *Planner) resolvePaths(opts Options, kind modeKind, layout string) (paths.PathSet, error) {
	if opts.Parent == "" {
		return paths.PathSet{}, errors.New(errors.ErrInvalidParent, "parent folder is required")
	}
	ps, err := paths.NewPathSet(opts.Parent)
	if err != nil {
		return paths.PathSet{}, errors.Wrap(err, errors.ErrInvalidParent, "invalid parent folder")
	}
	if !filesystem.IsDir(p.fs, ps.ParentRoot()) {
		return paths.PathSet{}, errors.Newf(errors.ErrInvalidParent, "parent folder does not exist: %s", ps.ParentRoot())
	}

	switch kind {
	case kindVerify:
		scratch := opts.ScratchDir
		if scratch == "" {
			scratch = paths.ScratchDir()
		}
		ps = ps.WithDest(scratch)
		if err := checkScratch(ps.DestRoot(), ps.ParentRoot()); err != nil {
			return paths.PathSet{}, err
		}
		p.logger.Debug().Str("dest", ps.DestRoot()).Msg("verify scratch folder")
		return ps, nil

	case kindAppend:
		name, err := p.resolveBase(ps.ParentRoot(), opts.Base, layout)
		if err != nil {
			return paths.PathSet{}, err
		}
		ps = ps.WithDest(name).WithBase(name)
		if !filesystem.IsDir(p.fs, ps.DestRoot()) {
			return paths.PathSet{}, errors.Newf(errors.ErrDestMissing, "invalid append folder: %s", ps.DestRoot())
		}

	default:
		ps = ps.WithDest(p.now().Format(layout))
		if filesystem.Exists(p.fs, ps.DestRoot()) {
			return paths.PathSet{}, errors.Newf(errors.ErrDestExists, "subfolder exists: %s", ps.DestRoot())
		}
	}

	p.logger.Info().Str("dest", ps.DestRoot()).Msg("destination folder")
	return ps, nil
}

// checkScratch rejects a verify scratch folder that overlaps root. The
// scratch folder is removed before and after every verify run.
func checkScratch(scratch, root string) error {
	if paths.IsWithin(scratch, root) || paths.IsWithin(root, scratch) {
		return errors.Newf(errors.ErrInvalidParent, "scratch folder %s overlaps %s", scratch, root)
	}
	return nil
}

// resolveBase turns a base reference into a folder relative to parent.
func (p *Planner) resolveBase(parent, ref, layout string) (string, error) {
	if ref != Recent {
		return ref, nil
	}
	latest, err := FindMostRecent(p.fs, parent, layout)
	if err != nil {
		return "", err
	}
	return latest.Name, nil
}

func (p *Planner) checkCapability(root string, link LinkStrategy) error {
	caps, err := p.fs.Capabilities(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrUnsupportedVolume, "unable to determine volume support for thin copies at %s", root)
	}

	supported := true
	switch link {
	case LinkClone:
		supported = caps.Clones
	case LinkHardlink:
		supported = caps.Hardlinks
	case LinkSymlink:
		supported = caps.Symlinks
	}
	if !supported {
		return errors.Newf(errors.ErrUnsupportedVolume, "%s requested but volume does not support it", link).
			WithDetail("path", root)
	}
	return nil
}
