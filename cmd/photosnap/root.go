package photosnap

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/photosnap/internal/version"
	"github.com/arthur-debert/photosnap/pkg/config"
	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/fetch"
	"github.com/arthur-debert/photosnap/pkg/filesystem"
	"github.com/arthur-debert/photosnap/pkg/library"
	"github.com/arthur-debert/photosnap/pkg/logging"
	"github.com/arthur-debert/photosnap/pkg/planner"
	"github.com/arthur-debert/photosnap/pkg/snapshot"
	"github.com/arthur-debert/photosnap/pkg/ui"
)

// rootOptions holds flag values that are not configuration keys, plus the
// exit code of the last run
type rootOptions struct {
	verbosity  int
	configFile string
	format     string

	appendMode  bool
	incremental bool
	verify      bool
	clone       bool
	hardlink    bool
	symlink     bool
	base        string
	ids         []string

	exitCode int
}

// configFlags maps flags to the configuration keys they override. Only
// flags set on the command line reach the configuration.
var configFlags = []struct {
	flag string
	key  string
}{
	{"date-format", "date_format"},
	{"media-types", "media_types"},
	{"fetch-limit", "fetch_limit"},
	{"warn-exists", "warn_exists"},
	{"local-only", "local_only"},
	{"no-hidden", "exclude_hidden"},
	{"dry-run", "dry_run"},
	{"compare-date", "compare_date"},
	{"library", "library.root"},
	{"manifest", "library.manifest"},
	{"scratch-dir", "verify.scratch_dir"},
}

// Run executes the command line and returns the process exit code. Errors
// are rendered to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if renderer, rerr := newRenderer(opts, stderr); rerr == nil {
			_ = renderer.RenderError(err)
		} else {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return errors.ExitCode(err)
	}
	return opts.exitCode
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "photosnap PARENT",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd, args[0], opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	pf.StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	pf.String("date-format", "", MsgFlagDateFormat)

	// Mode flags
	f := rootCmd.Flags()
	f.BoolVar(&opts.appendMode, "append", false, MsgFlagAppend)
	f.BoolVar(&opts.incremental, "incremental", false, MsgFlagIncremental)
	f.BoolVar(&opts.verify, "verify", false, MsgFlagVerify)
	f.BoolVar(&opts.clone, "clone", false, MsgFlagClone)
	f.BoolVar(&opts.hardlink, "hardlink", false, MsgFlagHardlink)
	f.BoolVar(&opts.symlink, "symlink", false, MsgFlagSymlink)
	f.StringVar(&opts.base, "base", "", MsgFlagBase)
	f.StringArrayVar(&opts.ids, "id", nil, MsgFlagID)

	// Configuration flags
	f.String("compare-date", "", MsgFlagCompareDate)
	f.String("media-types", "", MsgFlagMediaTypes)
	f.Int("fetch-limit", 0, MsgFlagFetchLimit)
	f.Bool("warn-exists", false, MsgFlagWarnExists)
	f.Bool("local-only", false, MsgFlagLocalOnly)
	f.Bool("no-hidden", false, MsgFlagNoHidden)
	f.Bool("dry-run", false, MsgFlagDryRun)
	f.String("library", "", MsgFlagLibrary)
	f.String("manifest", "", MsgFlagManifest)
	f.String("scratch-dir", "", MsgFlagScratchDir)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig layers the explicitly set flags over the configuration files
// and environment
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	flags := make(map[string]interface{})
	for _, cf := range configFlags {
		if fl := cmd.Flags().Lookup(cf.flag); fl != nil && fl.Changed {
			flags[cf.key] = fl.Value.String()
		}
	}
	return config.Load(config.LoadOptions{ConfigFile: opts.configFile, Flags: flags})
}

func newRenderer(opts *rootOptions, w io.Writer) (ui.Renderer, error) {
	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	return ui.NewRenderer(format, w)
}

func runSnapshot(cmd *cobra.Command, parent string, opts *rootOptions) error {
	logger := logging.GetLogger("cli")

	renderer, err := newRenderer(opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if cfg.Library.Root == "" {
		return errors.New(errors.ErrConfigLoad, MsgErrNoLibrary)
	}

	fs := filesystem.NewOS()
	catalog := library.Open(fs, cfg.Library.Root, cfg.Library.Manifest)
	provider := library.NewProvider(fs, cfg.Library.Root,
		library.WithTimeout(cfg.Library.HTTPTimeout),
		library.WithUserAgent(cfg.Library.UserAgent),
	)

	runOpts := snapshot.Options{
		Plan: planner.Options{
			Parent:      parent,
			Append:      opts.appendMode,
			Incremental: opts.incremental,
			Verify:      opts.verify,
			Clone:       opts.clone,
			Hardlink:    opts.hardlink,
			Symlink:     opts.symlink,
			Base:        opts.base,
			CompareDate: cfg.CompareDate,
			DateFormat:  cfg.DateFormat,
			ScratchDir:  cfg.Verify.ScratchDir,
		},
		MediaTypes:    cfg.MediaTypes,
		IDs:           opts.ids,
		FetchLimit:    cfg.FetchLimit,
		ExcludeHidden: cfg.ExcludeHidden,
		Fetch: fetch.Options{
			WarnExists:     cfg.WarnExists,
			DryRun:         cfg.DryRun,
			NetworkAllowed: !cfg.LocalOnly,
		},
	}

	result, err := snapshot.NewRunner(fs, catalog, provider).Run(cmd.Context(), runOpts)
	if err != nil {
		return err
	}

	if err := renderer.RenderReport(result, opts.verbosity > 0); err != nil {
		return err
	}
	if cfg.DryRun && opts.format != ui.FormatJSON.String() {
		if err := renderer.RenderMessage(MsgDryRunNotice); err != nil {
			return err
		}
	}

	opts.exitCode = result.ExitCode()
	logger.Info().Int("exit_code", opts.exitCode).Msg("run finished")
	return nil
}
