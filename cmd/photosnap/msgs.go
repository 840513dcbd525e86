package photosnap

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Snapshot a media library into timestamped folders"
	MsgListShort       = "List the snapshot folders of a parent folder"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice = "DRY RUN MODE - placeholders were written instead of content"
	MsgVersion      = "photosnap version %s\n  commit: %s\n  built:  %s"

	// Error messages
	MsgErrNoLibrary = "no library configured, use --library or set library.root"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO and resource counts, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default $XDG_CONFIG_HOME/photosnap/config.toml)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagLibrary     = "Media library root folder"
	MsgFlagManifest    = "Manifest file name inside the library root"
	MsgFlagAppend      = "Add missing resources to the --base folder"
	MsgFlagIncremental = "Skip resources unchanged since --base"
	MsgFlagVerify      = "Fetch into a scratch folder and compare with --base"
	MsgFlagClone       = "Incremental: clone unchanged resources from --base"
	MsgFlagHardlink    = "Incremental: hard link unchanged resources from --base"
	MsgFlagSymlink     = "Incremental: symlink unchanged resources to --base"
	MsgFlagBase        = "Base snapshot folder, relative to PARENT, or RECENT"
	MsgFlagCompareDate = "Compare date overriding the one parsed from --base"
	MsgFlagDateFormat  = "Date pattern of snapshot folder names"
	MsgFlagMediaTypes  = "Media types to fetch: A audio, P photos, V videos"
	MsgFlagID          = "Asset id to fetch, repeatable; overrides --media-types"
	MsgFlagFetchLimit  = "Maximum assets per media type, 0 for no limit"
	MsgFlagWarnExists  = "Count existing destination files as failures"
	MsgFlagLocalOnly   = "Never download remote resources"
	MsgFlagNoHidden    = "Exclude hidden assets"
	MsgFlagDryRun      = "Write empty placeholders instead of fetching"
	MsgFlagScratchDir  = "Scratch folder for --verify runs"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
