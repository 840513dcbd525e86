package config

import (
	"time"

	"github.com/rs/zerolog"
)

// Config is the resolved photosnap configuration
type Config struct {
	DateFormat    string `koanf:"date_format"`
	MediaTypes    string `koanf:"media_types"`
	FetchLimit    int    `koanf:"fetch_limit"`
	WarnExists    bool   `koanf:"warn_exists"`
	LocalOnly     bool   `koanf:"local_only"`
	ExcludeHidden bool   `koanf:"exclude_hidden"`
	DryRun        bool   `koanf:"dry_run"`
	CompareDate   string `koanf:"compare_date"`

	Library Library `koanf:"library"`
	Verify  Verify  `koanf:"verify"`
}

// Library locates the media library and tunes remote transfers
type Library struct {
	Root        string        `koanf:"root"`
	Manifest    string        `koanf:"manifest"`
	HTTPTimeout time.Duration `koanf:"http_timeout"`
	UserAgent   string        `koanf:"user_agent"`
}

// Verify holds settings of verify runs
type Verify struct {
	ScratchDir string `koanf:"scratch_dir"`
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (c *Config) MarshalZerologObject(e *zerolog.Event) {
	e.Str("date_format", c.DateFormat).
		Str("media_types", c.MediaTypes).
		Int("fetch_limit", c.FetchLimit).
		Bool("warn_exists", c.WarnExists).
		Bool("local_only", c.LocalOnly).
		Bool("exclude_hidden", c.ExcludeHidden).
		Bool("dry_run", c.DryRun).
		Str("library_root", c.Library.Root).
		Str("manifest", c.Library.Manifest).
		Dur("http_timeout", c.Library.HTTPTimeout)
}
