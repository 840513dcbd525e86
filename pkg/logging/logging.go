// Package logging configures the process-wide zerolog logger: a console
// writer on stderr plus a JSON run log in the photosnap state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/photosnap/pkg/paths"
)

// Options describe the logger outputs
type Options struct {
	Verbosity int
	// Console receives human readable output; nil disables it
	Console io.Writer
	// NoColor disables ANSI colours on the console
	NoColor bool
	// LogFile receives JSON lines; empty disables it
	LogFile string
}

var (
	mu      sync.Mutex
	logFile *os.File
)

// SetupLogger configures the global logger for a CLI run: the console is
// stderr and the run log is paths.LogFile().
func SetupLogger(verbosity int) {
	Setup(Options{
		Verbosity: verbosity,
		Console:   os.Stderr,
		NoColor:   os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stderr.Fd()),
		LogFile:   paths.LogFile(),
	})
}

// Setup replaces the global logger. A run log that cannot be opened is
// reported on the console and skipped.
func Setup(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	zerolog.SetGlobalLevel(LevelFor(opts.Verbosity))

	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        opts.Console,
			TimeFormat: time.Kitchen,
			NoColor:    opts.NoColor,
		})
	}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	var fileErr error
	if opts.LogFile != "" {
		logFile, fileErr = openLogFile(opts.LogFile)
		if fileErr == nil {
			writers = append(writers, logFile)
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", opts.LogFile).Msg("run log unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("log_file", opts.LogFile).Msg("logger initialized")
}

// LevelFor maps the -v count to a level: warn, info, debug, then trace
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a child of the global logger tagged with component
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("operation completed")
	}
}
