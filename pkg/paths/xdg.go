package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "photosnap"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// VerifyDirName is the scratch subdirectory for verify runs
	VerifyDirName = "verify"

	// EnvConfigDir overrides the XDG config directory for photosnap
	EnvConfigDir = "PHOTOSNAP_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for photosnap
	EnvCacheDir = "PHOTOSNAP_CACHE_DIR"

	// EnvStateDir overrides the XDG state directory for photosnap
	EnvStateDir = "PHOTOSNAP_STATE_DIR"

	// LogFileName is the append-only run log kept in the state directory
	LogFileName = "photosnap.log"
)

// ConfigDir returns the photosnap configuration directory
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the default user configuration file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// CacheDir returns the photosnap cache directory
func CacheDir() string {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.CacheHome, AppDirName)
}

// ScratchDir returns the default destination of verify runs. The whole
// directory is removed when a verify run ends.
func ScratchDir() string {
	return filepath.Join(CacheDir(), VerifyDirName)
}

// StateDir returns the photosnap state directory, home of the run log
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFile returns the path of the run log
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}
