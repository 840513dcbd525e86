package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/paths"
)

// isolate points the XDG lookups at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, filepath.Join(dir, "config"))
	t.Setenv(paths.EnvCacheDir, filepath.Join(dir, "cache"))
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "yyyy-MM-dd_HH-mm-ss", cfg.DateFormat)
	assert.Equal(t, "APV", cfg.MediaTypes)
	assert.Equal(t, 0, cfg.FetchLimit)
	assert.False(t, cfg.WarnExists)
	assert.False(t, cfg.DryRun)
	assert.Empty(t, cfg.Library.Root)
	assert.Equal(t, "library.yaml", cfg.Library.Manifest)
	assert.Equal(t, 60*time.Second, cfg.Library.HTTPTimeout)
	assert.Equal(t, "photosnap", cfg.Library.UserAgent)
	assert.Equal(t, filepath.Join(dir, "cache", paths.VerifyDirName), cfg.Verify.ScratchDir)
}

func TestLoadLayers(t *testing.T) {
	t.Run("xdg config file", func(t *testing.T) {
		dir := isolate(t)
		writeConfig(t, filepath.Join(dir, "config", paths.ConfigFileName), `
media_types = "pv"
fetch_limit = 10

[library]
root = "/photos"
http_timeout = "5s"
`)

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, "PV", cfg.MediaTypes)
		assert.Equal(t, 10, cfg.FetchLimit)
		assert.Equal(t, "/photos", cfg.Library.Root)
		assert.Equal(t, 5*time.Second, cfg.Library.HTTPTimeout)
	})

	t.Run("explicit config file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "custom.toml")
		writeConfig(t, path, `warn_exists = true`)

		cfg, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)
		assert.True(t, cfg.WarnExists)
	})

	t.Run("env overrides file", func(t *testing.T) {
		dir := isolate(t)
		writeConfig(t, filepath.Join(dir, "config", paths.ConfigFileName), `
[library]
root = "/from-file"
`)
		t.Setenv("PHOTOSNAP_LIBRARY__ROOT", "/from-env")
		t.Setenv("PHOTOSNAP_DRY_RUN", "true")

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, "/from-env", cfg.Library.Root)
		assert.True(t, cfg.DryRun)
	})

	t.Run("flags override env", func(t *testing.T) {
		isolate(t)
		t.Setenv("PHOTOSNAP_MEDIA_TYPES", "A")

		cfg, err := Load(LoadOptions{Flags: map[string]interface{}{
			"media_types":          "V",
			"library.root":         "/from-flag",
			"verify.scratch_dir":   "/scratch",
			"library.http_timeout": "2m",
		}})
		require.NoError(t, err)
		assert.Equal(t, "V", cfg.MediaTypes)
		assert.Equal(t, "/from-flag", cfg.Library.Root)
		assert.Equal(t, "/scratch", cfg.Verify.ScratchDir)
		assert.Equal(t, 2*time.Minute, cfg.Library.HTTPTimeout)
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{name: "malformed toml", content: `media_types = `, code: errors.ErrConfigParse},
		{name: "negative limit", content: `fetch_limit = -1`, code: errors.ErrConfigParse},
		{name: "empty date format", content: `date_format = ""`, code: errors.ErrConfigParse},
		{name: "bad duration", content: "[library]\nhttp_timeout = \"soon\"", code: errors.ErrConfigParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "bad.toml")
			writeConfig(t, path, tt.content)

			_, err := Load(LoadOptions{ConfigFile: path})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, errors.ExitConfig, errors.ExitCode(err))
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		dir := isolate(t)
		_, err := Load(LoadOptions{ConfigFile: filepath.Join(dir, "nope.toml")})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "library.root", envKey("PHOTOSNAP_LIBRARY__ROOT"))
	assert.Equal(t, "date_format", envKey("PHOTOSNAP_DATE_FORMAT"))
	assert.Equal(t, "verify.scratch_dir", envKey("PHOTOSNAP_VERIFY__SCRATCH_DIR"))
}

func TestDefaultContent(t *testing.T) {
	assert.Contains(t, DefaultContent(), "[library]")
}
