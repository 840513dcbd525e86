package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathSet(t *testing.T) {
	parent := t.TempDir()

	ps, err := NewPathSet(parent)
	require.NoError(t, err)
	assert.Equal(t, parent, ps.ParentRoot())
	assert.False(t, ps.HasBase())
	assert.Equal(t, "", ps.BasePath("a/Photo.jpg"))

	ps = ps.WithBase("2024-01-01_00-00-00").WithDest("2024-06-01_00-00-00")
	assert.True(t, ps.HasBase())
	assert.Equal(t, filepath.Join(parent, "2024-01-01_00-00-00"), ps.BaseRoot())
	assert.Equal(t, filepath.Join(parent, "2024-06-01_00-00-00"), ps.DestRoot())

	rel := "9F98/Photo - Modified.heic"
	assert.Equal(t, filepath.Join(parent, "2024-06-01_00-00-00", "9F98", "Photo - Modified.heic"), ps.DestPath(rel))
	assert.Equal(t, filepath.Join(parent, "2024-01-01_00-00-00", "9F98", "Photo - Modified.heic"), ps.BasePath(rel))

	// Absolute destinations are kept as-is
	scratch := filepath.Join(t.TempDir(), "verify")
	verify := ps.WithDest(scratch)
	assert.Equal(t, scratch, verify.DestRoot())
	// WithDest returns a copy
	assert.Equal(t, filepath.Join(parent, "2024-06-01_00-00-00"), ps.DestRoot())
}

func TestNewPathSetEmpty(t *testing.T) {
	_, err := NewPathSet("")
	assert.Error(t, err)
}

func TestNormalizePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absolute", "/tmp/../tmp/photos", "/tmp/photos"},
		{"relative", "photos", filepath.Join(cwd, "photos")},
		{"home", "~", home},
		{"home subdir", "~/Pictures", filepath.Join(home, "Pictures")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin("/a/b", "/a/b/c"))
	assert.True(t, IsWithin("/a/b", "/a/b"))
	assert.False(t, IsWithin("/a/b", "/a/c"))
	assert.False(t, IsWithin("/a/b", "/a"))
	assert.True(t, IsWithin("/a/b", "/a/b/..c"))
}

func TestXDGOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(dir, "cfg"))
	t.Setenv(EnvCacheDir, filepath.Join(dir, "cache"))
	t.Setenv(EnvStateDir, filepath.Join(dir, "state"))

	assert.Equal(t, filepath.Join(dir, "cfg"), ConfigDir())
	assert.Equal(t, filepath.Join(dir, "state"), StateDir())
	assert.Equal(t, filepath.Join(dir, "state", LogFileName), LogFile())
	assert.Equal(t, filepath.Join(dir, "cfg", ConfigFileName), ConfigFile())
	assert.Equal(t, filepath.Join(dir, "cache", VerifyDirName), ScratchDir())
}

func TestXDGDefaults(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvCacheDir, "")
	t.Setenv(EnvStateDir, "")

	assert.Equal(t, AppDirName, filepath.Base(ConfigDir()))
	assert.Equal(t, filepath.Join(xdg.StateHome, AppDirName, LogFileName), LogFile())
	assert.Equal(t, VerifyDirName, filepath.Base(ScratchDir()))
	assert.Equal(t, AppDirName, filepath.Base(filepath.Dir(ScratchDir())))
}
