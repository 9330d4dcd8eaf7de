package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	cfg, err := Init(dir)
	require.NoError(t, err)
	assert.DirExists(t, cfg.DataPath())
	assert.FileExists(t, cfg.ConfigPath())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultStorageKey, loaded.StorageKey)
	assert.Equal(t, DefaultThemeKey, loaded.ThemeKey)
	assert.Equal(t, 350*time.Millisecond, loaded.DebounceDuration())
	assert.Equal(t, task.FilterAll, loaded.Filter())
	assert.Equal(t, "02/01/2006 15:04", loaded.DateLayout())
	assert.Equal(t, filepath.Join(dir, "data"), loaded.DataPath())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadMigratesV1(t *testing.T) {
	dir := t.TempDir()
	v1 := "version: 1\ndata_dir: data\nstorage_key: todo-list:v1\ntheme_key: theme-preference\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), fileMode))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, DefaultDebounce, cfg.Prompt.Debounce)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: 2")
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 99\n"), fileMode))

	_, err := Load(dir)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestMigrate(t *testing.T) {
	cfg := &Config{Version: CurrentVersion}
	migrated, err := migrate(cfg)
	require.NoError(t, err)
	assert.False(t, migrated)

	cfg = &Config{Version: 1, Log: LogConfig{Level: "debug"}}
	migrated, err = migrate(cfg)
	require.NoError(t, err)
	assert.True(t, migrated)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)

	_, err = migrate(&Config{})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"empty storage key", func(c *Config) { c.StorageKey = "" }},
		{"same keys", func(c *Config) { c.ThemeKey = c.StorageKey }},
		{"bad debounce", func(c *Config) { c.Prompt.Debounce = "soon" }},
		{"negative debounce", func(c *Config) { c.Prompt.Debounce = "-1s" }},
		{"bad filter", func(c *Config) { c.TUI.DefaultFilter = "later" }},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}

	require.NoError(t, NewDefault().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			assert.True(t, errors.Is(cfg.Validate(), ErrInvalid))
		})
	}
}

func TestGetSet(t *testing.T) {
	cfg := NewDefault()

	require.NoError(t, cfg.Set("tui.default_filter", " Pending "))
	v, err := cfg.Get("tui.default_filter")
	require.NoError(t, err)
	assert.Equal(t, "pending", v)
	assert.Equal(t, task.FilterPending, cfg.Filter())

	require.NoError(t, cfg.Set("prompt.debounce", "1s"))
	assert.Equal(t, time.Second, cfg.DebounceDuration())

	err = cfg.Set("log.level", "loud")
	assert.True(t, clierr.HasCode(err, clierr.InvalidInput))
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)

	_, err = cfg.Get("board.name")
	assert.True(t, clierr.HasCode(err, clierr.InvalidConfigKey))
	assert.True(t, clierr.HasCode(cfg.Set("board.name", "x"), clierr.InvalidConfigKey))

	for _, k := range Keys {
		_, err := cfg.Get(k)
		assert.NoError(t, err, k)
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	_, err := Init(filepath.Join(root, DefaultDir))
	require.NoError(t, err)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	found, err := FindDir(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultDir), found)
}

func TestDataPathAbsolute(t *testing.T) {
	cfg := NewDefault()
	cfg.SetDir("/tmp/tl")
	cfg.DataDir = "/var/lib/tasklist"
	assert.Equal(t, "/var/lib/tasklist", cfg.DataPath())
}
