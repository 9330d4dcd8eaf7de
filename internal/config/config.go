package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/logging"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no tasklist found (run 'tasklist init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the tasklist configuration.
type Config struct {
	Version    int          `yaml:"version"`
	DataDir    string       `yaml:"data_dir"`
	StorageKey string       `yaml:"storage_key"`
	ThemeKey   string       `yaml:"theme_key"`
	Prompt     PromptConfig `yaml:"prompt"`
	TUI        TUIConfig    `yaml:"tui,omitempty"`
	Log        LogConfig    `yaml:"log"`

	// dir is the absolute path to the tasklist directory (not serialized).
	dir string `yaml:"-"`
}

// PromptConfig holds confirmation prompt settings.
type PromptConfig struct {
	Debounce string `yaml:"debounce"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	DefaultFilter string `yaml:"default_filter,omitempty"`
	DateFormat    string `yaml:"date_format,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Dir returns the absolute path to the tasklist directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the tasklist directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// DataPath returns the absolute path to the slot directory.
func (c *Config) DataPath() string {
	if filepath.IsAbs(c.DataDir) {
		return c.DataDir
	}
	return filepath.Join(c.dir, c.DataDir)
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:    CurrentVersion,
		DataDir:    DefaultDataDir,
		StorageKey: DefaultStorageKey,
		ThemeKey:   DefaultThemeKey,
		Prompt:     PromptConfig{Debounce: DefaultDebounce},
		TUI: TUIConfig{
			DefaultFilter: DefaultFilter,
			DateFormat:    DefaultDateFormat,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DebounceDuration parses prompt.debounce. Returns the default if unset.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Prompt.Debounce)
	if err != nil {
		return defaultDebounce()
	}
	return d
}

// Filter returns the configured initial TUI filter.
func (c *Config) Filter() task.Filter {
	f, err := task.ParseFilter(c.TUI.DefaultFilter)
	if err != nil {
		return task.FilterAll
	}
	return f
}

// DateLayout returns the configured time layout.
func (c *Config) DateLayout() string {
	if c.TUI.DateFormat == "" {
		return DefaultDateFormat
	}
	return c.TUI.DateFormat
}

// LogOptions returns the logger options for this config.
func (c *Config) LogOptions() logging.Options {
	return logging.FromConfig(c.Log.Level, c.Log.Format)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir is required", ErrInvalid)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("%w: storage_key is required", ErrInvalid)
	}
	if c.ThemeKey == "" {
		return fmt.Errorf("%w: theme_key is required", ErrInvalid)
	}
	if c.StorageKey == c.ThemeKey {
		return fmt.Errorf("%w: storage_key and theme_key must differ", ErrInvalid)
	}
	if err := c.validatePrompt(); err != nil {
		return err
	}
	if err := c.validateTUI(); err != nil {
		return err
	}
	return c.validateLog()
}

func (c *Config) validatePrompt() error {
	d, err := time.ParseDuration(c.Prompt.Debounce)
	if err != nil {
		return fmt.Errorf("%w: invalid prompt.debounce %q: %w", ErrInvalid, c.Prompt.Debounce, err)
	}
	if d < 0 {
		return fmt.Errorf("%w: prompt.debounce must be >= 0", ErrInvalid)
	}
	return nil
}

func (c *Config) validateTUI() error {
	if c.TUI.DefaultFilter != "" {
		if _, err := task.ParseFilter(c.TUI.DefaultFilter); err != nil {
			return fmt.Errorf("%w: tui.default_filter: %w", ErrInvalid, err)
		}
	}
	return nil
}

func (c *Config) validateLog() error {
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: invalid log.level %q (expected debug, info, warn or error)", ErrInvalid, c.Log.Level)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("%w: invalid log.format %q (expected text, json or logfmt)", ErrInvalid, c.Log.Format)
	}
	return nil
}

// Get returns the value of a setting by its dotted key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "data_dir":
		return c.DataDir, nil
	case "storage_key":
		return c.StorageKey, nil
	case "theme_key":
		return c.ThemeKey, nil
	case "prompt.debounce":
		return c.Prompt.Debounce, nil
	case "tui.default_filter":
		return c.TUI.DefaultFilter, nil
	case "tui.date_format":
		return c.TUI.DateFormat, nil
	case "log.level":
		return c.Log.Level, nil
	case "log.format":
		return c.Log.Format, nil
	}
	return "", invalidKey(key)
}

// Set updates a setting by its dotted key and validates the result. On a
// validation failure the config is left unchanged.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "data_dir":
		next.DataDir = value
	case "storage_key":
		next.StorageKey = value
	case "theme_key":
		next.ThemeKey = value
	case "prompt.debounce":
		next.Prompt.Debounce = value
	case "tui.default_filter":
		next.TUI.DefaultFilter = strings.ToLower(strings.TrimSpace(value))
	case "tui.date_format":
		next.TUI.DateFormat = value
	case "log.level":
		next.Log.Level = value
	case "log.format":
		next.Log.Format = value
	default:
		return invalidKey(key)
	}
	if err := next.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}
	*c = next
	return nil
}

func invalidKey(key string) error {
	return clierr.Newf(clierr.InvalidConfigKey, "unknown config key %q", key).
		WithDetails(map[string]any{"key": key, "valid": Keys})
}

// Init creates a tasklist directory with default settings. It creates the
// directory, the data subdirectory and the config file.
func Init(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(cfg.DataPath(), dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given tasklist directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	// Migrate old config versions forward before validating.
	migrated, err := migrate(&cfg)
	if err != nil {
		return nil, err
	}
	if migrated {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a tasklist directory
// containing config.yml. Returns the absolute path to the tasklist directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.ConfigNotFound,
				"no tasklist found (run 'tasklist init' to create one)")
		}
		dir = parent
	}
}
