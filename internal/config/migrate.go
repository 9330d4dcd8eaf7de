package config

import "fmt"

// migrations[i] upgrades a config from version i+1 to i+2.
var migrations = []func(*Config){
	migrateV1ToV2,
}

// migrate brings cfg up to CurrentVersion and reports whether anything
// changed. Versions newer than this binary understands are rejected.
func migrate(cfg *Config) (bool, error) {
	switch {
	case cfg.Version < 1:
		return false, fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	case cfg.Version > CurrentVersion:
		return false, fmt.Errorf("%w: config version %d is newer than %d (upgrade tasklist)",
			ErrInvalid, cfg.Version, CurrentVersion)
	case cfg.Version == CurrentVersion:
		return false, nil
	}

	for cfg.Version < CurrentVersion {
		step := cfg.Version - 1
		if step >= len(migrations) {
			return false, fmt.Errorf("%w: no migration from version %d", ErrInvalid, cfg.Version)
		}
		migrations[step](cfg)
		cfg.Version++
	}
	return true, nil
}

// migrateV1ToV2 fills the prompt and log sections introduced in v2.
func migrateV1ToV2(cfg *Config) {
	if cfg.Prompt.Debounce == "" {
		cfg.Prompt.Debounce = DefaultDebounce
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
