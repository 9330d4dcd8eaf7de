// Package config handles tasklist configuration.
package config

import (
	"time"

	"github.com/twiced-technology-gmbh/tasklist/internal/date"
	"github.com/twiced-technology-gmbh/tasklist/internal/prompt"
)

const (
	// DefaultDir is the project-local tasklist directory name.
	DefaultDir = ".tasklist"
	// DefaultDataDir is the slot directory, relative to the tasklist directory.
	DefaultDataDir = "data"
	// DefaultStorageKey is the slot key holding the task collection.
	DefaultStorageKey = "todo-list:v1"
	// DefaultThemeKey is the slot key holding the theme preference.
	DefaultThemeKey = "theme-preference"
	// DefaultFilter is the filter the TUI opens with.
	DefaultFilter = "all"
	// DefaultDateFormat is the Go time layout for task timestamps.
	DefaultDateFormat = date.DefaultLayout
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default log formatter.
	DefaultLogFormat = "text"

	// ConfigFileName is the name of the config file within the tasklist directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)

// DefaultDebounce is the default minimum gap between two prompts.
var DefaultDebounce = prompt.DefaultDebounce.String()

// Keys lists the settings reachable through Get and Set, in display order.
var Keys = []string{
	"data_dir",
	"storage_key",
	"theme_key",
	"prompt.debounce",
	"tui.default_filter",
	"tui.date_format",
	"log.level",
	"log.format",
}

func defaultDebounce() time.Duration {
	return prompt.DefaultDebounce
}
