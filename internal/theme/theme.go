// Package theme stores the light/dark preference and maps it to styles.
package theme

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/slot"
)

// Name is a theme name.
type Name string

const (
	Light Name = "light"
	Dark  Name = "dark"
)

// Parse reads a theme name.
func Parse(s string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", clierr.Newf(clierr.InvalidTheme, "invalid theme %q: expected light or dark", s).
		WithDetails(map[string]any{"theme": s})
}

// Toggle returns the other theme.
func (n Name) Toggle() Name {
	if n == Dark {
		return Light
	}
	return Dark
}

// Preference is the theme slot.
type Preference struct {
	slot   slot.Slot
	key    string
	detect func() bool
}

// NewPreference returns the preference stored under key. With no stored
// value the terminal background decides.
func NewPreference(s slot.Slot, key string) *Preference {
	return &Preference{slot: s, key: key, detect: termenv.HasDarkBackground}
}

// WithDetector replaces the terminal background check.
func (p *Preference) WithDetector(fn func() bool) *Preference {
	p.detect = fn
	return p
}

// Key returns the slot key.
func (p *Preference) Key() string {
	return p.key
}

// Load returns the stored theme, falling back to the terminal's background.
// An unreadable or unrecognised value falls back the same way.
func (p *Preference) Load() Name {
	if v, ok, err := p.slot.Get(p.key); err == nil && ok {
		if n, err := Parse(v); err == nil {
			return n
		}
	}
	if p.detect() {
		return Dark
	}
	return Light
}

// Observed applies the rule used when another process changes the slot:
// "dark" means dark and anything else, including no value, means light.
func (p *Preference) Observed() Name {
	v, ok, err := p.slot.Get(p.key)
	if err == nil && ok && strings.TrimSpace(v) == string(Dark) {
		return Dark
	}
	return Light
}

// Save stores n.
func (p *Preference) Save(n Name) error {
	if _, err := Parse(string(n)); err != nil {
		return err
	}
	if err := p.slot.Set(p.key, string(n)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// Reset removes the stored preference so Load follows the terminal again.
func (p *Preference) Reset() error {
	if err := p.slot.Delete(p.key); err != nil {
		return fmt.Errorf("clearing theme: %w", err)
	}
	return nil
}
