// Package prefs persists the player's display preferences between runs.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const (
	ThemeClassic = "classic"
	ThemeDark    = "dark"
)

// Preferences are the settings the player can change from the game screen.
type Preferences struct {
	Theme     string `yaml:"theme"`
	Vibration bool   `yaml:"vibration"`
}

// Defaults is what a first run, or an unreadable file, gets.
func Defaults() Preferences {
	return Preferences{Theme: ThemeClassic, Vibration: true}
}

func (p Preferences) normalized() Preferences {
	if p.Theme != ThemeClassic && p.Theme != ThemeDark {
		p.Theme = ThemeClassic
	}
	return p
}

// Store reads and writes a YAML preferences file.
type Store struct {
	path string
}

// NewStore uses path, or the default location when path is empty.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// DefaultPath is preferences.yaml in the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "minesweeper_preferences.yaml"
	}
	return filepath.Join(dir, "go-minesweeper", "preferences.yaml")
}

func (s *Store) Path() string { return s.path }

// Load returns the stored preferences. A missing or corrupt file yields
// Defaults without an error.
func (s *Store) Load() Preferences {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Defaults()
	}
	p := Defaults()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Defaults()
	}
	return p.normalized()
}

// Save writes p, creating the directory if needed.
func (s *Store) Save(p Preferences) error {
	data, err := yaml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
