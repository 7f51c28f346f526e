package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrInvalidTheme = errors.New("invalid theme")

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type file struct {
	Theme string `yaml:"theme"`
}

// Store persists the theme preference as a YAML file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored theme. A missing, unreadable or invalid file
// yields the light theme.
func (s *Store) Load() Theme {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ThemeLight
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ThemeLight
	}
	theme, err := ParseTheme(f.Theme)
	if err != nil {
		return ThemeLight
	}
	return theme
}

func (s *Store) Save(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}

	data, err := yaml.Marshal(file{Theme: string(theme)})
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Toggle flips the stored theme and returns the new value.
func (s *Store) Toggle() (Theme, error) {
	next := s.Load().Toggle()
	if err := s.Save(next); err != nil {
		return "", err
	}
	return next, nil
}
