// Package prefs persists the client's small piece of local state: who the
// user is and how they like the screen. Every setter writes through to disk.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// State file keys
const (
	KeyUsername = "username"
	KeyUserID   = "user_id"
	KeyLanguage = "language"
	KeyTheme    = "theme"
)

// Default values
const (
	DefaultLanguage = "ru"
	DefaultTheme    = "dark"
)

// Store is a viper-backed YAML state file
type Store struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// Load opens the state file at path. A missing file yields an empty store
// that is created on the first write. defaultLanguage and defaultTheme are
// returned until a value is stored; empty arguments fall back to DefaultLanguage
// and DefaultTheme.
func Load(path, defaultLanguage, defaultTheme string) (*Store, error) {
	if path == "" {
		return nil, errors.New("state file path is required")
	}
	if defaultLanguage == "" {
		defaultLanguage = DefaultLanguage
	}
	if defaultTheme == "" {
		defaultTheme = DefaultTheme
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(KeyLanguage, defaultLanguage)
	v.SetDefault(KeyTheme, defaultTheme)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading state file: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading state file: %w", err)
	}

	return &Store{v: v, path: path}, nil
}

// Path returns the state file location
func (s *Store) Path() string {
	return s.path
}

// Username returns the stored username, or "" when no identity exists yet
func (s *Store) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(KeyUsername)
}

// UserID returns the stored user identifier
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(KeyUserID)
}

// Language returns the stored language code
func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(KeyLanguage)
}

// Theme returns the stored theme name
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(KeyTheme)
}

// SetUser stores the identity created for this client
func (s *Store) SetUser(username, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(KeyUsername, username)
	s.v.Set(KeyUserID, userID)
	return s.save()
}

// SetLanguage stores the language code
func (s *Store) SetLanguage(lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(KeyLanguage, lang)
	return s.save()
}

// SetTheme stores the theme name
func (s *Store) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(KeyTheme, theme)
	return s.save()
}

// Reset forgets the stored identity, keeping display preferences
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(KeyUsername, "")
	s.v.Set(KeyUserID, "")
	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
