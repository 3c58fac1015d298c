package contract

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ErrNotLoggedIn is returned by views that run without stored credentials.
var ErrNotLoggedIn = errors.New("not logged in; run 'sprintlens login'")

// Session holds the credentials of a tracker instance.
// It is loaded once per command and passed around by reference.
type Session struct {
	InstanceURL string `yaml:"instance_url"`
	Email       string `yaml:"email"`
	APIToken    string `yaml:"api_token"`
}

// Validate checks that every field is present and the URL is absolute.
func (s *Session) Validate() error {
	if s.InstanceURL == "" {
		return errors.New("instance URL is required")
	}
	u, err := url.Parse(s.InstanceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("instance URL %q must be absolute, e.g. https://example.atlassian.net", s.InstanceURL)
	}
	if !strings.Contains(s.Email, "@") {
		return fmt.Errorf("email %q is not valid", s.Email)
	}
	if s.APIToken == "" {
		return errors.New("API token is required")
	}
	return nil
}

// MaskedToken returns the token with everything but the last four characters hidden.
func (s *Session) MaskedToken() string {
	if len(s.APIToken) <= 4 {
		return strings.Repeat("*", len(s.APIToken))
	}
	return strings.Repeat("*", len(s.APIToken)-4) + s.APIToken[len(s.APIToken)-4:]
}

// RequireSession gates the views on the presence of credentials.
func RequireSession(s *Session) error {
	if s == nil {
		return ErrNotLoggedIn
	}
	return nil
}

// GetSessionFilePath returns the default location of the session file.
func GetSessionFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sprintlens_session.yaml"
	}
	return filepath.Join(homeDir, ".sprintlens_session.yaml")
}

// LoadSession reads the session file. A missing file means logged out and
// yields a nil session without error.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session in %s: %w", path, err)
	}
	return &s, nil
}

// SaveSession validates and writes the session with owner-only permissions.
func SaveSession(path string, s *Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// ClearSession removes the session file. Removing a missing file is not an error.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
