package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"propertyhub/internal/models"

	"gopkg.in/yaml.v3"
)

// PersistedSession is the only client data kept between runs
type PersistedSession struct {
	Token string             `yaml:"token"`
	User  *models.PublicUser `yaml:"user,omitempty"`
}

// SessionStore keeps the session token and last-known user in a YAML file
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath returns ~/.propertyhub/session.yaml
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".propertyhub", "session.yaml"), nil
}

// Load returns an empty session when the file does not exist
func (s *SessionStore) Load() (*PersistedSession, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &PersistedSession{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session PersistedSession
	if err := yaml.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Save(session *PersistedSession) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
