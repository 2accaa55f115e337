package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"account_connector/domain/interfaces"
)

type profileStore struct {
	root string
}

// NewProfileStore - creates a store keeping one browser profile per token under root
func NewProfileStore(root string) interfaces.ProfileStore {
	return &profileStore{root: root}
}

// EnsureProfile - creates the profile directory for token if needed
func (s *profileStore) EnsureProfile(token string) (string, error) {
	dir, err := s.profileDir(token)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create profile directory: %w", err)
	}
	return dir, nil
}

// ResetProfile - removes the stored profile for token
func (s *profileStore) ResetProfile(token string) error {
	dir, err := s.profileDir(token)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove profile directory: %w", err)
	}
	return nil
}

// profileDir - tokens are single path elements so a profile never escapes root
func (s *profileStore) profileDir(token string) (string, error) {
	if token == "" || token == "." || token == ".." || strings.ContainsAny(token, `/\`) {
		return "", fmt.Errorf("invalid session token %q", token)
	}
	return filepath.Join(s.root, token), nil
}
