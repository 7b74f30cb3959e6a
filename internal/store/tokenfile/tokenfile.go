// Package tokenfile persists the auth token in ~/.basket/credentials.json.
// A BASKET_TOKEN env var overrides the file and is never written or removed.
package tokenfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	credFileName = "credentials.json"
	envToken     = "BASKET_TOKEN"
)

type credentials struct {
	Token     string    `json:"token"`
	Source    string    `json:"source"` // "env" | "file"
	CreatedAt time.Time `json:"created_at"`
}

// Store is a single durable token slot. The zero value is not usable;
// construct with New.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, or at ~/.basket when dir is empty.
func New(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home: %w", err)
		}
		dir = filepath.Join(home, ".basket")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, credFileName)
}

// Load returns the current token, or "" when anonymous. The env override
// wins over the file.
func (s *Store) Load() (string, error) {
	if env := strings.TrimSpace(os.Getenv(envToken)); env != "" {
		return stripBearer(env), nil
	}
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil // not logged in
		}
		return "", fmt.Errorf("read credentials: %w", err)
	}
	var c credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return "", fmt.Errorf("parse credentials: %w", err)
	}
	return stripBearer(c.Token), nil
}

// Save writes the token to the credentials file (dir 0700, file 0600).
func (s *Store) Save(token string) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	c := credentials{
		Token:     token,
		Source:    "file",
		CreatedAt: time.Now(),
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(s.path(), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Clear removes the credentials file. Missing file is fine; an env-sourced
// token cannot be cleared from here.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// FromEnv reports whether the token is supplied by the environment.
func (s *Store) FromEnv() bool {
	return strings.TrimSpace(os.Getenv(envToken)) != ""
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
