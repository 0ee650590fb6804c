package fsrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/farhan/scribe/internal/apperror"
)

// UserStore is a UserRepository persisted as a single YAML file mapping
// username → bcrypt hash:
//
//	admin: $2a$12$N9qo8uLOickgx2ZMRZoMye...
//	alice: $2a$12$kC3x1mPq0eW7vYb8jRtBne...
//
// The file is re-read on every operation, so there is nothing to cache
// or invalidate; within a request the mapping always reflects the
// latest on-disk state. Save is a full read-modify-write of the file —
// not atomic across processes, so concurrent registrations can race and
// lose an update. Accepted at this app's scale.
type UserStore struct {
	path string
}

// NewUserStore returns a store backed by the YAML file at path. The
// file doesn't have to exist yet — a missing file reads as zero users
// and is created on the first Save.
func NewUserStore(path string) (*UserStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("fsrepo: resolving users file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("fsrepo: creating users file dir: %w", err)
	}
	return &UserStore{path: abs}, nil
}

// LoadAll reads the whole credential mapping fresh from disk.
func (s *UserStore) LoadAll(ctx context.Context) (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("fsrepo: reading users file: %w", err)
	}

	users := map[string]string{}
	if err := yaml.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("fsrepo: parsing users file: %w", err)
	}
	return users, nil
}

// Get returns the stored password hash for username.
func (s *UserStore) Get(ctx context.Context, username string) (string, error) {
	users, err := s.LoadAll(ctx)
	if err != nil {
		return "", err
	}

	hash, ok := users[username]
	if !ok {
		return "", apperror.NotFound(username)
	}
	return hash, nil
}

// Save appends a new username → hash pair by rewriting the whole file.
// The username must not already be present — matching is exact and
// case-sensitive.
func (s *UserStore) Save(ctx context.Context, username, passwordHash string) error {
	users, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}

	if _, taken := users[username]; taken {
		return apperror.Conflict("That username is already taken.")
	}
	users[username] = passwordHash

	out, err := yaml.Marshal(users)
	if err != nil {
		return fmt.Errorf("fsrepo: encoding users file: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(out)); err != nil {
		return fmt.Errorf("fsrepo: writing users file: %w", err)
	}
	return nil
}
