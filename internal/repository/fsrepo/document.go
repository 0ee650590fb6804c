// Package fsrepo implements the repository interfaces on top of flat
// files.
//
// WHY FLAT FILES?
// Documents are exactly what the user typed — a directory of .md/.txt
// files is the most direct representation, is trivially inspectable and
// editable outside the app, and needs no schema or server. The tradeoff
// is no locking and no transactions: concurrent writers to the same
// file follow last-writer-wins. That is an accepted limitation at this
// app's single-admin scale.
//
// CRASH SAFETY:
// All writes go through github.com/natefinch/atomic, which writes to a
// temp file and renames it into place. A crash mid-write leaves either
// the old content or the new content on disk, never a torn file.
package fsrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/farhan/scribe/internal/apperror"
)

// DocumentStore is a DocumentRepository backed by a single directory.
// Every document is a regular file directly under dir; subdirectories
// are ignored by List and unreachable by name (see resolve).
type DocumentStore struct {
	dir string
}

// NewDocumentStore creates the storage directory if needed and returns
// a store rooted at it. The directory is resolved to an absolute path
// once so the confinement check in resolve has a stable prefix.
func NewDocumentStore(dir string) (*DocumentStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("fsrepo: resolving document dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("fsrepo: creating document dir: %w", err)
	}
	return &DocumentStore{dir: abs}, nil
}

// resolve maps a document name to its on-disk path, confining it to the
// storage directory.
//
// Names come straight from URL paths and form fields, so this is the
// security boundary against path traversal: a name must be a single
// path element ("about.md", not "a/b.md" or "../users.yaml"). As a
// belt-and-braces check, the joined path must still sit inside dir.
// Rejected names surface as NotFound — the caller learns nothing about
// paths outside the store.
func (s *DocumentStore) resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", apperror.NotFound(name)
	}

	path := filepath.Join(s.dir, name)
	if filepath.Dir(path) != s.dir {
		return "", apperror.NotFound(name)
	}
	return path, nil
}

// List returns the names of all regular files directly under the
// storage directory. The listing is unfiltered — files with extensions
// other than .md/.txt show up too, matching what's actually on disk.
func (s *DocumentStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("fsrepo: listing documents: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Exists reports whether a regular file with the given name is present.
// Invalid (non-resolvable) names simply don't exist.
func (s *DocumentStore) Exists(ctx context.Context, name string) (bool, error) {
	path, err := s.resolve(name)
	if err != nil {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("fsrepo: stat %s: %w", name, err)
	}
	return info.Mode().IsRegular(), nil
}

// Read returns the raw content of the named document.
func (s *DocumentStore) Read(ctx context.Context, name string) ([]byte, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperror.NotFound(name)
		}
		return nil, fmt.Errorf("fsrepo: reading %s: %w", name, err)
	}
	return content, nil
}

// Create writes a new document. An existing document with the same name
// is silently overwritten — last-writer-wins, no conflict error.
func (s *DocumentStore) Create(ctx context.Context, name string, content []byte) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("fsrepo: creating %s: %w", name, err)
	}
	return nil
}

// Write replaces the content of an existing document. If the document
// doesn't exist this is a no-op, not an error — callers that need to
// distinguish must check Exists first.
func (s *DocumentStore) Write(ctx context.Context, name string, content []byte) error {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("fsrepo: writing %s: %w", name, err)
	}
	return nil
}

// Delete removes the named document. Deleting an absent document is
// fine — the second delete in a row returns nil just like the first.
func (s *DocumentStore) Delete(ctx context.Context, name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return nil
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("fsrepo: deleting %s: %w", name, err)
	}
	return nil
}
