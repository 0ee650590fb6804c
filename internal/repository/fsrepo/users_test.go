package fsrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/farhan/scribe/internal/apperror"
)

func newTestUserStore(t *testing.T) (*UserStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	store, err := NewUserStore(path)
	if err != nil {
		t.Fatalf("NewUserStore() error = %v", err)
	}
	return store, path
}

func TestUserStore_MissingFileReadsAsEmpty(t *testing.T) {
	store, _ := newTestUserStore(t)

	users, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("LoadAll() on missing file = %v, want empty map", users)
	}
}

func TestUserStore_SaveThenGet(t *testing.T) {
	store, _ := newTestUserStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "alice", "$2a$04$fakehash"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	hash, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hash != "$2a$04$fakehash" {
		t.Errorf("Get() = %q, want the stored hash", hash)
	}
}

func TestUserStore_GetUnknownUserIsNotFound(t *testing.T) {
	store, _ := newTestUserStore(t)

	_, err := store.Get(context.Background(), "nobody")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestUserStore_SaveDuplicateIsConflict(t *testing.T) {
	store, _ := newTestUserStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "alice", "hash-one"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	err := store.Save(ctx, "alice", "hash-two")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("duplicate Save() error = %v, want ErrConflict", err)
	}

	// The original hash must be untouched by the rejected attempt.
	hash, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hash != "hash-one" {
		t.Errorf("Get() after rejected duplicate = %q, want %q", hash, "hash-one")
	}
}

func TestUserStore_UsernamesAreCaseSensitive(t *testing.T) {
	store, _ := newTestUserStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "Alice", "h1"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	// Exact-match semantics: "alice" is a different user.
	if err := store.Save(ctx, "alice", "h2"); err != nil {
		t.Fatalf("Save() with different case error = %v", err)
	}
}

func TestUserStore_PersistsAsYAMLMapping(t *testing.T) {
	store, path := newTestUserStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "admin", "somehash"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Re-open the file with a fresh store — the mapping must round-trip
	// through the on-disk YAML, not any in-memory state.
	fresh, err := NewUserStore(path)
	if err != nil {
		t.Fatalf("NewUserStore() error = %v", err)
	}
	hash, err := fresh.Get(ctx, "admin")
	if err != nil {
		t.Fatalf("Get() via fresh store error = %v", err)
	}
	if hash != "somehash" {
		t.Errorf("Get() via fresh store = %q, want %q", hash, "somehash")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading users file: %v", err)
	}
	if len(raw) == 0 {
		t.Error("users file is empty after Save()")
	}
}
