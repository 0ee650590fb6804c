// Package repository declares the storage interfaces the service layer
// depends on.
//
// Services receive these interfaces, not the concrete flat-file types
// from fsrepo. That keeps the business rules independent of the storage
// backend — swapping the flat files for a real key-value store would
// only touch the wiring in server.go, never the route logic — and lets
// tests inject in-memory fakes.
package repository

import "context"

// DocumentRepository stores documents as opaque named blobs.
//
// Semantics the implementations must honour:
//   - Create silently overwrites an existing document (last-writer-wins,
//     no "already exists" error).
//   - Write is a no-op, not an error, when the document doesn't exist;
//     callers that care must check Exists first.
//   - Delete is idempotent — deleting an absent document returns nil.
//   - Read returns apperror.ErrNotFound (wrapped) for absent documents.
type DocumentRepository interface {
	List(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, name string) (bool, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Create(ctx context.Context, name string, content []byte) error
	Write(ctx context.Context, name string, content []byte) error
	Delete(ctx context.Context, name string) error
}

// UserRepository stores the username → password-hash mapping.
//
// LoadAll re-reads persisted storage on every call — there is no cache,
// so within a request the result always reflects the latest on-disk
// state. Save returns apperror.ErrConflict if the username is taken.
type UserRepository interface {
	LoadAll(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, username string) (string, error)
	Save(ctx context.Context, username, passwordHash string) error
}
