// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-layer shape:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the flat files
//
// Services accept primitives and return domain errors from the apperror
// package — they know nothing about HTTP, cookies, or templates. The
// handlers translate both directions.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/farhan/scribe/internal/apperror"
	"github.com/farhan/scribe/internal/model"
	"github.com/farhan/scribe/internal/repository"
)

// DocumentService enforces the rules around document CRUD: which names
// are creatable, how missing documents behave, and the idempotency of
// delete. It holds no state of its own — every call goes straight to
// the repository.
type DocumentService struct {
	repo   repository.DocumentRepository
	logger *slog.Logger
}

// NewDocumentService creates a DocumentService. The repository is an
// interface so tests inject an in-memory fake.
func NewDocumentService(repo repository.DocumentRepository, logger *slog.Logger) *DocumentService {
	return &DocumentService{
		repo:   repo,
		logger: logger,
	}
}

// List returns the names of all stored documents in directory
// enumeration order. The listing is deliberately unfiltered: files with
// foreign extensions that predate the app still show up and can be
// read, edited, and deleted — only creation is extension-restricted.
func (s *DocumentService) List(ctx context.Context) ([]string, error) {
	names, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list documents", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return names, nil
}

// Get returns the named document with its raw content.
// Returns apperror.ErrNotFound (wrapped) if it doesn't exist, including
// for names rejected by path confinement — a traversal attempt learns
// nothing beyond "not found".
func (s *DocumentService) Get(ctx context.Context, name string) (*model.Document, error) {
	content, err := s.repo.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	return &model.Document{Name: name, Content: content}, nil
}

// Create makes a new, empty document after validating the name.
//
// Validation rules (all surfaced as 422 by the handler):
//   - the name must be non-empty after trimming
//   - it must be a bare filename — no path separators, no ".."
//   - the extension must be .md or .txt
//
// If a document with the same name already exists it is silently
// overwritten with empty content: last-writer-wins, no conflict error.
func (s *DocumentService) Create(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return apperror.ValidationFailed("fname", "A name is required.")
	}
	if !bareFilename(name) {
		return apperror.ValidationFailed("fname",
			fmt.Sprintf("'%s' is not a valid document name.", name))
	}
	// name == ext catches bare ".md"/".txt" — filepath.Ext treats the
	// leading dot of a hidden file as an extension separator.
	if ext := filepath.Ext(name); !model.ValidExtension(ext) || name == ext {
		return apperror.ValidationFailed("fname",
			fmt.Sprintf("'%s' is invalid. Must be a '.md' or '.txt' file.", name))
	}

	if err := s.repo.Create(ctx, name, nil); err != nil {
		s.logger.Error("failed to create document",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("creating document: %w", err)
	}

	s.logger.Info("document created", slog.String("name", name))
	return nil
}

// Update replaces the content of an existing document. If the document
// doesn't exist, nothing is written and updated is false — the caller
// still redirects successfully, it just has nothing to announce.
func (s *DocumentService) Update(ctx context.Context, name string, content []byte) (updated bool, err error) {
	exists, err := s.repo.Exists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("updating document: %w", err)
	}
	if !exists {
		return false, nil
	}

	if err := s.repo.Write(ctx, name, content); err != nil {
		s.logger.Error("failed to update document",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return false, fmt.Errorf("updating document: %w", err)
	}

	s.logger.Info("document updated",
		slog.String("name", name),
		slog.Int("bytes", len(content)),
	)
	return true, nil
}

// Delete removes a document. Deleting twice in a row never errors;
// deleted reports whether anything was actually removed so the handler
// knows whether to flash.
func (s *DocumentService) Delete(ctx context.Context, name string) (deleted bool, err error) {
	exists, err := s.repo.Exists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("deleting document: %w", err)
	}
	if !exists {
		return false, nil
	}

	if err := s.repo.Delete(ctx, name); err != nil {
		s.logger.Error("failed to delete document",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return false, fmt.Errorf("deleting document: %w", err)
	}

	s.logger.Info("document deleted", slog.String("name", name))
	return true, nil
}

// bareFilename reports whether name is a single path element — the only
// shape of name the app ever creates. Anything with separators or
// dot-dot in it is a traversal attempt, not a document name.
func bareFilename(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
