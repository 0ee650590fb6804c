// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "path/filepath"

// Document represents a single user-authored file in the storage directory.
//
// A document has no identity beyond its filename: the name (including
// extension) is the key, and the extension decides how the content is
// presented (".md" is rendered to HTML, everything else is served as
// plain text). Nothing about a document survives in memory between
// requests — the filesystem is the single source of truth.
type Document struct {
	Name    string // filename including extension, e.g. "about.md"
	Content []byte // raw file content, exactly as stored on disk
}

// Extension returns the document's file extension, including the leading
// dot (".md", ".txt"). Derived from Name rather than stored separately so
// the two can never disagree.
func (d *Document) Extension() string {
	return filepath.Ext(d.Name)
}

// AllowedExtensions lists the extensions a document may be created with.
// Files with other extensions can still exist in the storage directory
// (listing is unfiltered) — they just can't be created through the app.
var AllowedExtensions = []string{".md", ".txt"}

// ValidExtension reports whether ext is one of the allowed document
// extensions for the create path.
func ValidExtension(ext string) bool {
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
