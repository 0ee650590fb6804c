// Package markdown converts document content for presentation.
//
// ".md" documents are rendered to HTML with goldmark (CommonMark
// baseline — no GFM tables/footnotes, the app doesn't need them).
// Everything else passes through untouched as plain text, including
// extensions that should never appear via the create path; the renderer
// is deliberately defensive about files that predate the app.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
)

// Result is the presentation form of a document.
type Result struct {
	ContentType string // "text/html; charset=utf-8" or "text/plain; charset=utf-8"
	Body        []byte // rendered HTML, or the raw content verbatim
	Title       string // from front matter, empty if none
}

// HTML reports whether the result should be shown as an HTML page
// (rendered markdown) rather than served as a raw plain-text body.
func (r *Result) HTML() bool {
	return strings.HasPrefix(r.ContentType, "text/html")
}

// Renderer turns markdown into HTML. It is stateless and safe to share
// across requests without locking, so the server holds a single
// instance for its whole lifetime.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer builds a renderer with goldmark's CommonMark defaults.
func NewRenderer() *Renderer {
	return &Renderer{engine: goldmark.New()}
}

// meta is the recognised front matter. Only title is used; unknown keys
// are ignored rather than rejected so documents stay portable.
type meta struct {
	Title string `yaml:"title"`
}

// Render converts content according to the file extension.
//
// A ".md" document may start with a YAML front matter block:
//
//	---
//	title: About this site
//	---
//
// The block is stripped from the rendered body and its title is
// returned for use as the page title. Documents without front matter
// render as-is.
func (r *Renderer) Render(content []byte, ext string) (*Result, error) {
	if !strings.EqualFold(ext, ".md") {
		return &Result{
			ContentType: "text/plain; charset=utf-8",
			Body:        content,
		}, nil
	}

	var m meta
	body, err := frontmatter.Parse(bytes.NewReader(content), &m)
	if err != nil {
		// Malformed front matter shouldn't make a document unreadable —
		// render the full content and skip the metadata.
		body = content
		m = meta{}
	}

	var buf bytes.Buffer
	if err := r.engine.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("markdown: rendering: %w", err)
	}

	return &Result{
		ContentType: "text/html; charset=utf-8",
		Body:        buf.Bytes(),
		Title:       m.Title,
	}, nil
}
