// Package handler contains the HTTP request handlers.
//
// Handlers are the glue between HTTP and the services: they parse form
// fields and URL parameters, call the service layer, and pick a view or
// a redirect. Business rules (which names are valid, who may log in)
// live one layer down — a handler never decides those itself.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/farhan/scribe/internal/auth"
	"github.com/farhan/scribe/internal/flash"
)

// pageNames are the views that make up the app, one file per page under
// the template directory. Each page is parsed together with layout.html
// so {{define "content"}} blocks can fill the layout's content slot.
var pageNames = []string{"home", "new", "edit", "view", "login", "register", "signed_out"}

// Views holds the parsed template for each page. Parsing happens once at
// startup — executing a parsed template is cheap and safe concurrently.
type Views struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewViews parses layout.html plus every page template under dir.
func NewViews(dir string, logger *slog.Logger) (*Views, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFiles(
			filepath.Join(dir, "layout.html"),
			filepath.Join(dir, name+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("handler: parsing %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Views{pages: pages, logger: logger}, nil
}

// Render executes the named page inside the layout and writes it with
// the given status code.
//
// FLASH CLEARING HAPPENS HERE:
// Unless the caller supplied a Flash in data (the 422 re-render case,
// where the message belongs to this response, not a prior redirect),
// Render pops the pending flash cookie — read and clear in the same
// response, so no message ever leaks into a later view.
//
// The page is rendered into a buffer first; template errors surface as
// a clean 500 instead of a half-written page, and the flash cookie
// header is guaranteed to precede the status line.
func (v *Views) Render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]any) {
	tmpl, ok := v.pages[page]
	if !ok {
		v.logger.Error("unknown view", slog.String("page", page))
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = flash.Pop(w, r)
	}
	if username, ok := auth.UsernameFromContext(r.Context()); ok {
		data["Username"] = username
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = "Scribe"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		v.logger.Error("failed to render view",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w) //nolint:errcheck // client went away, nothing to do
}
