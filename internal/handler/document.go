package handler

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/farhan/scribe/internal/apperror"
	"github.com/farhan/scribe/internal/flash"
	"github.com/farhan/scribe/internal/markdown"
	"github.com/farhan/scribe/internal/model"
	"github.com/farhan/scribe/internal/service"
)

// DocumentHandler serves the document routes: the home listing, viewing
// a rendered document, and the create/edit/delete forms and actions.
//
// ERROR SHAPE:
// A missing document is never a 404 page — the user is redirected home
// with a "X not found." flash, matching the rest of the app's
// redirect-and-flash flow. Only invalid create input gets a 422 with
// the form re-rendered inline.
type DocumentHandler struct {
	docs     *service.DocumentService
	renderer *markdown.Renderer
	views    *Views
	logger   *slog.Logger
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(docs *service.DocumentService, renderer *markdown.Renderer, views *Views, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docs:     docs,
		renderer: renderer,
		views:    views,
		logger:   logger,
	}
}

// HandleHome lists all documents.
//
// HTTP: GET /
func (h *DocumentHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	names, err := h.docs.List(r.Context())
	if err != nil {
		serverError(w, h.logger, err)
		return
	}

	h.views.Render(w, r, http.StatusOK, "home", map[string]any{
		"Documents": names,
	})
}

// HandleView shows a single document.
//
// HTTP: GET /{fname}
//
// ".md" content is rendered to HTML and shown inside the site layout;
// anything else is served verbatim as plain text. Missing documents
// redirect home with a flash — except favicon.ico, which browsers
// request on their own and which must not spam the user with a banner.
func (h *DocumentHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	fname := r.PathValue("fname")

	doc, err := h.docs.Get(r.Context(), fname)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			if fname != "favicon.ico" {
				flash.Set(w, model.FlashError, userMessage(err))
			}
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		serverError(w, h.logger, err)
		return
	}

	result, err := h.renderer.Render(doc.Content, doc.Extension())
	if err != nil {
		serverError(w, h.logger, err)
		return
	}

	if !result.HTML() {
		w.Header().Set("Content-Type", result.ContentType)
		w.Write(result.Body) //nolint:errcheck
		return
	}

	title := result.Title
	if title == "" {
		title = doc.Name
	}
	h.views.Render(w, r, http.StatusOK, "view", map[string]any{
		"Title": title,
		"Name":  doc.Name,
		// The body is our own goldmark output rendered from the user's
		// document, so it's injected unescaped on purpose.
		"Body": template.HTML(result.Body),
	})
}

// HandleNewForm shows the create-document form.
//
// HTTP: GET /new (auth required)
func (h *DocumentHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "new", map[string]any{"Value": ""})
}

// HandleCreate creates a new document from the "fname" form field.
//
// HTTP: POST /new (auth required)
//
// Invalid names (empty, bad extension, traversal) re-render the form
// with 422 and an inline error flash; no file is created. On success
// the user lands back on the home listing with a success flash.
func (h *DocumentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	fname := strings.TrimSpace(r.FormValue("fname"))

	if err := h.docs.Create(r.Context(), fname); err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			h.views.Render(w, r, http.StatusUnprocessableEntity, "new", map[string]any{
				"Flash": &model.Flash{Kind: model.FlashError, Text: userMessage(err)},
				"Value": fname,
			})
			return
		}
		serverError(w, h.logger, err)
		return
	}

	flash.Set(w, model.FlashSuccess, fmt.Sprintf("%s was created.", fname))
	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleEditForm shows the edit form with the document's current content.
//
// HTTP: GET /{fname}/edit (auth required)
func (h *DocumentHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	fname := r.PathValue("fname")

	doc, err := h.docs.Get(r.Context(), fname)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			flash.Set(w, model.FlashError, userMessage(err))
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		serverError(w, h.logger, err)
		return
	}

	h.views.Render(w, r, http.StatusOK, "edit", map[string]any{
		"Name":    doc.Name,
		"Content": string(doc.Content),
	})
}

// HandleUpdate overwrites a document's content from the "content" form
// field.
//
// HTTP: POST /{fname} (auth required)
//
// Updating a document that doesn't exist is a quiet no-op: nothing is
// written, no flash is set, and the redirect home happens anyway.
func (h *DocumentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	fname := r.PathValue("fname")

	updated, err := h.docs.Update(r.Context(), fname, []byte(r.FormValue("content")))
	if err != nil {
		serverError(w, h.logger, err)
		return
	}

	if updated {
		flash.Set(w, model.FlashSuccess, fmt.Sprintf("%s updated successfully.", fname))
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleDelete removes a document.
//
// HTTP: POST /{fname}/delete (auth required)
//
// Idempotent from the browser's point of view: deleting twice just
// redirects twice, the second time without a flash.
func (h *DocumentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	fname := r.PathValue("fname")

	deleted, err := h.docs.Delete(r.Context(), fname)
	if err != nil {
		serverError(w, h.logger, err)
		return
	}

	if deleted {
		flash.Set(w, model.FlashSuccess, fmt.Sprintf("%s was deleted.", fname))
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
