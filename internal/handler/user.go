package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/farhan/scribe/internal/apperror"
	"github.com/farhan/scribe/internal/auth"
	"github.com/farhan/scribe/internal/flash"
	"github.com/farhan/scribe/internal/model"
	"github.com/farhan/scribe/internal/service"
)

// UserHandler serves sign-in, sign-out, and registration.
//
// COOKIE RESPONSIBILITY:
// Setting and clearing the session cookie happens here and only here —
// the AuthService returns a token (or an error) and never touches HTTP.
type UserHandler struct {
	auths  *service.AuthService
	views  *Views
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(auths *service.AuthService, views *Views, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		auths:  auths,
		views:  views,
		logger: logger,
	}
}

// HandleSignedOut shows the sign-in-or-out landing view. This is where
// guarded routes send anonymous visitors.
//
// HTTP: GET /login
func (h *UserHandler) HandleSignedOut(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "signed_out", nil)
}

// HandleSignOut clears the session unconditionally — even if there was
// no session to begin with — and sends the user to the landing view.
//
// HTTP: GET /signout
func (h *UserHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w)
	flash.Set(w, model.FlashSuccess, "You have been signed out.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// HandleLoginForm shows the login form.
//
// HTTP: GET /users/login
func (h *UserHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "login", map[string]any{"FormUsername": ""})
}

// HandleLogin validates the submitted credentials.
//
// HTTP: POST /users/login
//
// Success sets the session cookie and redirects home. Failure clears
// any stale session cookie (a failed re-login must not leave the old
// session alive), re-renders the form with 422, and keeps the typed
// username so the user only has to fix the password.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	token, err := h.auths.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidCredentials) {
			auth.ClearCookie(w)
			h.views.Render(w, r, http.StatusUnprocessableEntity, "login", map[string]any{
				"Flash":        &model.Flash{Kind: model.FlashError, Text: userMessage(err)},
				"FormUsername": username,
			})
			return
		}
		serverError(w, h.logger, err)
		return
	}

	auth.SetCookie(w, token)
	flash.Set(w, model.FlashSuccess, fmt.Sprintf("Welcome, %s!", username))
	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleRegisterForm shows the registration form.
//
// HTTP: GET /users/register
func (h *UserHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "register", nil)
}

// HandleRegister creates a new account.
//
// HTTP: POST /users/register
//
// On success the user is sent to the login form to sign in with their
// new credentials. Empty usernames and taken usernames both bounce back
// to the registration form with an error flash.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if err := h.auths.Register(r.Context(), username, password); err != nil {
		if errors.Is(err, apperror.ErrValidation) || errors.Is(err, apperror.ErrConflict) {
			flash.Set(w, model.FlashError, userMessage(err))
			http.Redirect(w, r, "/users/register", http.StatusFound)
			return
		}
		serverError(w, h.logger, err)
		return
	}

	flash.Set(w, model.FlashSuccess, fmt.Sprintf("Hi, %s! Your account has been created.", username))
	http.Redirect(w, r, "/users/login", http.StatusFound)
}
