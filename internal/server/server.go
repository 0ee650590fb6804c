// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: main.go hands over a Config and a
// logger, and New wires the whole dependency chain in one place —
// stores → services → handlers → routes. Nothing else in the codebase
// constructs its own dependencies.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/farhan/scribe/internal/auth"
	"github.com/farhan/scribe/internal/handler"
	"github.com/farhan/scribe/internal/markdown"
	"github.com/farhan/scribe/internal/middleware"
	"github.com/farhan/scribe/internal/repository/fsrepo"
	"github.com/farhan/scribe/internal/service"
)

// Config holds server configuration, assembled in main.go from flags
// and environment variables.
type Config struct {
	Port          int
	TemplateDir   string
	DataDir       string // directory of document files
	UsersFile     string // YAML file mapping username → password hash
	SessionSecret string // HMAC key for session tokens, min 16 chars
}

// Server owns the router and configuration. Unlike a database-backed
// app there is nothing to close on shutdown — both stores open and
// close their files per operation.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
}

// New creates a Server and wires the full dependency chain:
//
//	fsrepo.DocumentStore ─┐
//	fsrepo.UserStore ─────┤→ services → handlers → chi routes
//	auth.{Password,Session}Service ┘
//
// Handlers never see a store and services never see HTTP — each layer
// receives only the layer directly below it.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the dependency chain, and
// registers every route.
//
// ROUTE MAP:
//
//	GET  /                  → list documents
//	GET  /login             → sign-in-or-out view
//	GET  /signout           → clear session, redirect to /login
//	GET  /users/login       → login form        POST → validate credentials
//	GET  /users/register    → register form     POST → create account
//	GET  /new          auth → create form       POST → create document
//	GET  /{fname}/edit auth → edit form
//	POST /{fname}      auth → overwrite content
//	POST /{fname}/delete auth → delete document
//	GET  /{fname}           → view rendered document
//
// The {fname} wildcard is registered last so the static paths above it
// always win.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// === Stores ===
	docStore, err := fsrepo.NewDocumentStore(s.config.DataDir)
	if err != nil {
		return err
	}
	userStore, err := fsrepo.NewUserStore(s.config.UsersFile)
	if err != nil {
		return err
	}

	// === Auth utilities ===
	sessions, err := auth.NewSessionService(s.config.SessionSecret)
	if err != nil {
		return err
	}
	passwords := auth.NewPasswordService()

	// === Services ===
	docService := service.NewDocumentService(docStore, s.logger)
	authService := service.NewAuthService(userStore, passwords, sessions, s.logger)

	// === Views & handlers ===
	views, err := handler.NewViews(s.config.TemplateDir, s.logger)
	if err != nil {
		return err
	}
	docs := handler.NewDocumentHandler(docService, markdown.NewRenderer(), views, s.logger)
	users := handler.NewUserHandler(authService, views, s.logger)

	// Public pages get OptionalUser so the layout can show who is
	// signed in without ever blocking anonymous visitors.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalUser(sessions))

		r.Get("/", docs.HandleHome)
		r.Get("/login", users.HandleSignedOut)
		r.Get("/signout", users.HandleSignOut)

		r.Route("/users", func(r chi.Router) {
			r.Get("/login", users.HandleLoginForm)
			r.Post("/login", users.HandleLogin)
			r.Get("/register", users.HandleRegisterForm)
			r.Post("/register", users.HandleRegister)
		})
	})

	// Mutating document routes are gated: no valid session → flash +
	// redirect to /login, handler never runs.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(sessions))

		r.Get("/new", docs.HandleNewForm)
		r.Post("/new", docs.HandleCreate)
		r.Get("/{fname}/edit", docs.HandleEditForm)
		r.Post("/{fname}", docs.HandleUpdate)
		r.Post("/{fname}/delete", docs.HandleDelete)
	})

	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalUser(sessions))
		r.Get("/{fname}", docs.HandleView)
	})

	return nil
}

// Handler exposes the configured router, mainly so tests can drive the
// full route table through httptest without opening a port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully, giving in-flight requests 30 seconds to finish.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("dataDir", s.config.DataDir),
			slog.String("usersFile", s.config.UsersFile),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
