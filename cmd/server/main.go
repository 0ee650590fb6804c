// Package main is the entry point for the scribe server.
//
// Its job is deliberately small: read configuration, build the logger,
// and hand both to internal/server. All actual logic lives in the
// imported packages.
//
// CONFIGURATION PRECEDENCE (highest wins):
//  1. command-line flags (--port, --data-dir, ...)
//  2. environment variables (PORT, DATA_DIR, ...)
//  3. built-in defaults, which depend on APP_ENV: "test" points both
//     stores at testdata/ so a test run never touches production files.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/farhan/scribe/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Environment-dependent storage defaults, overridable below.
	dataDir := "data"
	usersFile := "users.yaml"
	if os.Getenv("APP_ENV") == "test" {
		dataDir = "testdata/data"
		usersFile = "testdata/users.yaml"
	}

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
		port = p
	}

	flag.IntVar(&port, "port", port, "port to listen on")
	flag.StringVar(&dataDir, "data-dir", envOr("DATA_DIR", dataDir), "directory holding document files")
	flag.StringVar(&usersFile, "users-file", envOr("USERS_FILE", usersFile), "YAML file mapping usernames to password hashes")
	templateDir := flag.String("templates", envOr("TEMPLATE_DIR", "web/templates"), "directory holding HTML templates")
	secret := flag.String("session-secret", os.Getenv("SESSION_SECRET"), "HMAC key for session cookies (min 16 chars)")
	flag.Parse()

	// Without a configured secret, sessions won't survive a restart —
	// generate a throwaway key so development still works.
	if *secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			logger.Error("failed to generate session secret", slog.String("error", err.Error()))
			os.Exit(1)
		}
		*secret = hex.EncodeToString(buf)
		logger.Warn("SESSION_SECRET not set — using an ephemeral secret, sessions reset on restart")
	}

	cfg := server.Config{
		Port:          port,
		TemplateDir:   *templateDir,
		DataDir:       dataDir,
		UsersFile:     usersFile,
		SessionSecret: *secret,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// envOr returns the environment variable's value, or def if unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
