package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/farhan/scribe/internal/apperror"
)

// serverError logs the real error and answers with a generic 500.
// Filesystem failures (permissions, disk full) end up here — the
// details go to the log only, never to the browser.
func serverError(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("internal error", slog.String("error", err.Error()))
	http.Error(w, "Something went wrong.", http.StatusInternalServerError)
}

// userMessage extracts the user-facing message from a domain error.
// Anything that isn't an *AppError gets the generic wording — raw error
// strings can contain file paths and must not reach the page.
func userMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong."
}
