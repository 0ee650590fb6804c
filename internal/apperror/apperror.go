package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the application's error taxonomy. Each one maps
// to a response shape at the HTTP layer:
//
//	ErrNotFound           → redirect home with a "not found" flash
//	ErrValidation         → 422 + re-rendered form
//	ErrConflict           → flash + redirect back to the form
//	ErrUnauthenticated    → redirect to /login
//	ErrInvalidCredentials → 422 + re-rendered login form
//
// Services return these wrapped in *AppError; handlers use errors.Is
// to pick the response shape and AppError.Message for the flash text.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AppError carries a sentinel (for errors.Is dispatch) plus the message
// shown to the user. Messages here are user-facing by contract — never
// put internal details (paths, wrapped I/O errors) in Message.
type AppError struct {
	Err     error  // sentinel from this package
	Message string // user-visible text, used verbatim in flashes
	Field   string // optional: the form field that caused the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing document or other resource by name.
// The message wording is exactly what the user sees in the flash banner.
func NotFound(name string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found.", name),
	}
}

// ValidationFailed reports invalid form input on the named field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness violation (e.g. username already taken).
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthenticated reports an attempt to use a guarded route without a
// signed-in session.
func Unauthenticated() *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: "You are not logged in.",
	}
}

// InvalidCredentials reports a failed login. Deliberately the same
// message whether the username or the password was wrong, so the login
// form doesn't leak which usernames exist.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "Invalid credentials.",
	}
}
