package domain

import "errors"

// Error is a domain error carrying a stable code. The code doubles as the
// suffix of the "errors.<code>" translation key.
type Error struct {
	code string
	msg  string
}

func newError(code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Code returns the machine-readable code of the error.
func (e *Error) Code() string { return e.code }

// Domain errors.
var (
	ErrNotFound          = newError("not_found", "not found")
	ErrUnauthorized      = newError("unauthorized", "unauthorized")
	ErrForbidden         = newError("forbidden", "forbidden")
	ErrInvalidInput      = newError("invalid_input", "invalid input")
	ErrInvalidLogin      = newError("invalid_login", "invalid email or password")
	ErrEmptyCredentials  = newError("empty_credentials", "email and password are required")
	ErrConflict          = newError("conflict", "already exists")
	ErrUnsupportedLocale = newError("unsupported_locale", "unsupported locale")
	ErrBusy              = newError("busy", "a request is already in progress")
	ErrUnavailable       = newError("unavailable", "service unavailable")
)

// Code extracts the domain error code from err, or "" when err does not wrap
// a domain error.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}

// MessageKey returns the translation key describing err, falling back to the
// generic error message.
func MessageKey(err error) string {
	if code := Code(err); code != "" {
		return "errors." + code
	}
	return "errors.generic"
}

// RemoteError is an error reported by the REST backend. Err is the domain
// error matching the response status; Message is the backend's own text.
type RemoteError struct {
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *RemoteError) Unwrap() error { return e.Err }

// RemoteMessage returns the backend-supplied message carried by err, if any.
func RemoteMessage(err error) (string, bool) {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message, true
	}
	return "", false
}
