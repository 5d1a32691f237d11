// Package errcode defines the closed set of business error kinds shared by
// every layer of the application. Services signal failures with the sentinel
// errors below (matched via errors.Is); the HTTP boundary translates them
// into wire responses using the Entry table. No other error strings cross
// the boundary.
package errcode

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is the generic absent-resource error.
	ErrNotFound = errors.New("not found")

	// ErrArticleNotFound is returned when an article lookup by id misses.
	ErrArticleNotFound = errors.New("article not found")

	// ErrUnauthorized covers bad credentials and unknown/invalid tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when a principal is not the owner of the
	// resource it tries to mutate.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyExists is returned on unique-constraint conflicts
	// (e.g. duplicate user email).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInternal is the catch-all for validation failures and unmapped
	// errors.
	ErrInternal = errors.New("internal error")
)

// Entry is one member of the error taxonomy: a stable short code, a default
// human-readable message, and the HTTP status it maps to. Code and the wire
// shape {"message","code"} are part of the external contract and must stay
// stable.
type Entry struct {
	Code    string
	Message string
	Status  int
}

var (
	NotFound         = Entry{Code: "NOT_FOUND", Message: "not found", Status: http.StatusNotFound}
	ArticleNotFound  = Entry{Code: "ARTICLE_NOT_FOUND", Message: "article not found", Status: http.StatusNotFound}
	MethodNotAllowed = Entry{Code: "METHOD_NOT_ALLOWED", Message: "method not allowed", Status: http.StatusMethodNotAllowed}
	Unauthorized     = Entry{Code: "UNAUTHORIZED", Message: "unauthorized", Status: http.StatusUnauthorized}
	Forbidden        = Entry{Code: "FORBIDDEN", Message: "forbidden", Status: http.StatusForbidden}
	AlreadyExists    = Entry{Code: "ALREADY_EXISTS", Message: "already exists", Status: http.StatusConflict}
	Internal         = Entry{Code: "INTERNAL", Message: "internal server error", Status: http.StatusInternalServerError}
)

// FromError maps a business error to its taxonomy entry. Anything that is not
// one of the known sentinels collapses into Internal, so raw persistence
// errors never reach a client.
func FromError(err error) Entry {
	switch {
	case errors.Is(err, ErrArticleNotFound):
		return ArticleNotFound
	case errors.Is(err, ErrNotFound):
		return NotFound
	case errors.Is(err, ErrUnauthorized):
		return Unauthorized
	case errors.Is(err, ErrForbidden):
		return Forbidden
	case errors.Is(err, ErrAlreadyExists):
		return AlreadyExists
	default:
		return Internal
	}
}
