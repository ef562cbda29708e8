package github

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when a repo or file does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when the token is missing or invalid.
	ErrUnauthorized = errors.New("unauthorized: check your GitHub token")
	// ErrForbidden is returned when the token lacks the repo scope.
	ErrForbidden = errors.New("forbidden: token may lack required scope (needs 'repo')")
	// ErrConflict is returned when a write raced another commit.
	ErrConflict = errors.New("conflict: file changed since it was read")
	// ErrUnprocessable is returned for 422 responses, e.g. a stale blob SHA.
	ErrUnprocessable = errors.New("unprocessable: request rejected by GitHub")
)

// APIError is a non-2xx response. It matches the sentinel for its status
// with errors.Is and keeps the message GitHub sent back.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("github API error %d", e.Status)
	if s := e.Unwrap(); s != nil {
		msg = s.Error()
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return ErrUnprocessable
	}
	return nil
}

// StaleSHA reports whether a contents write was rejected because the blob
// SHA it sent no longer names the current file. GitHub answers 409 or 422
// depending on the path taken.
func StaleSHA(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrUnprocessable)
}
