// Package errors holds the sentinel errors shared by the index builder, the
// persistence layer and the query engine, plus the HTTP status mapping used
// by the transport.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDocumentNotFound means a documentId is outside the forward index.
	// The two index structures disagree; callers must not swallow it.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrMalformedArtifact means a persisted index file is missing or unreadable.
	ErrMalformedArtifact = errors.New("malformed index artifact")
	// ErrExtraction means a raw document could not become (title, url, content).
	ErrExtraction = errors.New("document extraction failed")
	// ErrTokenization is raised by the tokenizer for input it cannot split.
	ErrTokenization = errors.New("tokenization failed")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    message,
		StatusCode: statusCode,
	}
}

func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

// IsDocumentFailure reports whether err only affects a single document during
// a build, so the build can log it and move on.
func IsDocumentFailure(err error) bool {
	return errors.Is(err, ErrExtraction) || errors.Is(err, ErrTokenization)
}

func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrMalformedArtifact):
		return http.StatusServiceUnavailable
	default:
		// ErrDocumentNotFound lands here on purpose: it is an index
		// consistency bug, not a missing resource the caller asked for.
		return http.StatusInternalServerError
	}
}
