// Package validator checks that an extracted document carries everything
// the index needs before it is added.
package validator

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

// ValidationError holds per-field validation failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "invalid document: " + strings.Join(parts, "; ")
}

// Unwrap makes every ValidationError an extraction failure.
func (e *ValidationError) Unwrap() error {
	return apperrors.ErrExtraction
}

// ValidateDocument rejects a document without a title or url. Empty
// content is valid: a page with no visible text still gets an id.
func ValidateDocument(title, url string) error {
	errs := make(map[string]string)
	if strings.TrimSpace(title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(url) == "" {
		errs["url"] = "url is required"
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
