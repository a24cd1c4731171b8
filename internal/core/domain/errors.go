package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidInput     = errors.New("invalid input")
	// ErrExtraction marks a malformed or unreadable document container.
	// It is recorded on the affected document and never aborts a batch.
	ErrExtraction = errors.New("extraction failed")
	// ErrConfiguration marks a missing or malformed checklist or
	// knowledge-base source.
	ErrConfiguration = errors.New("configuration error")
	ErrTemporary     = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
