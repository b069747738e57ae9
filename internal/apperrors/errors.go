package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrExtraction = errors.New("extraction failed")
	ErrUpload     = errors.New("upload failed")
	ErrStorage    = errors.New("storage failure")
)

// AppError carries a caller-facing message alongside a sentinel that
// handlers can match with errors.Is.
type AppError struct {
	Err     error
	Message string
	Field   string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Extraction wraps a failure of the fact extraction collaborator: empty
// output or output that does not decode into a fact record.
func Extraction(message string, cause error) *AppError {
	msg := message
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", message, cause)
	}
	return &AppError{
		Err:     errors.Join(ErrExtraction, cause),
		Message: msg,
	}
}

// Upload wraps a failure of the remote file store.
func Upload(cause error) *AppError {
	return &AppError{
		Err:     errors.Join(ErrUpload, cause),
		Message: fmt.Sprintf("resume upload failed: %v", cause),
	}
}

// Storage wraps a persistence failure. The message stays opaque; the
// cause is still reachable through errors.Is / errors.As.
func Storage(cause error) *AppError {
	return &AppError{
		Err:     errors.Join(ErrStorage, cause),
		Message: "reconciliation failed; no changes were saved",
	}
}
