package apperrors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatching(t *testing.T) {
	cause := context.DeadlineExceeded

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NotFound("candidate", "c1"), ErrNotFound},
		{"validation", ValidationFailed("user_id", "user_id is required"), ErrValidation},
		{"extraction", Extraction("empty response", nil), ErrExtraction},
		{"upload", Upload(cause), ErrUpload},
		{"storage", Storage(cause), ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestCauseStaysReachable(t *testing.T) {
	cause := errors.New("pq: deadlock detected")

	err := Storage(cause)

	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "deadlock")
}

func TestExtractionMessage(t *testing.T) {
	err := Extraction("invalid JSON response", errors.New("unexpected end of input"))
	assert.Equal(t, "invalid JSON response: unexpected end of input", err.Error())

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
}

func TestValidationField(t *testing.T) {
	err := ValidationFailed("file", "no file uploaded")
	assert.Equal(t, "file", err.Field)
	assert.Equal(t, "no file uploaded", err.Error())
}
