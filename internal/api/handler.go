package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"cv-reconcile/internal/apperrors"
	"cv-reconcile/internal/reconcile"
	"cv-reconcile/internal/screening"
	"cv-reconcile/internal/storage"
)

// Evaluator runs the résumé screening pipeline.
type Evaluator interface {
	Evaluate(ctx context.Context, in screening.Input) (*reconcile.ReconciledRecord, error)
}

// CandidateReader loads stored candidate profiles.
type CandidateReader interface {
	GetCandidateProfile(ctx context.Context, candidateID string) (*storage.CandidateProfile, error)
}

type API struct {
	screener       Evaluator
	candidates     CandidateReader
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewAPI(screener Evaluator, candidates CandidateReader, maxUploadMB int64, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &API{
		screener:       screener,
		candidates:     candidates,
		maxUploadBytes: maxUploadMB << 20,
		logger:         logger.Named("api"),
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps an application error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrExtraction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrUpload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: "internal error"}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp.Error = appErr.Message
		resp.Field = appErr.Field
	}

	if status >= 500 {
		a.logger.Error("Request failed", zap.Int("status", status), zap.Error(err))
	} else {
		a.logger.Info("Request rejected", zap.Int("status", status), zap.String("reason", resp.Error))
	}
	writeJSON(w, status, resp)
}
