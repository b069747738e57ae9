package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"cv-reconcile/internal/apperrors"
	"cv-reconcile/internal/screening"
)

// EvaluateResumeHandler uploads, reads and reconciles a résumé
// @Summary Evaluate a resume
// @Description Upload a resume (PDF/DOCX/TXT), score it against a job description and merge the candidate into the owner's candidate graph. Send job_desc "!##NO DESCRIPTION##!" to ingest without scoring.
// @Tags resume
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Resume file"
// @Param job_desc formData string true "Job description"
// @Param user_id formData string true "Owner of the candidate graph"
// @Param actor_id formData string false "Actor recorded in the tracking link (defaults to user_id)"
// @Param acceptance formData int false "Match acceptance threshold 0-100" default(70)
// @Success 200 {object} reconcile.ReconciledRecord
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /resume/evaluate [post]
func (a *API) EvaluateResumeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)
	if err := r.ParseMultipartForm(a.maxUploadBytes); err != nil {
		a.writeError(w, apperrors.ValidationFailed("file", "file too large or invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeError(w, apperrors.ValidationFailed("file", "no file uploaded"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.writeError(w, apperrors.ValidationFailed("file", "failed to read uploaded file"))
		return
	}

	in := screening.Input{
		OwnerID:        strings.TrimSpace(r.FormValue("user_id")),
		ActorID:        strings.TrimSpace(r.FormValue("actor_id")),
		Filename:       header.Filename,
		Data:           data,
		JobDescription: r.FormValue("job_desc"),
	}
	if raw := strings.TrimSpace(r.FormValue("acceptance")); raw != "" {
		acceptance, err := strconv.Atoi(raw)
		if err != nil {
			a.writeError(w, apperrors.ValidationFailed("acceptance", "acceptance must be an integer"))
			return
		}
		in.Acceptance = &acceptance
	}

	rec, err := a.screener.Evaluate(r.Context(), in)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.logger.Debug("Sending evaluation",
		zap.String("candidate_id", rec.CandidateID),
		zap.Int("size", len(data)))
	writeJSON(w, http.StatusOK, rec)
}

// GetCandidateHandler returns a stored candidate with experience and skills
// @Summary Get candidate
// @Description Get a candidate profile with its experience and skill rows
// @Tags candidates
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} storage.CandidateProfile
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /candidates/{id} [get]
func (a *API) GetCandidateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		a.writeError(w, apperrors.ValidationFailed("id", "candidate id is required"))
		return
	}

	p, err := a.candidates.GetCandidateProfile(r.Context(), id)
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			err = apperrors.Storage(err)
		}
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
