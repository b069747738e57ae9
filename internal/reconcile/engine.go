package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cv-reconcile/internal/apperrors"
	"cv-reconcile/internal/profile"
	"cv-reconcile/internal/storage"
)

// Request is one fact record to reconcile plus the bookkeeping that
// travels with it.
type Request struct {
	OwnerID string
	// ActorID is the external actor recorded in the tracking link.
	// Empty means the owner uploaded the résumé themselves.
	ActorID string

	Facts     *profile.FactRecord
	ResumeURL string
	PDFName   string

	AcceptanceThreshold int
	LLMTokens           int
	OCRTokens           int
}

// ReconciledRecord is the normalized fact record returned to the caller,
// annotated with what the reconciliation did.
type ReconciledRecord struct {
	profile.FactRecord

	CandidateID      string `json:"candidate_id"`
	Created          bool   `json:"created"`
	TrackingRecorded bool   `json:"tracking_recorded"`
	EvaluationLogID  string `json:"evaluation_log_id,omitempty"`

	OwnerID         string    `json:"user_id"`
	ActorID         string    `json:"actor_id"`
	FileURL         string    `json:"file_url"`
	PDFName         string    `json:"pdf_name"`
	Date            time.Time `json:"date"`
	LLMTokens       int       `json:"total_token_llm"`
	OCRTokens       int       `json:"total_token_ocr"`
	MatchAcceptance int       `json:"match_acceptance"`
}

// Engine reconciles fact records into the candidate graph. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewEngine(store Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:  store,
		logger: logger.Named("reconcile"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (r Request) validate() error {
	if r.OwnerID == "" {
		return apperrors.ValidationFailed("user_id", "user_id is required")
	}
	if r.Facts == nil {
		return apperrors.Extraction("no fact record to reconcile", nil)
	}
	if r.Facts.Email == "" {
		return apperrors.Extraction("extracted record has no email address", nil)
	}
	return nil
}

// Reconcile writes req.Facts into the candidate graph in one transaction.
// Either every write lands or none does; storage failures come back as
// apperrors.ErrStorage.
func (e *Engine) Reconcile(ctx context.Context, req Request) (*ReconciledRecord, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	actorID := req.ActorID
	if actorID == "" {
		actorID = req.OwnerID
	}
	now := e.now().UTC()

	facts := *req.Facts
	if !facts.HasJobDescription() {
		facts.PercentageMatch = 0
	}

	rec := &ReconciledRecord{
		FactRecord:      facts,
		OwnerID:         req.OwnerID,
		ActorID:         actorID,
		FileURL:         req.ResumeURL,
		PDFName:         req.PDFName,
		Date:            now,
		LLMTokens:       req.LLMTokens,
		OCRTokens:       req.OCRTokens,
		MatchAcceptance: req.AcceptanceThreshold,
	}
	req.Facts = &rec.FactRecord

	err := e.store.WithinTx(ctx, func(repo Repository) error {
		return e.reconcile(ctx, repo, req, actorID, now, rec)
	})
	if err != nil {
		e.logger.Error("Reconciliation rolled back",
			zap.String("owner_id", req.OwnerID),
			zap.Error(err))
		return nil, apperrors.Storage(err)
	}

	e.logger.Info("Reconciled candidate",
		zap.String("candidate_id", rec.CandidateID),
		zap.Bool("created", rec.Created),
		zap.Bool("tracking_recorded", rec.TrackingRecorded))
	return rec, nil
}

func (e *Engine) reconcile(ctx context.Context, repo Repository, req Request, actorID string, now time.Time, rec *ReconciledRecord) error {
	facts := req.Facts
	candidateID, found, err := resolveCandidate(ctx, repo, req.OwnerID, facts.Email)
	if err != nil {
		return err
	}

	if !found {
		id := e.newID()
		created, err := createCandidate(ctx, repo, id, req, now)
		if err != nil {
			return fmt.Errorf("create candidate: %w", err)
		}
		if created {
			candidateID = id
			rec.Created = true
		} else {
			// a concurrent reconciliation won the insert for this key;
			// continue on its row as an update
			candidateID, found, err = resolveCandidate(ctx, repo, req.OwnerID, facts.Email)
			if err != nil {
				return err
			}
			if !found {
				return errors.New("candidate insert conflicted but no row holds the key")
			}
			e.logger.Debug("Lost natural key race, updating existing candidate",
				zap.String("candidate_id", candidateID))
		}
	}
	rec.CandidateID = candidateID

	if rec.Created {
		n, err := recordSkills(ctx, repo, candidateID, facts.Skills, now, e.newID)
		if err != nil {
			return fmt.Errorf("record skills: %w", err)
		}
		e.logger.Debug("Recorded skills", zap.String("candidate_id", candidateID), zap.Int("count", n))
	} else {
		if err := updateCandidate(ctx, repo, candidateID, facts, now); err != nil {
			return fmt.Errorf("update candidate: %w", err)
		}
	}

	if facts.HasCurrentEmployment() && facts.Company != "" {
		if err := mergeCurrentEmployment(ctx, repo, candidateID, facts, rec.Created, now, e.newID); err != nil {
			return fmt.Errorf("merge current employment: %w", err)
		}
	}

	n, err := mergePastEmployment(ctx, repo, candidateID, facts.PastRoles, now, e.newID)
	if err != nil {
		return fmt.Errorf("merge past employment: %w", err)
	}
	e.logger.Debug("Merged past employment",
		zap.String("candidate_id", candidateID),
		zap.Int("inserted", n),
		zap.Int("skipped", len(facts.PastRoles)-n))

	rec.TrackingRecorded, err = registerTracking(ctx, repo, actorID, candidateID, now)
	if err != nil {
		return fmt.Errorf("register tracking: %w", err)
	}

	if facts.HasJobDescription() {
		logID, err := e.writeEvaluationLog(ctx, repo, req, candidateID, now)
		if err != nil {
			return fmt.Errorf("write evaluation log: %w", err)
		}
		rec.EvaluationLogID = logID
	}
	return nil
}

// writeEvaluationLog records the match result of a résumé scored against
// a real job description.
func (e *Engine) writeEvaluationLog(ctx context.Context, repo Repository, req Request, candidateID string, now time.Time) (string, error) {
	facts := req.Facts
	id := e.newID()
	err := repo.InsertEvaluationLog(ctx, &storage.EvaluationLog{
		ID:               id,
		OwnerID:          req.OwnerID,
		CandidateID:      candidateID,
		RunAt:            now,
		Title:            facts.Title,
		JobDescription:   facts.JobDescription,
		FileURL:          req.ResumeURL,
		PDFName:          req.PDFName,
		CandidateName:    facts.Name,
		CandidateEmail:   facts.Email,
		Phone:            facts.Phone,
		MatchPercentage:  facts.PercentageMatch,
		ShortDescription: facts.ShortDescription,
		IsShortlisted:    false,
		LLMTokens:        req.LLMTokens,
		OCRTokens:        req.OCRTokens,
		MatchAcceptance:  req.AcceptanceThreshold,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}
