// Package screening runs one résumé through upload, text extraction,
// fact extraction and reconciliation.
package screening

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"cv-reconcile/internal/apperrors"
	"cv-reconcile/internal/cv"
	"cv-reconcile/internal/llm"
	"cv-reconcile/internal/reconcile"
)

type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (*cv.Document, error)
}

type FactExtractor interface {
	ExtractFacts(ctx context.Context, resumeText, jobDesc string, acceptance int) (*llm.Extraction, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context, req reconcile.Request) (*reconcile.ReconciledRecord, error)
}

// Config holds the request defaults.
type Config struct {
	DefaultAcceptance int
	// Location is the zone result timestamps are reported in.
	Location *time.Location
}

// Input is one uploaded résumé.
type Input struct {
	OwnerID        string
	ActorID        string
	Filename       string
	Data           []byte
	JobDescription string
	// Acceptance overrides Config.DefaultAcceptance when set.
	Acceptance *int
}

type Service struct {
	uploader   Uploader
	documents  TextExtractor
	facts      FactExtractor
	reconciler Reconciler
	cfg        Config
	logger     *zap.Logger
}

func NewService(uploader Uploader, documents TextExtractor, facts FactExtractor, reconciler Reconciler, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
		uploader:   uploader,
		documents:  documents,
		facts:      facts,
		reconciler: reconciler,
		cfg:        cfg,
		logger:     logger.Named("screening"),
	}
}

func (in Input) validate() error {
	switch {
	case in.OwnerID == "":
		return apperrors.ValidationFailed("user_id", "user_id is required")
	case in.JobDescription == "":
		return apperrors.ValidationFailed("job_desc", "no job description provided")
	case in.Filename == "" || len(in.Data) == 0:
		return apperrors.ValidationFailed("file", "no file uploaded")
	case !cv.SupportedType(filepath.Ext(in.Filename)):
		return apperrors.ValidationFailed("file", "invalid file type (supported: PDF, DOCX, DOC, RTF, ODT, TXT)")
	case in.Acceptance != nil && (*in.Acceptance < 0 || *in.Acceptance > 100):
		return apperrors.ValidationFailed("acceptance", "acceptance must be between 0 and 100")
	}
	return nil
}

// Evaluate uploads the résumé, reads it, extracts its fact record and
// reconciles it. A failed upload or extraction stops before any
// candidate data is written.
func (s *Service) Evaluate(ctx context.Context, in Input) (*reconcile.ReconciledRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	acceptance := s.cfg.DefaultAcceptance
	if in.Acceptance != nil {
		acceptance = *in.Acceptance
	}

	start := time.Now()
	logger := s.logger.With(zap.String("owner_id", in.OwnerID), zap.String("filename", in.Filename))

	url, err := s.uploader.Upload(ctx, in.Filename, in.Data)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.Extract(ctx, in.Filename, in.Data)
	if err != nil {
		return nil, err
	}
	logger.Debug("Document text extracted", zap.Bool("ocr", doc.OCRUsed), zap.Int("text_len", len(doc.Text)))

	extraction, err := s.facts.ExtractFacts(ctx, doc.Text, in.JobDescription, acceptance)
	if err != nil {
		return nil, fmt.Errorf("extract facts: %w", err)
	}

	rec, err := s.reconciler.Reconcile(ctx, reconcile.Request{
		OwnerID:             in.OwnerID,
		ActorID:             in.ActorID,
		Facts:               extraction.Facts,
		ResumeURL:           url,
		PDFName:             doc.Filename,
		AcceptanceThreshold: acceptance,
		LLMTokens:           extraction.TotalTokens,
		OCRTokens:           doc.OCRTokens,
	})
	if err != nil {
		return nil, err
	}
	rec.Date = rec.Date.In(s.cfg.Location)

	logger.Info("Resume evaluated",
		zap.String("candidate_id", rec.CandidateID),
		zap.Bool("created", rec.Created),
		zap.Int("percentage_match", rec.PercentageMatch),
		zap.Duration("elapsed", time.Since(start)))
	return rec, nil
}
