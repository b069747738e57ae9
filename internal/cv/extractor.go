package cv

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"cv-reconcile/internal/apperrors"
)

// Transcriber reads the text of a PDF that has no text layer.
type Transcriber interface {
	Transcribe(ctx context.Context, pdf []byte) (string, int, error)
}

// Document is the text of an uploaded résumé.
type Document struct {
	Filename  string
	FileType  string
	Text      string
	OCRUsed   bool
	OCRTokens int
}

type Extractor struct {
	parser *CVParser
	ocr    Transcriber
	logger *zap.Logger
}

// NewExtractor returns an extractor that falls back to ocr for PDFs
// without text. ocr may be nil.
func NewExtractor(parser *CVParser, ocr Transcriber, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		parser: parser,
		ocr:    ocr,
		logger: logger.Named("cv"),
	}
}

// Extract returns the text of the uploaded file. OCR runs only when the
// file is a PDF and the text layer is blank or unreadable.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (*Document, error) {
	parsed, parseErr := e.parser.ParseFile(filename, data)
	if parseErr == nil && strings.TrimSpace(parsed.FullText) != "" {
		e.logger.Debug("CV parsed",
			zap.String("filename", parsed.Filename),
			zap.Int("text_len", len(parsed.FullText)))
		return &Document{Filename: parsed.Filename, FileType: parsed.FileType, Text: parsed.FullText}, nil
	}

	isPDF := strings.EqualFold(filepath.Ext(filename), ".pdf")
	if !isPDF || e.ocr == nil {
		if parseErr != nil {
			return nil, apperrors.Extraction("could not read document", parseErr)
		}
		return nil, apperrors.Extraction("document has no extractable text", nil)
	}

	if parseErr != nil {
		e.logger.Warn("Text layer unreadable, falling back to OCR",
			zap.String("filename", filename),
			zap.Error(parseErr))
	} else {
		e.logger.Info("No text layer, falling back to OCR", zap.String("filename", filename))
	}

	text, tokens, err := e.ocr.Transcribe(ctx, data)
	if err != nil {
		return nil, apperrors.Extraction("OCR failed", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Extraction("document has no extractable text", nil)
	}

	return &Document{
		Filename:  filepath.Base(filename),
		FileType:  ".pdf",
		Text:      text,
		OCRUsed:   true,
		OCRTokens: tokens,
	}, nil
}
