// Package ocr transcribes scanned PDFs that carry no text layer using a
// Gemini model on Vertex AI.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"go.uber.org/zap"
)

const transcribePrompt = `Transcribe all the text in this résumé PDF exactly as written.
Keep the reading order of every page. Return plain text only, without commentary or formatting.`

// contentGenerator is the part of *genai.GenerativeModel the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Config selects the Vertex AI project and model.
type Config struct {
	ProjectID string
	Location  string
	Model     string
}

// Client wraps the Vertex AI Gemini API for PDF transcription.
type Client struct {
	client *genai.Client
	model  contentGenerator
	logger *zap.Logger
}

func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT is not set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	location := cfg.Location
	if location == "" {
		location = "us-central1"
	}

	client, err := genai.NewClient(ctx, cfg.ProjectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(8192)

	return &Client{client: client, model: model, logger: logger.Named("ocr")}, nil
}

// Transcribe returns the text of pdf and the tokens the model spent.
func (c *Client) Transcribe(ctx context.Context, pdf []byte) (string, int, error) {
	if len(pdf) == 0 {
		return "", 0, fmt.Errorf("empty document")
	}

	resp, err := c.model.GenerateContent(ctx,
		genai.Blob{MIMEType: "application/pdf", Data: pdf},
		genai.Text(transcribePrompt),
	)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate content: %w", err)
	}

	tokens := 0
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", tokens, fmt.Errorf("no response candidates returned")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	c.logger.Info("Transcribed scanned document",
		zap.Int("bytes", len(pdf)),
		zap.Int("text_len", b.Len()),
		zap.Int("tokens", tokens))
	return b.String(), tokens, nil
}

// Close releases the Vertex AI client.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
