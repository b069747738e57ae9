// Package upload stores résumé files in the remote file service and
// returns the URL it assigns.
package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"cv-reconcile/internal/apperrors"
	"cv-reconcile/internal/retry"
	httpclient "cv-reconcile/pkg/http"
)

// maxResponseBytes bounds the URL response body.
const maxResponseBytes = 64 << 10

type Config struct {
	Endpoint   string
	FieldName  string
	Timeout    time.Duration
	MaxRetries int
}

type Client struct {
	http     *httpclient.Client
	endpoint string
	field    string
	retry    *retry.Config
	logger   *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	field := cfg.FieldName
	if field == "" {
		field = "file_url"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = cfg.MaxRetries

	return &Client{
		http:     httpclient.NewClient(timeout),
		endpoint: cfg.Endpoint,
		field:    field,
		retry:    retryCfg,
		logger:   logger.Named("upload"),
	}
}

// statusError is a non-2xx answer from the file service.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("file service returned %d: %s", e.code, e.body)
}

func (e *statusError) IsRetryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

// Upload sends data to the file service and returns the stored file's
// URL. Transient failures are retried; the final error is an
// apperrors.ErrUpload.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	url, err := retry.DoWithResult(ctx, c.retry, func() (string, error) {
		return c.upload(ctx, filename, data)
	})
	if err != nil {
		c.logger.Error("Upload failed", zap.String("filename", filename), zap.Error(err))
		return "", apperrors.Upload(err)
	}

	c.logger.Info("Uploaded resume", zap.String("filename", filename), zap.String("url", url))
	return url, nil
}

func (c *Client) upload(ctx context.Context, filename string, data []byte) (string, error) {
	resp, err := c.http.PostFile(ctx, c.endpoint, c.field, filename, data)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}
	text := strings.TrimSpace(string(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &statusError{code: resp.StatusCode, body: text}
	}

	// the service answers with the bare URL, sometimes JSON-quoted
	url := strings.Trim(text, `"`)
	if url == "" {
		return "", retry.Permanent(fmt.Errorf("file service returned an empty URL"))
	}
	return url, nil
}
