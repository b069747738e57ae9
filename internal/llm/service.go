package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"cv-reconcile/internal/apperrors"
	"cv-reconcile/internal/profile"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
	ProviderGroq   Provider = "groq"
	ProviderNone   Provider = "none"
)

// default OpenAI-compatible endpoints per provider
var baseURLs = map[Provider]string{
	ProviderOpenAI: "https://api.openai.com/v1",
	ProviderGroq:   "https://api.groq.com/openai/v1",
	ProviderOllama: "http://localhost:11434/v1",
}

const systemMessage = "You are a resume evaluator. Return only valid JSON."

// Config selects and authenticates the chat completion backend.
type Config struct {
	Provider string
	Model    string
	BaseURL  string // empty means the provider default
	APIKey   string
	Timeout  time.Duration
	// CacheTTL keeps identical prompts from reaching the model twice
	// within the window. Zero disables the cache.
	CacheTTL time.Duration
}

// Service turns résumé text into fact records through an
// OpenAI-compatible chat completion API.
type Service struct {
	client   *openai.Client
	provider Provider
	model    string
	cache    *responseCache
	logger   *zap.Logger
}

// Extraction is a normalized fact record plus the tokens spent on it.
type Extraction struct {
	Facts       *profile.FactRecord
	TotalTokens int
}

func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	provider := Provider(cfg.Provider)
	if provider == ProviderNone || provider == "" {
		return nil, fmt.Errorf("LLM provider not configured")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		var ok bool
		if baseURL, ok = baseURLs[provider]; !ok {
			return nil, fmt.Errorf("unknown provider: %s", provider)
		}
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 600 * time.Second // large résumés on slow local models
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(baseURL, "/")
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	s := &Service{
		client:   openai.NewClientWithConfig(clientConfig),
		provider: provider,
		model:    cfg.Model,
		logger:   logger.Named("llm"),
	}
	if cfg.CacheTTL > 0 {
		s.cache = newResponseCache(cfg.CacheTTL)
	}
	return s, nil
}

// Generate sends a prompt and returns the raw completion text with the
// total token usage.
func (s *Service) Generate(ctx context.Context, prompt string) (string, int, error) {
	s.logger.Debug("LLM request",
		zap.String("provider", string(s.provider)),
		zap.String("model", s.model),
		zap.Int("prompt_len", len(prompt)))

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		s.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", 0, fmt.Errorf("%s completion: %w", s.provider, err)
	}

	s.logger.Info("LLM request completed",
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("elapsed", time.Since(start)))

	if len(resp.Choices) == 0 {
		return "", resp.Usage.TotalTokens, nil
	}
	return resp.Choices[0].Message.Content, resp.Usage.TotalTokens, nil
}

// ExtractFacts asks the model for the fact record of resumeText, scored
// against jobDesc unless jobDesc is profile.NoDescription. Empty or
// undecodable output is an apperrors.ErrExtraction.
func (s *Service) ExtractFacts(ctx context.Context, resumeText, jobDesc string, acceptance int) (*Extraction, error) {
	prompt := buildPrompt(resumeText, jobDesc, acceptance)

	var (
		content string
		tokens  int
		cached  bool
	)
	if s.cache != nil {
		content, cached = s.cache.get(s.model, prompt)
	}
	if cached {
		s.logger.Debug("LLM response served from cache")
	} else {
		var err error
		content, tokens, err = s.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.Extraction("evaluation response is empty", nil)
	}

	jsonStr, err := ExtractJSON(content)
	if err != nil {
		return nil, apperrors.Extraction("evaluation response is not JSON", err)
	}
	raw, err := profile.DecodeRaw([]byte(jsonStr))
	if err != nil {
		return nil, apperrors.Extraction("evaluation response is not a fact record", err)
	}

	if s.cache != nil && !cached {
		s.cache.set(s.model, prompt, content)
	}

	facts := profile.Normalize(raw)
	// the model's echo of the job description is not trusted
	facts.JobDescription = jobDesc

	s.logger.Debug("Extracted fact record",
		zap.Int("past_roles", len(facts.PastRoles)),
		zap.Int("skills", len(facts.Skills)),
		zap.Bool("current_employment", facts.HasCurrentEmployment()))

	return &Extraction{Facts: facts, TotalTokens: tokens}, nil
}
