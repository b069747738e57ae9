package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"cv-reconcile/internal/apperrors"
	"cv-reconcile/internal/profile"
)

// completionServer answers every chat completion with content.
func completionServer(t *testing.T, content string, prompts *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if prompts != nil && len(req.Messages) > 0 {
			*prompts = append(*prompts, req.Messages[len(req.Messages)-1].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"model":   req.Model,
			"choices": []map[string]any{{"index": 0, "message": map[string]string{"role": "assistant", "content": content}, "finish_reason": "stop"}},
			"usage":   map[string]int{"prompt_tokens": 900, "completion_tokens": 300, "total_tokens": 1200},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, srv *httptest.Server) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Provider: "openai",
		Model:    "gpt-4o-mini",
		BaseURL:  srv.URL + "/v1",
		APIKey:   "test-key",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return svc
}

func TestExtractFacts(t *testing.T) {
	var prompts []string
	srv := completionServer(t, "```json\n"+`{
		"name": "Jane Doe",
		"email": "a@x.com",
		"company": "Acme",
		"current_comp_year": "2022",
		"current_comp_month": 3,
		"job_description": "something the model made up",
		"past_company": ["Old Co", "Older Co"],
		"end_year": [2020],
		"end_month": [11, 13],
		"skill": ["Go"],
		"percentage_match": 81.6
	}`+"\n```", &prompts)
	svc := newTestService(t, srv)

	got, err := svc.ExtractFacts(context.Background(), "resume text", "Senior Go engineer", 75)
	require.NoError(t, err)

	assert.Equal(t, 1200, got.TotalTokens)
	facts := got.Facts
	assert.Equal(t, "Jane Doe", facts.Name)
	assert.Equal(t, "Senior Go engineer", facts.JobDescription)
	assert.True(t, facts.HasCurrentEmployment())
	assert.Equal(t, 82, facts.PercentageMatch)
	require.Len(t, facts.PastRoles, 2)
	assert.Nil(t, facts.PastRoles[1].EndYear)
	assert.Nil(t, facts.PastRoles[1].EndMonth)

	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Senior Go engineer")
	assert.Contains(t, prompts[0], "above 75")
}

func TestExtractFacts_NoDescription(t *testing.T) {
	var prompts []string
	srv := completionServer(t, `{"email": "a@x.com", "percentage_match": 0}`, &prompts)
	svc := newTestService(t, srv)

	got, err := svc.ExtractFacts(context.Background(), "resume text", profile.NoDescription, 70)
	require.NoError(t, err)
	assert.False(t, got.Facts.HasJobDescription())

	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "percentage_match: 0")
	assert.NotContains(t, prompts[0], "Ai Suggestion")
}

func TestExtractFacts_BadOutput(t *testing.T) {
	for name, content := range map[string]string{
		"empty":     "   ",
		"prose":     "Sorry, I cannot evaluate this resume.",
		"wrong key": `{"past_company": {"a": 1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(t, completionServer(t, content, nil))
			_, err := svc.ExtractFacts(context.Background(), "resume text", "job", 70)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrExtraction)
		})
	}
}

func TestExtractFacts_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
	}))
	t.Cleanup(srv.Close)
	svc := newTestService(t, srv)

	_, err := svc.ExtractFacts(context.Background(), "resume text", "job", 70)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrExtraction)
	assert.True(t, strings.Contains(err.Error(), "invalid api key"), err.Error())
}

func TestNewService(t *testing.T) {
	_, err := NewService(Config{Provider: "none", Model: "m"}, nil)
	assert.Error(t, err)

	_, err = NewService(Config{Provider: "mistral", Model: "m"}, nil)
	assert.Error(t, err)

	_, err = NewService(Config{Provider: "groq"}, nil)
	assert.Error(t, err)

	svc, err := NewService(Config{Provider: "ollama", Model: "llama3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, svc.provider)
}

func TestExtractFacts_Cache(t *testing.T) {
	var prompts []string
	srv := completionServer(t, `{"email": "a@x.com", "company": "Acme", "percentage_match": 64}`, &prompts)
	svc, err := NewService(Config{
		Provider: "openai",
		Model:    "gpt-4o-mini",
		BaseURL:  srv.URL + "/v1",
		APIKey:   "test-key",
		CacheTTL: time.Hour,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	first, err := svc.ExtractFacts(context.Background(), "resume text", "Go engineer", 70)
	require.NoError(t, err)
	assert.Equal(t, 1200, first.TotalTokens)

	second, err := svc.ExtractFacts(context.Background(), "resume text", "Go engineer", 70)
	require.NoError(t, err)
	assert.Zero(t, second.TotalTokens)
	assert.Equal(t, first.Facts, second.Facts)
	assert.NotSame(t, first.Facts, second.Facts)

	_, err = svc.ExtractFacts(context.Background(), "resume text", "Rust engineer", 70)
	require.NoError(t, err)
	assert.Len(t, prompts, 2)
}
