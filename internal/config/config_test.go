package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/cv?sslmode=disable")
	t.Setenv("FILE_UPLOAD_URL", "http://files.local/api/upload")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.Database.RunMigrations)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "file_url", cfg.Upload.FieldName)
	assert.Equal(t, 70, cfg.Screening.DefaultAcceptance)
	assert.Equal(t, int64(10), cfg.Screening.MaxUploadMB)
	assert.Equal(t, "Asia/Kuala_Lumpur", cfg.Screening.Timezone)
}

func TestLoad_GroqKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LLM_PROVIDER", "groq")
	t.Setenv("GROQ_API_KEY", "gsk-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gsk-test", cfg.LLM.APIKey)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("FILE_UPLOAD_URL", "http://files.local/api/upload")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database:  DatabaseConfig{Driver: "sqlite", URL: "cv.db"},
			LLM:       LLMConfig{Provider: "ollama"},
			Screening: ScreeningConfig{DefaultAcceptance: 70, Timezone: "UTC"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }, "DATABASE_DRIVER"},
		{"openai without key", func(c *Config) { c.LLM.Provider = "openai" }, "API key"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "bard" }, "LLM_PROVIDER"},
		{"ocr without project", func(c *Config) { c.OCR.Enabled = true }, "GOOGLE_CLOUD_PROJECT"},
		{"acceptance out of range", func(c *Config) { c.Screening.DefaultAcceptance = 120 }, "DEFAULT_ACCEPTANCE"},
		{"bad timezone", func(c *Config) { c.Screening.Timezone = "Mars/Olympus" }, "RESULT_TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDatabase(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "candidates.db")
	t.Setenv("FILE_UPLOAD_URL", "")

	cfg, err := LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "candidates.db", cfg.Database.URL)
	assert.Equal(t, "local", cfg.Environment)

	t.Setenv("DATABASE_DRIVER", "mysql")
	_, err = LoadDatabase()
	assert.ErrorContains(t, err, "DATABASE_DRIVER")
}
