package config

import (
	"fmt"
	"log"
	"os"
	"time"
	_ "time/tzdata" // RESULT_TIMEZONE must resolve on minimal images

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all process configuration. It is built once in main and
// handed to constructors; nothing reads the environment after Load.
type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"local"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	Database  DatabaseConfig
	LLM       LLMConfig
	OCR       OCRConfig
	Upload    UploadConfig
	Screening ScreeningConfig
}

type DatabaseConfig struct {
	Driver          string        `env:"DATABASE_DRIVER" env-default:"postgres"` // "postgres" or "sqlite"
	URL             string        `env:"DATABASE_URL" env-required:"true"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" env-default:"5m"`
	RunMigrations   bool          `env:"RUN_MIGRATIONS" env-default:"true"`
}

type LLMConfig struct {
	Provider string        `env:"LLM_PROVIDER" env-default:"openai"` // "openai", "groq", "ollama" or "none"
	Model    string        `env:"LLM_MODEL" env-default:"gpt-4o-mini"`
	BaseURL  string        `env:"LLM_BASE_URL"` // overrides the provider default
	Timeout  time.Duration `env:"LLM_TIMEOUT" env-default:"10m"`
	CacheTTL time.Duration `env:"LLM_CACHE_TTL" env-default:"15m"`
	APIKey   string        // resolved from the provider-specific variable
}

type OCRConfig struct {
	Enabled   bool   `env:"OCR_ENABLED" env-default:"false"`
	ProjectID string `env:"GOOGLE_CLOUD_PROJECT"`
	Location  string `env:"GOOGLE_CLOUD_LOCATION" env-default:"us-central1"`
	Model     string `env:"OCR_MODEL" env-default:"gemini-2.0-flash"`
}

type UploadConfig struct {
	Endpoint   string        `env:"FILE_UPLOAD_URL" env-required:"true"`
	FieldName  string        `env:"FILE_UPLOAD_FIELD" env-default:"file_url"`
	Timeout    time.Duration `env:"FILE_UPLOAD_TIMEOUT" env-default:"60s"`
	MaxRetries int           `env:"FILE_UPLOAD_MAX_RETRIES" env-default:"3"`
}

type ScreeningConfig struct {
	UploadsDir        string `env:"UPLOADS_DIR" env-default:"./uploads"`
	DefaultAcceptance int    `env:"DEFAULT_ACCEPTANCE" env-default:"70"`
	MaxUploadMB       int64  `env:"MAX_UPLOAD_MB" env-default:"10"`
	Timezone          string `env:"RESULT_TIMEZONE" env-default:"Asia/Kuala_Lumpur"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Println("Warning: .env file not found, using environment variables")
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg.LLM.APIKey = resolveAPIKey(cfg.LLM.Provider)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDatabase reads only the logging and database settings, for tools
// that never talk to the LLM or the upload service.
func LoadDatabase() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg.Database); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	cfg.Environment = envOr("ENVIRONMENT", "local")
	cfg.LogLevel = envOr("LOG_LEVEL", "info")

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q (want postgres or sqlite)", cfg.Database.Driver)
	}
	return &cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// resolveAPIKey picks the credential variable that matches the provider.
func resolveAPIKey(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "groq":
		return os.Getenv("GROQ_API_KEY")
	default:
		return os.Getenv("LLM_API_KEY")
	}
}

// Validate checks cross-field constraints cleanenv cannot express.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want postgres or sqlite)", c.Database.Driver)
	}

	switch c.LLM.Provider {
	case "openai", "groq":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("LLM_PROVIDER=%s requires an API key", c.LLM.Provider)
		}
	case "ollama", "none":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if c.OCR.Enabled && c.OCR.ProjectID == "" {
		return fmt.Errorf("OCR_ENABLED requires GOOGLE_CLOUD_PROJECT")
	}

	if c.Screening.DefaultAcceptance < 0 || c.Screening.DefaultAcceptance > 100 {
		return fmt.Errorf("DEFAULT_ACCEPTANCE must be within 0-100, got %d", c.Screening.DefaultAcceptance)
	}

	if _, err := time.LoadLocation(c.Screening.Timezone); err != nil {
		return fmt.Errorf("invalid RESULT_TIMEZONE %q: %w", c.Screening.Timezone, err)
	}

	return nil
}
