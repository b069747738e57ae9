package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "cv-reconcile/docs" // Swagger docs
	"cv-reconcile/internal/api"
	"cv-reconcile/internal/config"
	"cv-reconcile/internal/cv"
	"cv-reconcile/internal/llm"
	"cv-reconcile/internal/logging"
	"cv-reconcile/internal/ocr"
	"cv-reconcile/internal/reconcile"
	"cv-reconcile/internal/screening"
	"cv-reconcile/internal/storage"
	"cv-reconcile/internal/upload"
)

// @title Candidate Reconciliation API
// @version 1.0
// @description Resume screening with LLM fact extraction and transactional candidate reconciliation

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer logger.Sync()

	if cfg.Database.RunMigrations {
		if err := storage.Migrate(cfg.Database.Driver, cfg.Database.URL, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	logger.Info("Connecting to database...", zap.String("driver", cfg.Database.Driver))
	db, err := storage.NewDB(cfg.Database.Driver, cfg.Database.URL, storage.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	llmService, err := llm.NewService(llm.Config{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		APIKey:   cfg.LLM.APIKey,
		Timeout:  cfg.LLM.Timeout,
		CacheTTL: cfg.LLM.CacheTTL,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}

	ctx := context.Background()

	// A nil Transcriber disables the scanned-PDF fallback.
	var transcriber cv.Transcriber
	if cfg.OCR.Enabled {
		ocrClient, err := ocr.NewClient(ctx, ocr.Config{
			ProjectID: cfg.OCR.ProjectID,
			Location:  cfg.OCR.Location,
			Model:     cfg.OCR.Model,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize OCR client", zap.Error(err))
		}
		defer ocrClient.Close()
		transcriber = ocrClient
	}

	if err := os.MkdirAll(cfg.Screening.UploadsDir, 0o755); err != nil {
		logger.Fatal("Failed to create uploads dir", zap.Error(err))
	}
	extractor := cv.NewExtractor(cv.NewCVParser(cfg.Screening.UploadsDir), transcriber, logger)

	uploader := upload.NewClient(upload.Config{
		Endpoint:   cfg.Upload.Endpoint,
		FieldName:  cfg.Upload.FieldName,
		Timeout:    cfg.Upload.Timeout,
		MaxRetries: cfg.Upload.MaxRetries,
	}, logger)

	engine := reconcile.NewEngine(reconcile.NewSQLStore(db), logger)

	loc, err := time.LoadLocation(cfg.Screening.Timezone)
	if err != nil {
		logger.Fatal("Invalid result timezone", zap.Error(err))
	}
	screener := screening.NewService(uploader, extractor, llmService, engine, screening.Config{
		DefaultAcceptance: cfg.Screening.DefaultAcceptance,
		Location:          loc,
	}, logger)

	apiSrv := api.NewAPI(screener, db, cfg.Screening.MaxUploadMB, logger)
	router := api.NewRouter(apiSrv)

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// upload, OCR and a slow local model can all sit on one request
		WriteTimeout: cfg.LLM.Timeout + 5*time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	logger.Info("API server listening", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server failed", zap.Error(err))
	}

	<-idleConnsClosed
}
