// Command reconcile_facts replays saved extractor output into the
// candidate store. Point it at a file holding the model's JSON response
// (surrounding text and <think> blocks are tolerated).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"cv-reconcile/internal/config"
	"cv-reconcile/internal/llm"
	"cv-reconcile/internal/logging"
	"cv-reconcile/internal/profile"
	"cv-reconcile/internal/reconcile"
	"cv-reconcile/internal/storage"
)

func main() {
	var (
		path, ownerID, actorID, resumeURL, pdfName, jobDesc string
		acceptance                                          int
		dryRun                                              bool
	)
	flag.StringVar(&path, "file", "", "Path to the saved extractor response")
	flag.StringVar(&ownerID, "user", "", "Owner of the candidate graph")
	flag.StringVar(&actorID, "actor", "", "Actor recorded in the tracking link (defaults to -user)")
	flag.StringVar(&resumeURL, "resume-url", "", "Stored résumé URL")
	flag.StringVar(&pdfName, "pdf-name", "", "Original file name")
	flag.StringVar(&jobDesc, "job-desc", profile.NoDescription, "Job description the response was scored against")
	flag.IntVar(&acceptance, "acceptance", 70, "Match acceptance threshold")
	flag.BoolVar(&dryRun, "dry-run", true, "If true, print the normalized record and do not persist")
	flag.Parse()

	if path == "" || ownerID == "" {
		log.Fatal("-file and -user are required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	payload, err := llm.ExtractJSON(string(data))
	if err != nil {
		log.Fatalf("no JSON object in %s: %v", path, err)
	}
	raw, err := profile.DecodeRaw([]byte(payload))
	if err != nil {
		log.Fatalf("decode %s: %v", path, err)
	}
	facts := profile.Normalize(raw)
	facts.JobDescription = jobDesc

	if dryRun {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(facts); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.LoadDatabase()
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

	db, err := storage.NewDB(cfg.Database.Driver, cfg.Database.URL, storage.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	engine := reconcile.NewEngine(reconcile.NewSQLStore(db), logger)
	rec, err := engine.Reconcile(ctx, reconcile.Request{
		OwnerID:             ownerID,
		ActorID:             actorID,
		Facts:               facts,
		ResumeURL:           resumeURL,
		PDFName:             pdfName,
		AcceptanceThreshold: acceptance,
	})
	if err != nil {
		logger.Fatal("Reconcile failed", zap.Error(err))
	}

	logger.Info("Reconciled",
		zap.String("candidate_id", rec.CandidateID),
		zap.Bool("created", rec.Created),
		zap.Bool("tracking_recorded", rec.TrackingRecorded),
		zap.String("evaluation_log_id", rec.EvaluationLogID))
}
