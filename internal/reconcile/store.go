// Package reconcile merges normalized résumé fact records into the
// candidate graph: one candidate per (owner, email), a single current
// employment row per company, deduplicated past roles and an idempotent
// actor tracking link, all inside one transaction.
package reconcile

import (
	"context"
	"time"

	"cv-reconcile/internal/storage"
)

// Repository is the set of writes a reconciliation performs. Every call
// made through one Repository value belongs to the same transaction.
type Repository interface {
	FindCandidate(ctx context.Context, ownerID, email string) (string, bool, error)
	InsertCandidate(ctx context.Context, c *storage.Candidate) (bool, error)
	UpdateCandidate(ctx context.Context, candidateID, company, title string, at time.Time) error

	UpdateCurrentExperience(ctx context.Context, e *storage.ExperienceEntry) (int64, error)
	InsertExperience(ctx context.Context, e *storage.ExperienceEntry) error
	PastExperienceExists(ctx context.Context, candidateID, company string) (bool, error)

	InsertSkill(ctx context.Context, s *storage.SkillEntry) error

	TrackingLinkExists(ctx context.Context, actorID, candidateID string) (bool, error)
	InsertTrackingLink(ctx context.Context, l *storage.TrackingLink) (bool, error)

	InsertEvaluationLog(ctx context.Context, l *storage.EvaluationLog) error
}

// Store opens transactions. fn's writes are committed only when it
// returns nil.
type Store interface {
	WithinTx(ctx context.Context, fn func(repo Repository) error) error
}

type sqlStore struct {
	db *storage.DB
}

// NewSQLStore adapts a storage.DB to Store.
func NewSQLStore(db *storage.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) WithinTx(ctx context.Context, fn func(repo Repository) error) error {
	return s.db.WithinTx(ctx, func(tx *storage.Tx) error {
		return fn(tx)
	})
}
