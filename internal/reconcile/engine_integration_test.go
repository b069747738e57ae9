//go:build integration

package reconcile

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"cv-reconcile/internal/profile"
	"cv-reconcile/internal/storage"
)

func TestReconcilePostgres_ConcurrentUploadsOfSamePerson(t *testing.T) {
	db := storage.NewPostgresTestDB(t)
	e := NewEngine(NewSQLStore(db), zaptest.NewLogger(t))

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = map[string]bool{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := e.Reconcile(context.Background(), Request{OwnerID: "u1", Facts: acmeFacts()})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			ids[rec.CandidateID] = true
			if rec.Created {
				created++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	require.Len(t, ids, 1)

	var id string
	for k := range ids {
		id = k
	}
	assert.Len(t, experienceAt(t, db, id, "Old Co"), 1)
	assert.Len(t, experienceAt(t, db, id, "Acme"), 1)

	links, err := db.ListTrackingLinks(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestReconcilePostgres_EvaluationLogAndRollback(t *testing.T) {
	db := storage.NewPostgresTestDB(t)
	e := NewEngine(NewSQLStore(db), zaptest.NewLogger(t))

	facts := acmeFacts()
	facts.JobDescription = "Senior Go engineer"
	facts.PercentageMatch = 81
	rec := reconcileOK(t, e, Request{OwnerID: "u1", Facts: facts, AcceptanceThreshold: 70})
	require.NotEmpty(t, rec.EvaluationLogID)

	logs, err := db.ListEvaluationLogs(context.Background(), rec.CandidateID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 81, logs[0].MatchPercentage)

	failing := NewEngine(hookStore{
		Store: NewSQLStore(db),
		wrap:  func(r Repository) Repository { return failingTrackingRepo{r} },
	}, zaptest.NewLogger(t))
	_, err = failing.Reconcile(context.Background(), Request{
		OwnerID: "u2",
		Facts:   &profile.FactRecord{Name: "Sam", Email: "s@x.com", JobDescription: profile.NoDescription},
	})
	require.Error(t, err)

	rows, err := db.ListCandidatesByNaturalKey(context.Background(), "u2", "s@x.com")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
