package reconcile

import (
	"context"
	"time"

	"cv-reconcile/internal/storage"
)

// registerTracking links actorID to candidateID once. It reports whether
// a new link was written.
func registerTracking(ctx context.Context, repo Repository, actorID, candidateID string, now time.Time) (bool, error) {
	exists, err := repo.TrackingLinkExists(ctx, actorID, candidateID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	return repo.InsertTrackingLink(ctx, &storage.TrackingLink{
		ActorID:     actorID,
		CandidateID: candidateID,
		CreatedAt:   now,
	})
}
