package reconcile

import (
	"context"
	"time"

	"cv-reconcile/internal/profile"
	"cv-reconcile/internal/storage"
)

// resolveCandidate looks up the candidate for (ownerID, email). The
// match is exact; email case is kept as extracted.
func resolveCandidate(ctx context.Context, repo Repository, ownerID, email string) (string, bool, error) {
	return repo.FindCandidate(ctx, ownerID, email)
}

// createCandidate inserts a candidate for the natural key. It reports
// false when another reconciliation already holds the key, in which case
// nothing was written.
func createCandidate(ctx context.Context, repo Repository, id string, req Request, now time.Time) (bool, error) {
	facts := req.Facts
	return repo.InsertCandidate(ctx, &storage.Candidate{
		ID:             id,
		OwnerID:        req.OwnerID,
		Email:          facts.Email,
		FullName:       facts.Name,
		CurrentCompany: facts.Company,
		CurrentTitle:   facts.Title,
		Location:       facts.Location,
		Phone:          facts.Phone,
		Notes:          facts.CurrentDescription,
		ResumeURL:      req.ResumeURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

// updateCandidate moves an existing candidate to the employer and title
// of the latest upload. Other attributes keep their first-seen values.
func updateCandidate(ctx context.Context, repo Repository, candidateID string, facts *profile.FactRecord, now time.Time) error {
	return repo.UpdateCandidate(ctx, candidateID, facts.Company, facts.Title, now)
}
