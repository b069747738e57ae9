package reconcile

import (
	"context"
	"time"

	"cv-reconcile/internal/profile"
	"cv-reconcile/internal/storage"
)

// mergeCurrentEmployment applies the record's current role. For an
// existing candidate every row at the same company is rewritten as the
// open-ended current role; when there is none, or the candidate is new,
// a current row is inserted.
//
// The caller checks facts.HasCurrentEmployment first.
func mergeCurrentEmployment(ctx context.Context, repo Repository, candidateID string, facts *profile.FactRecord, isNew bool, now time.Time, newID func() string) error {
	entry := &storage.ExperienceEntry{
		CandidateID:    candidateID,
		Company:        facts.Company,
		Title:          optional(facts.Title),
		Description:    optional(facts.CurrentDescription),
		StartYear:      facts.CurrentCompYear,
		StartMonth:     facts.CurrentCompMonth,
		IsCurrent:      true,
		EmploymentType: optional(facts.EmploymentType),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if !isNew {
		n, err := repo.UpdateCurrentExperience(ctx, entry)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
	}

	entry.ID = newID()
	return repo.InsertExperience(ctx, entry)
}

// mergePastEmployment inserts the past roles in source order, skipping
// companies that already have a past row for the candidate. Existing past
// rows are never updated. It returns the number of rows inserted.
func mergePastEmployment(ctx context.Context, repo Repository, candidateID string, roles []profile.PastRole, now time.Time, newID func() string) (int, error) {
	inserted := 0
	for _, role := range roles {
		if role.Company == "" {
			continue
		}

		exists, err := repo.PastExperienceExists(ctx, candidateID, role.Company)
		if err != nil {
			return inserted, err
		}
		if exists {
			continue
		}

		// a month without a year is meaningless
		endMonth := role.EndMonth
		if role.EndYear == nil {
			endMonth = nil
		}

		err = repo.InsertExperience(ctx, &storage.ExperienceEntry{
			ID:          newID(),
			CandidateID: candidateID,
			Company:     role.Company,
			Title:       role.Title,
			Description: role.Description,
			StartYear:   role.StartYear,
			StartMonth:  role.StartMonth,
			EndYear:     role.EndYear,
			EndMonth:    endMonth,
			IsCurrent:   false,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
