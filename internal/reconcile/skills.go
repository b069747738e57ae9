package reconcile

import (
	"context"
	"time"

	"cv-reconcile/internal/profile"
	"cv-reconcile/internal/storage"
)

// recordSkills inserts one row per named skill. It is only called for
// candidates created by the current reconciliation; skills of existing
// candidates are left as first recorded.
func recordSkills(ctx context.Context, repo Repository, candidateID string, skills []profile.Skill, now time.Time, newID func() string) (int, error) {
	inserted := 0
	for _, s := range skills {
		if s.Name == "" {
			continue
		}
		err := repo.InsertSkill(ctx, &storage.SkillEntry{
			ID:              newID(),
			CandidateID:     candidateID,
			SkillName:       s.Name,
			Proficiency:     s.Proficiency,
			YearsExperience: s.YearsExperience,
			LastUsedYear:    s.LastUsedYear,
			CreatedAt:       now,
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
