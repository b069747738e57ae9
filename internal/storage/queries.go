package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cv-reconcile/internal/apperrors"
)

const candidateColumns = `candidate_id, owner_id, candidate_email, full_name, current_company,
	current_title, location, phone, notes, resume_url, created_at, updated_at`

func scanCandidate(row interface{ Scan(...any) error }) (*Candidate, error) {
	c := &Candidate{}
	err := row.Scan(&c.ID, &c.OwnerID, &c.Email, &c.FullName, &c.CurrentCompany,
		&c.CurrentTitle, &c.Location, &c.Phone, &c.Notes, &c.ResumeURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetCandidate returns the candidate with the given id.
func (db *DB) GetCandidate(ctx context.Context, candidateID string) (*Candidate, error) {
	c, err := scanCandidate(db.queryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE candidate_id = ?`, candidateID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("candidate", candidateID)
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

// ListCandidatesByNaturalKey returns every candidate stored for
// (ownerID, email). The unique constraint keeps this at most one row.
func (db *DB) ListCandidatesByNaturalKey(ctx context.Context, ownerID, email string) ([]Candidate, error) {
	rows, err := db.query(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE owner_id = ? AND candidate_email = ?`,
		ownerID, email)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var res []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *c)
	}
	return res, rows.Err()
}

// ListExperience returns the experience rows of a candidate, oldest first.
func (db *DB) ListExperience(ctx context.Context, candidateID string) ([]ExperienceEntry, error) {
	rows, err := db.query(ctx, `
		SELECT experience_id, candidate_id, company, title, description,
			start_year, start_month, end_year, end_month, is_current,
			employment_type, created_at, updated_at
		FROM candidate_experience
		WHERE candidate_id = ?
		ORDER BY created_at, company`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list experience: %w", err)
	}
	defer rows.Close()

	var res []ExperienceEntry
	for rows.Next() {
		var e ExperienceEntry
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Company, &e.Title, &e.Description,
			&e.StartYear, &e.StartMonth, &e.EndYear, &e.EndMonth, &e.IsCurrent,
			&e.EmploymentType, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// ListSkills returns the skill rows of a candidate.
func (db *DB) ListSkills(ctx context.Context, candidateID string) ([]SkillEntry, error) {
	rows, err := db.query(ctx, `
		SELECT skill_id, candidate_id, skill_name, proficiency,
			years_experience, last_used_year, created_at
		FROM candidate_skills
		WHERE candidate_id = ?
		ORDER BY created_at, skill_name`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	var res []SkillEntry
	for rows.Next() {
		var s SkillEntry
		if err := rows.Scan(&s.ID, &s.CandidateID, &s.SkillName, &s.Proficiency,
			&s.YearsExperience, &s.LastUsedYear, &s.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// ListTrackingLinks returns the actors that have touched a candidate.
func (db *DB) ListTrackingLinks(ctx context.Context, candidateID string) ([]TrackingLink, error) {
	rows, err := db.query(ctx, `
		SELECT actor_id, candidate_id, created_at
		FROM candidate_tracking
		WHERE candidate_id = ?
		ORDER BY created_at, actor_id`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list tracking links: %w", err)
	}
	defer rows.Close()

	var res []TrackingLink
	for rows.Next() {
		var l TrackingLink
		if err := rows.Scan(&l.ActorID, &l.CandidateID, &l.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

// ListEvaluationLogs returns the evaluation audit rows of a candidate.
func (db *DB) ListEvaluationLogs(ctx context.Context, candidateID string) ([]EvaluationLog, error) {
	rows, err := db.query(ctx, `
		SELECT log_id, owner_id, candidate_id, run_at, title, job_description,
			file_url, pdf_name, candidate_name, candidate_email, phone,
			match_percentage, short_description, is_shortlisted,
			llm_tokens, ocr_tokens, match_acceptance
		FROM evaluation_logs
		WHERE candidate_id = ?
		ORDER BY run_at`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list evaluation logs: %w", err)
	}
	defer rows.Close()

	var res []EvaluationLog
	for rows.Next() {
		var l EvaluationLog
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.CandidateID, &l.RunAt, &l.Title, &l.JobDescription,
			&l.FileURL, &l.PDFName, &l.CandidateName, &l.CandidateEmail, &l.Phone,
			&l.MatchPercentage, &l.ShortDescription, &l.IsShortlisted,
			&l.LLMTokens, &l.OCRTokens, &l.MatchAcceptance); err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

// GetCandidateProfile loads a candidate together with its experience and skills.
func (db *DB) GetCandidateProfile(ctx context.Context, candidateID string) (*CandidateProfile, error) {
	c, err := db.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	experience, err := db.ListExperience(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	skills, err := db.ListSkills(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return &CandidateProfile{Candidate: *c, Experience: experience, Skills: skills}, nil
}
