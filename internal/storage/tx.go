package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Tx exposes the reconciliation writes over one open transaction.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *Tx) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.rebind(query), args...)
}

func (t *Tx) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.rebind(query), args...)
}

func (t *Tx) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := t.queryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindCandidate looks a candidate up by its natural key. On Postgres the
// row stays locked until the transaction ends.
func (t *Tx) FindCandidate(ctx context.Context, ownerID, email string) (string, bool, error) {
	var id string
	err := t.queryRow(ctx, `
		SELECT candidate_id FROM candidates
		WHERE owner_id = ? AND candidate_email = ?`+t.dialect.lockClause(),
		ownerID, email,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find candidate: %w", err)
	}
	return id, true, nil
}

// InsertCandidate inserts c unless its natural key is already taken, in
// which case it reports false and writes nothing. On Postgres a
// concurrent insert of the same key blocks here until the other
// transaction finishes.
func (t *Tx) InsertCandidate(ctx context.Context, c *Candidate) (bool, error) {
	res, err := t.exec(ctx, `
		INSERT INTO candidates (
			candidate_id, owner_id, candidate_email, full_name, current_company,
			current_title, location, phone, notes, resume_url, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_id, candidate_email) DO NOTHING`,
		c.ID, c.OwnerID, c.Email, c.FullName, c.CurrentCompany,
		c.CurrentTitle, c.Location, c.Phone, c.Notes, c.ResumeURL, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert candidate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert candidate: %w", err)
	}
	return n == 1, nil
}

// UpdateCandidate refreshes the current employer and title of an
// existing candidate.
func (t *Tx) UpdateCandidate(ctx context.Context, candidateID, company, title string, at time.Time) error {
	_, err := t.exec(ctx, `
		UPDATE candidates
		SET current_company = ?, current_title = ?, updated_at = ?
		WHERE candidate_id = ?`,
		company, title, at, candidateID,
	)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	return nil
}

// UpdateCurrentExperience rewrites every row of e.CandidateID at
// e.Company as the current role and returns how many rows changed.
func (t *Tx) UpdateCurrentExperience(ctx context.Context, e *ExperienceEntry) (int64, error) {
	res, err := t.exec(ctx, `
		UPDATE candidate_experience
		SET title = ?, description = ?, start_year = ?, start_month = ?,
			end_year = NULL, end_month = NULL, employment_type = ?,
			is_current = ?, updated_at = ?
		WHERE candidate_id = ? AND company = ?`,
		e.Title, e.Description, e.StartYear, e.StartMonth, e.EmploymentType,
		true, e.UpdatedAt, e.CandidateID, e.Company,
	)
	if err != nil {
		return 0, fmt.Errorf("update current experience: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update current experience: %w", err)
	}
	return n, nil
}

func (t *Tx) InsertExperience(ctx context.Context, e *ExperienceEntry) error {
	_, err := t.exec(ctx, `
		INSERT INTO candidate_experience (
			experience_id, candidate_id, company, title, description,
			start_year, start_month, end_year, end_month, is_current,
			employment_type, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CandidateID, e.Company, e.Title, e.Description,
		e.StartYear, e.StartMonth, e.EndYear, e.EndMonth, e.IsCurrent,
		e.EmploymentType, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert experience %q: %w", e.Company, err)
	}
	return nil
}

// PastExperienceExists reports whether a non-current row exists for the
// candidate at company.
func (t *Tx) PastExperienceExists(ctx context.Context, candidateID, company string) (bool, error) {
	ok, err := t.exists(ctx, `
		SELECT 1 FROM candidate_experience
		WHERE candidate_id = ? AND company = ? AND is_current = ?
		LIMIT 1`,
		candidateID, company, false,
	)
	if err != nil {
		return false, fmt.Errorf("check past experience %q: %w", company, err)
	}
	return ok, nil
}

func (t *Tx) InsertSkill(ctx context.Context, s *SkillEntry) error {
	_, err := t.exec(ctx, `
		INSERT INTO candidate_skills (
			skill_id, candidate_id, skill_name, proficiency,
			years_experience, last_used_year, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.CandidateID, s.SkillName, s.Proficiency,
		s.YearsExperience, s.LastUsedYear, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert skill %q: %w", s.SkillName, err)
	}
	return nil
}

func (t *Tx) TrackingLinkExists(ctx context.Context, actorID, candidateID string) (bool, error) {
	ok, err := t.exists(ctx, `
		SELECT 1 FROM candidate_tracking
		WHERE actor_id = ? AND candidate_id = ?`,
		actorID, candidateID,
	)
	if err != nil {
		return false, fmt.Errorf("check tracking link: %w", err)
	}
	return ok, nil
}

// InsertTrackingLink inserts l and reports whether a row was written.
func (t *Tx) InsertTrackingLink(ctx context.Context, l *TrackingLink) (bool, error) {
	res, err := t.exec(ctx, `
		INSERT INTO candidate_tracking (actor_id, candidate_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (actor_id, candidate_id) DO NOTHING`,
		l.ActorID, l.CandidateID, l.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert tracking link: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert tracking link: %w", err)
	}
	return n == 1, nil
}

func (t *Tx) InsertEvaluationLog(ctx context.Context, l *EvaluationLog) error {
	_, err := t.exec(ctx, `
		INSERT INTO evaluation_logs (
			log_id, owner_id, candidate_id, run_at, title, job_description,
			file_url, pdf_name, candidate_name, candidate_email, phone,
			match_percentage, short_description, is_shortlisted,
			llm_tokens, ocr_tokens, match_acceptance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.OwnerID, l.CandidateID, l.RunAt, l.Title, l.JobDescription,
		l.FileURL, l.PDFName, l.CandidateName, l.CandidateEmail, l.Phone,
		l.MatchPercentage, l.ShortDescription, l.IsShortlisted,
		l.LLMTokens, l.OCRTokens, l.MatchAcceptance,
	)
	if err != nil {
		return fmt.Errorf("insert evaluation log: %w", err)
	}
	return nil
}
