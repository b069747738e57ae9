package storage

import "time"

// Candidate is one person in an owner's candidate graph. (OwnerID, Email)
// is the natural key.
type Candidate struct {
	ID             string    `json:"candidate_id"`
	OwnerID        string    `json:"owner_id"`
	Email          string    `json:"candidate_email"`
	FullName       string    `json:"full_name"`
	CurrentCompany string    `json:"current_company"`
	CurrentTitle   string    `json:"current_title"`
	Location       string    `json:"location"`
	Phone          string    `json:"phone"`
	Notes          string    `json:"notes"`
	ResumeURL      string    `json:"resume_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ExperienceEntry is one employment row of a candidate.
type ExperienceEntry struct {
	ID             string    `json:"experience_id"`
	CandidateID    string    `json:"candidate_id"`
	Company        string    `json:"company"`
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	StartYear      *int      `json:"start_year"`
	StartMonth     *int      `json:"start_month"`
	EndYear        *int      `json:"end_year"`
	EndMonth       *int      `json:"end_month"`
	IsCurrent      bool      `json:"is_current"`
	EmploymentType *string   `json:"employment_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SkillEntry is one skill row of a candidate.
type SkillEntry struct {
	ID              string    `json:"skill_id"`
	CandidateID     string    `json:"candidate_id"`
	SkillName       string    `json:"skill_name"`
	Proficiency     *string   `json:"proficiency"`
	YearsExperience *float64  `json:"years_experience"`
	LastUsedYear    *int      `json:"last_used_year"`
	CreatedAt       time.Time `json:"created_at"`
}

// TrackingLink records that an actor has processed a candidate.
type TrackingLink struct {
	ActorID     string    `json:"actor_id"`
	CandidateID string    `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// EvaluationLog is the audit row written when a résumé is scored
// against a job description.
type EvaluationLog struct {
	ID               string    `json:"log_id"`
	OwnerID          string    `json:"owner_id"`
	CandidateID      string    `json:"candidate_id"`
	RunAt            time.Time `json:"run_at"`
	Title            string    `json:"title"`
	JobDescription   string    `json:"job_description"`
	FileURL          string    `json:"file_url"`
	PDFName          string    `json:"pdf_name"`
	CandidateName    string    `json:"candidate_name"`
	CandidateEmail   string    `json:"candidate_email"`
	Phone            string    `json:"phone"`
	MatchPercentage  int       `json:"match_percentage"`
	ShortDescription string    `json:"short_description"`
	IsShortlisted    bool      `json:"is_shortlisted"`
	LLMTokens        int       `json:"llm_tokens"`
	OCRTokens        int       `json:"ocr_tokens"`
	MatchAcceptance  int       `json:"match_acceptance"`
}

// CandidateProfile is a candidate with its experience and skill rows.
type CandidateProfile struct {
	Candidate  Candidate         `json:"candidate"`
	Experience []ExperienceEntry `json:"experience"`
	Skills     []SkillEntry      `json:"skills"`
}
