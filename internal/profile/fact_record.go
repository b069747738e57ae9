// Package profile defines the fact record extracted from a résumé and
// the validator that turns the extractor's loosely-typed JSON into it.
package profile

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// NoDescription is the job description sentinel sent by clients that only
// want the résumé ingested, without matching against a role.
const NoDescription = "!##NO DESCRIPTION##!"

// RawFactRecord mirrors the JSON object returned by the extraction
// collaborator. Past-employment and skill fields are parallel arrays
// indexed by position; any of them may be shorter than the others.
// Temporal values are left untyped because extractors emit integers,
// numeric strings, floats, "unknown" and null interchangeably.
type RawFactRecord struct {
	Name               FlexString `json:"name"`
	Title              FlexString `json:"title"`
	JobDescription     FlexString `json:"job_description"`
	Email              FlexString `json:"email"`
	Phone              FlexString `json:"phone_number"`
	Location           FlexString `json:"location"`
	Company            FlexString `json:"company"`
	CurrentDescription FlexString `json:"current_description"`
	EmploymentType     FlexString `json:"employment_type"`
	CurrentCompYear    any        `json:"current_comp_year"`
	CurrentCompMonth   any        `json:"current_comp_month"`

	PastCompany []FlexString `json:"past_company"`
	PastTitle   []FlexString `json:"past_title"`
	Description []FlexString `json:"description"`
	StartYear   []any        `json:"start_year"`
	StartMonth  []any        `json:"start_month"`
	EndYear     []any        `json:"end_year"`
	EndMonth    []any        `json:"end_month"`

	Skill           []FlexString `json:"skill"`
	Proficiency     []FlexString `json:"proficiency"`
	YearsExperience []any        `json:"years_experience"`
	LastUsedYear    []any        `json:"last_used_year"`

	PercentageMatch  any        `json:"percentage_match"`
	ShortDescription FlexString `json:"short_description"`
}

// FlexString decodes a JSON string, number or bool into its text form.
// null and structured values decode to "".
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case '{', '[':
		*f = ""
	default:
		// numbers and booleans keep their literal text
		if _, err := strconv.ParseFloat(string(data), 64); err == nil || string(data) == "true" || string(data) == "false" {
			*f = FlexString(data)
			return nil
		}
		*f = ""
	}
	return nil
}

// FactRecord is the normalized, strongly-typed fact record. Nil pointers
// mean "unknown".
type FactRecord struct {
	Name               string `json:"name"`
	Title              string `json:"title"`
	JobDescription     string `json:"job_description,omitempty"`
	Email              string `json:"email"`
	Phone              string `json:"phone_number"`
	Location           string `json:"location"`
	Company            string `json:"company"`
	CurrentDescription string `json:"current_description"`
	EmploymentType     string `json:"employment_type"`
	CurrentCompYear    *int   `json:"current_comp_year"`
	CurrentCompMonth   *int   `json:"current_comp_month"`

	PastRoles []PastRole `json:"past_roles"`
	Skills    []Skill    `json:"skills"`

	PercentageMatch  int    `json:"percentage_match"`
	ShortDescription string `json:"short_description"`
}

// PastRole is one entry of the past-employment list.
type PastRole struct {
	Company     string  `json:"company"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartYear   *int    `json:"start_year"`
	StartMonth  *int    `json:"start_month"`
	EndYear     *int    `json:"end_year"`
	EndMonth    *int    `json:"end_month"`
}

// Skill is one entry of the skill list.
type Skill struct {
	Name            string   `json:"skill"`
	Proficiency     *string  `json:"proficiency"`
	YearsExperience *float64 `json:"years_experience"`
	LastUsedYear    *int     `json:"last_used_year"`
}

// HasCurrentEmployment reports whether the record carries a dated
// current-employment claim. Undated claims are never applied to the
// candidate's current-employment slot.
func (f *FactRecord) HasCurrentEmployment() bool {
	return f.CurrentCompYear != nil && f.CurrentCompMonth != nil
}

// HasJobDescription reports whether the résumé was evaluated against a
// real job description.
func (f *FactRecord) HasJobDescription() bool {
	return f.JobDescription != "" && f.JobDescription != NoDescription
}

// DecodeRaw parses extractor output into a RawFactRecord.
func DecodeRaw(data []byte) (*RawFactRecord, error) {
	var raw RawFactRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}
