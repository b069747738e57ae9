package profile

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const maxYear = 9999

// Normalize converts a raw extractor record into a FactRecord. It never
// fails: malformed values become nil (or the zero value for scalars).
//
// Temporal fields are nil unless they hold a positive integer; months
// must also lie in [1,12]. Zero is the upstream "unknown" sentinel.
func Normalize(raw *RawFactRecord) *FactRecord {
	if raw == nil {
		return &FactRecord{}
	}

	rec := &FactRecord{
		Name:               clean(raw.Name),
		Title:              clean(raw.Title),
		JobDescription:     clean(raw.JobDescription),
		Email:              clean(raw.Email),
		Phone:              clean(raw.Phone),
		Location:           clean(raw.Location),
		Company:            clean(raw.Company),
		CurrentDescription: clean(raw.CurrentDescription),
		EmploymentType:     clean(raw.EmploymentType),
		CurrentCompYear:    year(raw.CurrentCompYear),
		CurrentCompMonth:   month(raw.CurrentCompMonth),
		PercentageMatch:    percentage(raw.PercentageMatch),
		ShortDescription:   clean(raw.ShortDescription),
	}

	rec.PastRoles = make([]PastRole, 0, len(raw.PastCompany))
	for i, company := range raw.PastCompany {
		rec.PastRoles = append(rec.PastRoles, PastRole{
			Company:     clean(company),
			Title:       optionalText(raw.PastTitle, i),
			Description: optionalText(raw.Description, i),
			StartYear:   year(at(raw.StartYear, i)),
			StartMonth:  month(at(raw.StartMonth, i)),
			EndYear:     year(at(raw.EndYear, i)),
			EndMonth:    month(at(raw.EndMonth, i)),
		})
	}

	rec.Skills = make([]Skill, 0, len(raw.Skill))
	for i, name := range raw.Skill {
		rec.Skills = append(rec.Skills, Skill{
			Name:            clean(name),
			Proficiency:     optionalText(raw.Proficiency, i),
			YearsExperience: nonNegative(at(raw.YearsExperience, i)),
			LastUsedYear:    year(at(raw.LastUsedYear, i)),
		})
	}

	return rec
}

func clean(s FlexString) string {
	return strings.TrimSpace(string(s))
}

func at(values []any, i int) any {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func optionalText(values []FlexString, i int) *string {
	if i >= len(values) {
		return nil
	}
	s := clean(values[i])
	if s == "" {
		return nil
	}
	return &s
}

// integer returns v as an int when it is a well-formed integer.
func integer(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := strconv.Atoi(n.String())
		return i, err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

func year(v any) *int {
	y, ok := integer(v)
	if !ok || y <= 0 || y > maxYear {
		return nil
	}
	return &y
}

func month(v any) *int {
	m, ok := integer(v)
	if !ok || m < 1 || m > 12 {
		return nil
	}
	return &m
}

func nonNegative(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	return &f
}

func percentage(v any) int {
	p := nonNegative(v)
	if p == nil {
		return 0
	}
	return int(math.Min(math.Round(*p), 100))
}
