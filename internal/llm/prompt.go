package llm

import (
	"fmt"

	"cv-reconcile/internal/profile"
)

const factFields = `name: Full name of the candidate
title: current job title
job_description: the job description
email: Email address
phone_number: Phone number
location: current company location
company: current company
current_description: description of the work at the current company
current_comp_year: start year at the current company, an integer
current_comp_month: start month at the current company, an integer from 1 to 12, otherwise null
employment_type: permanent or contract
past_company: JSON array of strings with every past company, e.g. ["Company A", "Company B"]
past_title: JSON array of strings with the job title held at each past company
description: JSON array of strings describing the work at each past company
start_year: JSON array with the start year of each past company
start_month: JSON array with the start month of each past company, integers from 1 to 12, otherwise null
end_year: JSON array with the end year of each past company
end_month: JSON array with the end month of each past company, integers from 1 to 12, otherwise null
skill: JSON array with 5 skills the candidate has
proficiency: JSON array with the proficiency of each listed skill
years_experience: JSON array with the years of experience of each listed skill
last_used_year: JSON array with the last year each listed skill was used
`

// buildPrompt returns the evaluation prompt. Without a job description
// the model only extracts and percentage_match is pinned to 0.
func buildPrompt(resumeText, jobDesc string, acceptance int) string {
	if jobDesc == profile.NoDescription || jobDesc == "" {
		return fmt.Sprintf(`You are a resume evaluator. You are given the following inputs:
Job Description: %s
Resume: %s

Analyze the resume and return raw JSON only, without markdown formatting or labels.
If a role has no start date, list it under past_company rather than company.
Return the following fields in the JSON:
%spercentage_match: 0
short_description: a 1-2 sentence summary of the candidate
`, profile.NoDescription, resumeText, factFields)
	}

	return fmt.Sprintf(`You are a resume evaluator. You are given the following inputs:
Job Description: %s
Resume: %s

Analyze the resume against the job description and return raw JSON only, without markdown formatting or labels.
If a role has no start date, list it under past_company rather than company.
Return the following fields in the JSON:
%spercentage_match: an integer from 0 to 100 for how well the resume matches the job description
short_description: a 1-2 sentence summary of the candidate relevant to the job, ending with
<br><b>Ai Suggestion : <span class='text-success'>Can be hired </span> </b> if percentage_match is above %d, or
<br><b>Ai Suggestion : <span class='text-danger'>Not recommended to be hired</span></b> otherwise
`, jobDesc, resumeText, factFields, acceptance)
}
