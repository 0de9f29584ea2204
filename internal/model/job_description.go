package model

import "strings"

// JobDescription is optional free text supplied next to a resume.
type JobDescription struct {
	CompanyName string `json:"company_name" form:"company_name"`
	JobPost     string `json:"job_post" form:"job_post"`
	Description string `json:"description" form:"description"`
}

// PromptText renders the description for prompts. Company and post, when
// given, are prefixed as labelled lines. An empty description yields "".
func (j JobDescription) PromptText() string {
	var lines []string
	if v := strings.TrimSpace(j.CompanyName); v != "" {
		lines = append(lines, "Company: "+v)
	}
	if v := strings.TrimSpace(j.JobPost); v != "" {
		lines = append(lines, "Job Post: "+v)
	}
	if v := strings.TrimSpace(j.Description); v != "" {
		lines = append(lines, v)
	}
	return strings.Join(lines, "\n")
}

func (j JobDescription) IsEmpty() bool {
	return j.PromptText() == ""
}
