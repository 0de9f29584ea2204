package dto

import "github.com/fadilmartias/resume-ats-scanner/internal/model"

// ScanView is everything the page shows for one session. It is rebuilt from
// the session state after every action.
type ScanView struct {
	Resume            *ResumeView           `json:"resume,omitempty"`
	JobDescription    *model.JobDescription `json:"job_description,omitempty"`
	Review            *ReviewView           `json:"review,omitempty"`
	LastAnswer        *QAView               `json:"last_answer,omitempty"`
	PreviousQuestions []QAView              `json:"previous_questions"`
	Comparison        ComparisonView        `json:"comparison"`
}

type ResumeView struct {
	ID                string  `json:"id"`
	FileName          string  `json:"file_name"`
	ReadingMinutes    float64 `json:"reading_minutes"`
	Preview           string  `json:"preview"`
	Truncated         bool    `json:"truncated"`
	TruncationWarning string  `json:"truncation_warning,omitempty"`
}

type ReviewView struct {
	Summary  string `json:"summary"`
	Rating   string `json:"rating"`
	Feedback string `json:"feedback"`
}

type QAView struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ComparisonView struct {
	Files         []string          `json:"files"`
	DefaultFirst  string            `json:"default_first,omitempty"`
	DefaultSecond string            `json:"default_second,omitempty"`
	Last          *model.Comparison `json:"last,omitempty"`
}

// CanCompare reports whether enough documents are loaded to pick a pair.
func (v ComparisonView) CanCompare() bool {
	return len(v.Files) > 1
}
