package model

import "time"

// Review is the summary, rating and feedback produced for one resume.
type Review struct {
	ResumeID string `json:"resume_id"`
	Summary  string `json:"summary"`
	Rating   string `json:"rating"`
	Feedback string `json:"feedback"`
}

// QAEntry is one answered question about a resume.
type QAEntry struct {
	ResumeID string    `json:"resume_id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Seq      uint64    `json:"seq"`
	AskedAt  time.Time `json:"asked_at"`
}

// ComparisonDocument is a resume uploaded for comparison, with its summary.
type ComparisonDocument struct {
	Resume  *Resume `json:"resume"`
	Summary string  `json:"summary"`
}

// Comparison is the analysis of two resumes against the job description.
type Comparison struct {
	ID       string `json:"id"`
	First    string `json:"first"`
	Second   string `json:"second"`
	Analysis string `json:"analysis"`
}
