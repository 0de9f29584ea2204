package usecase

import "io"

// Action is one user interaction with the scanner page.
type Action interface {
	actionName() string
}

// UploadResume replaces the active resume.
type UploadResume struct {
	Name string
	Body io.Reader
}

// SetJobDescription stores the job description, or clears it when Enabled
// is false.
type SetJobDescription struct {
	Enabled     bool
	Company     string
	Post        string
	Description string
}

// Review produces summary, rating and feedback for the active resume.
type Review struct{}

// Ask answers a question about the active resume.
type Ask struct {
	Question string
}

type UploadedFile struct {
	Name string
	Body io.Reader
}

// UploadComparison replaces the set of resumes available for comparison.
type UploadComparison struct {
	Files []UploadedFile
}

// Compare analyses two resumes of the comparison set by file name.
type Compare struct {
	First  string
	Second string
}

func (UploadResume) actionName() string      { return "upload_resume" }
func (SetJobDescription) actionName() string { return "set_job_description" }
func (Review) actionName() string            { return "review" }
func (Ask) actionName() string               { return "ask" }
func (UploadComparison) actionName() string  { return "upload_comparison" }
func (Compare) actionName() string           { return "compare" }
