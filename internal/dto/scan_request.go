package dto

// JobDescriptionRequest is posted by the job description form. The
// description is ignored unless Enabled is set.
type JobDescriptionRequest struct {
	Enabled     bool   `json:"enabled" form:"enabled"`
	CompanyName string `json:"company_name" form:"company_name"`
	JobPost     string `json:"job_post" form:"job_post"`
	Description string `json:"description" form:"description"`
}

type QuestionRequest struct {
	Question string `json:"question" form:"question"`
}

type CompareRequest struct {
	First  string `json:"first" form:"first"`
	Second string `json:"second" form:"second"`
}
