// Package prompt fills the fixed prompt templates sent to the model.
// Values are inserted verbatim: no escaping and no length checks.
package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed templates/summary.txt
	summaryTemplate string
	//go:embed templates/rating.txt
	ratingTemplate string
	//go:embed templates/feedback.txt
	feedbackTemplate string
	//go:embed templates/question.txt
	questionTemplate string
	//go:embed templates/comparison.txt
	comparisonTemplate string
)

// Summary asks for a summary of at most 250 words. The resume text follows
// the instructions directly.
func Summary(resumeText string) string {
	return fill(summaryTemplate, "{{RESUME_TEXT}}", resumeText)
}

// Rating asks for a 0-10 rating of a summary against a job description.
func Rating(summary, jobDescription string) string {
	return fill(ratingTemplate,
		"{{SUMMARY}}", summary,
		"{{JOB_DESCRIPTION}}", jobDescription,
	)
}

// Feedback asks for improvement advice on a summary.
func Feedback(summary, jobDescription string) string {
	return fill(feedbackTemplate,
		"{{SUMMARY}}", summary,
		"{{JOB_DESCRIPTION}}", jobDescription,
	)
}

func Question(resumeText, question string) string {
	return fill(questionTemplate,
		"{{RESUME_TEXT}}", resumeText,
		"{{QUESTION}}", question,
	)
}

func Comparison(summary1, summary2, jobDescription string) string {
	return fill(comparisonTemplate,
		"{{SUMMARY_1}}", summary1,
		"{{SUMMARY_2}}", summary2,
		"{{JOB_DESCRIPTION}}", jobDescription,
	)
}

// fill substitutes every placeholder in one pass, so placeholder-looking
// text inside a value is left alone.
func fill(template string, oldnew ...string) string {
	return strings.NewReplacer(oldnew...).Replace(template)
}
