package prompt

import (
	"strings"
	"testing"
)

func TestSummaryAppendsResumeText(t *testing.T) {
	got := Summary("Jane Doe, Go engineer")
	if !strings.HasPrefix(got, "You are a resume summarizer.") {
		t.Fatalf("unexpected prompt prefix: %q", got)
	}
	if !strings.HasSuffix(got, "Resume Text: 📝Jane Doe, Go engineer") {
		t.Fatalf("expected resume text right after the marker, got %q", got)
	}
	if !strings.Contains(got, "within 250 words") {
		t.Fatalf("expected word limit in summary prompt")
	}
}

func TestTemplatesFillEveryPlaceholder(t *testing.T) {
	cases := []struct {
		name   string
		prompt string
		want   []string
	}{
		{
			name:   "rating",
			prompt: Rating("strong backend summary", "Senior Go role"),
			want:   []string{"rate it out of 10", "Summary: strong backend summary", "Job Description: Senior Go role", "Rating: 📝"},
		},
		{
			name:   "feedback",
			prompt: Feedback("strong backend summary", ""),
			want:   []string{"constructive feedback", "Summary: strong backend summary", "Job Description: \n", "Feedback: 📝"},
		},
		{
			name:   "question",
			prompt: Question("resume body", "Which languages?"),
			want:   []string{"Resume Text: resume body", "Question: Which languages?", "Answer: 📝"},
		},
		{
			name:   "comparison",
			prompt: Comparison("first summary", "second summary", "Data engineer"),
			want:   []string{"Resume 1 Summary: first summary", "Resume 2 Summary: second summary", "Job Description: Data engineer", "Comparison Analysis: 📝"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if strings.Contains(tc.prompt, "{{") {
				t.Fatalf("unfilled placeholder in %s prompt: %q", tc.name, tc.prompt)
			}
			for _, w := range tc.want {
				if !strings.Contains(tc.prompt, w) {
					t.Fatalf("expected %q in %s prompt: %q", w, tc.name, tc.prompt)
				}
			}
		})
	}
}

func TestValuesAreNotReinterpolated(t *testing.T) {
	got := Rating("{{JOB_DESCRIPTION}}", "backend")
	if !strings.Contains(got, "Summary: {{JOB_DESCRIPTION}}") {
		t.Fatalf("expected placeholder-looking value to stay verbatim, got %q", got)
	}
}
