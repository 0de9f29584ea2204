package view

import (
	"strings"
	"testing"

	"github.com/fadilmartias/resume-ats-scanner/internal/dto"
	"github.com/fadilmartias/resume-ats-scanner/internal/model"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestMarkdown(t *testing.T) {
	r := newRenderer(t)
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "bold", in: "**8/10**", want: "<strong>8/10</strong>"},
		{name: "list", in: "- Go\n- SQL", want: "<li>Go</li>"},
		{name: "raw html is dropped", in: "<script>alert(1)</script>", want: "<!-- raw HTML omitted -->"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := string(r.Markdown(tc.in))
			if !strings.Contains(got, tc.want) {
				t.Fatalf("expected %q in %q", tc.want, got)
			}
		})
	}
}

func TestRenderEmptyPage(t *testing.T) {
	r := newRenderer(t)
	var sb strings.Builder
	if err := r.Render(&sb, Page{Title: "Resume ATS Scanner", MaxUploadMB: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"<title>Resume ATS Scanner</title>", `action="/resume"`, "max 5 MB", "Compare Resumes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
	if strings.Contains(out, "Ask a Question") {
		t.Fatalf("questions must be hidden without a resume")
	}
}

func TestRenderFullPage(t *testing.T) {
	r := newRenderer(t)
	page := Page{
		Title: "Resume ATS Scanner",
		Error: "upload a resume first",
		View: dto.ScanView{
			Resume: &dto.ResumeView{
				FileName:          "jane.pdf",
				ReadingMinutes:    2.5,
				Preview:           "Jane <Doe>",
				Truncated:         true,
				TruncationWarning: "The resume is too long.",
			},
			JobDescription:    &model.JobDescription{CompanyName: "Acme"},
			Review:            &dto.ReviewView{Summary: "**strong**", Rating: "8/10", Feedback: "more metrics"},
			LastAnswer:        &dto.QAView{Question: "name?", Answer: "Jane"},
			PreviousQuestions: []dto.QAView{{Question: "name?", Answer: "Jane"}},
			Comparison: dto.ComparisonView{
				Files:         []string{"a.pdf", "b.pdf"},
				DefaultFirst:  "a.pdf",
				DefaultSecond: "b.pdf",
				Last:          &model.Comparison{First: "a.pdf", Second: "b.pdf", Analysis: "A fits better"},
			},
		},
	}

	var sb strings.Builder
	if err := r.Render(&sb, page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	for _, want := range []string{
		`role="alert">upload a resume first`,
		"2.5 minutes",
		"The resume is too long.",
		"Jane &lt;Doe&gt;",
		`value="Acme"`,
		"<strong>strong</strong>",
		"Question: name?",
		`<option value="b.pdf" selected>`,
		"Comparison of a.pdf and b.pdf",
		"A fits better",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in page:\n%s", want, out)
		}
	}
}
