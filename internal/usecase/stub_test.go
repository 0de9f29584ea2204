package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fadilmartias/resume-ats-scanner/internal/extract"
)

// textExtractor treats the body as the extracted text. Bodies starting with
// "corrupt" fail like an unreadable PDF.
type textExtractor struct{}

func (textExtractor) Extract(_ context.Context, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(string(b), "corrupt") {
		return "", fmt.Errorf("%w: not a pdf", extract.ErrExtraction)
	}
	return string(b), nil
}

type stubCompleter struct {
	mu      sync.Mutex
	prompts []string
	respond func(prompt string, call int) (string, error)
}

func (s *stubCompleter) Name() string { return "stub" }

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	call := len(s.prompts)
	respond := s.respond
	s.mu.Unlock()

	if respond == nil {
		respond = defaultResponse
	}
	return respond(prompt, call)
}

func (s *stubCompleter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func (s *stubCompleter) prompt(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompts[i]
}

func defaultResponse(prompt string, call int) (string, error) {
	switch {
	case strings.HasPrefix(prompt, "You are a resume summarizer"):
		_, text, _ := strings.Cut(prompt, "Resume Text: 📝")
		return "summary of " + text, nil
	case strings.Contains(prompt, "rate it out of 10"):
		return "7/10", nil
	case strings.Contains(prompt, "constructive feedback"):
		return "add metrics", nil
	case strings.Contains(prompt, "resume comparison assistant"):
		return fmt.Sprintf("comparison #%d", call), nil
	default:
		return fmt.Sprintf("answer #%d", call), nil
	}
}
