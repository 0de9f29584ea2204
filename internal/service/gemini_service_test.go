package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genai"
)

type fakeModels struct {
	resp  *genai.GenerateContentResponse
	err   error
	calls int
	model string
	text  string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.text = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestGeminiCompleteReturnsText(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	models := &fakeModels{resp: textResponse("  Solid backend profile.  ")}
	s := &GeminiService{models: models, model: "gemini-2.5-flash", logger: zap.New(core)}

	got, err := s.Complete(context.Background(), "summarize this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Solid backend profile." {
		t.Fatalf("unexpected text: %q", got)
	}
	if models.model != "gemini-2.5-flash" || models.text != "summarize this" {
		t.Fatalf("unexpected request: model=%q text=%q", models.model, models.text)
	}
	if logs.FilterMessage("gemini generate content request").Len() != 1 {
		t.Fatalf("expected request to be logged")
	}
}

func TestGeminiCompleteDoesNotRetry(t *testing.T) {
	models := &fakeModels{err: genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}}
	s := &GeminiService{models: models, model: "m", logger: zap.NewNop()}

	_, err := s.Complete(context.Background(), "prompt")
	if !errors.Is(err, ErrCompletion) {
		t.Fatalf("expected ErrCompletion, got %v", err)
	}
	if models.calls != 1 {
		t.Fatalf("expected exactly one call, got %d", models.calls)
	}
}

func TestGeminiCompleteRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		prompt string
		resp   *genai.GenerateContentResponse
		calls  int
	}{
		{name: "empty prompt", prompt: "   ", calls: 0},
		{name: "nil response", prompt: "p", resp: nil, calls: 1},
		{name: "no candidates", prompt: "p", resp: &genai.GenerateContentResponse{}, calls: 1},
		{name: "blank text", prompt: "p", resp: textResponse("   "), calls: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			models := &fakeModels{resp: tc.resp}
			s := &GeminiService{models: models, model: "m", logger: zap.NewNop()}
			_, err := s.Complete(context.Background(), tc.prompt)
			if !errors.Is(err, ErrCompletion) {
				t.Fatalf("expected ErrCompletion, got %v", err)
			}
			if models.calls != tc.calls {
				t.Fatalf("expected %d calls, got %d", tc.calls, models.calls)
			}
		})
	}
}

func TestNewGeminiServiceRequiresKey(t *testing.T) {
	_, err := NewGeminiService(context.Background(), nil, nil)
	if err == nil || !strings.Contains(err.Error(), "GOOGLE_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestNewCompleterRejectsUnknownProvider(t *testing.T) {
	if _, err := NewCompleter(context.Background(), "llama-local", nil); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
