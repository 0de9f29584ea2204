package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fadilmartias/resume-ats-scanner/internal/config"
	"github.com/tidwall/gjson"
)

func newOpenRouterTestServer(t *testing.T, status int, body string, calls *atomic.Int32) *OpenRouterService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		if gjson.GetBytes(raw, "model").String() != "openai/gpt-4o-mini" {
			t.Errorf("unexpected model in body: %s", raw)
		}
		if gjson.GetBytes(raw, "messages.0.content").String() == "" {
			t.Errorf("expected prompt in body: %s", raw)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	s, err := NewOpenRouterService(&config.OpenRouterConfig{
		APIKey:  "test-key",
		Model:   "openai/gpt-4o-mini",
		BaseURL: srv.URL + "/",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestOpenRouterCompleteReturnsContent(t *testing.T) {
	var calls atomic.Int32
	s := newOpenRouterTestServer(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"Rating: 8/10"}}]}`, &calls)

	got, err := s.Complete(context.Background(), "rate this resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Rating: 8/10" {
		t.Fatalf("unexpected content: %q", got)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one call, got %d", calls.Load())
	}
}

func TestOpenRouterCompleteFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "quota", status: http.StatusTooManyRequests, body: `{"error":{"message":"quota exceeded"}}`, message: "quota exceeded"},
		{name: "server error without json", status: http.StatusBadGateway, body: `upstream down`, message: "upstream down"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, message: "no response from LLM"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			s := newOpenRouterTestServer(t, tc.status, tc.body, &calls)
			_, err := s.Complete(context.Background(), "prompt")
			if !errors.Is(err, ErrCompletion) {
				t.Fatalf("expected ErrCompletion, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("expected %q in error, got %v", tc.message, err)
			}
			if calls.Load() != 1 {
				t.Fatalf("expected no retries, got %d calls", calls.Load())
			}
		})
	}
}

func TestNewOpenRouterServiceRequiresKey(t *testing.T) {
	if _, err := NewOpenRouterService(&config.OpenRouterConfig{}, nil); err == nil {
		t.Fatalf("expected error without api key")
	}
}
