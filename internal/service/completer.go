package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-ats-scanner/internal/config"
	"go.uber.org/zap"
)

// ErrCompletion wraps every failure of an outbound model call.
var ErrCompletion = errors.New("model completion failed")

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"

	promptPreviewLength = 200
)

// Completer sends a single prompt to a hosted model and returns its text.
// Implementations make exactly one outbound call and never retry.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NewCompleter builds the completer for the configured provider.
func NewCompleter(ctx context.Context, provider string, logger *zap.Logger) (Completer, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderGemini:
		return NewGeminiService(ctx, config.LoadGeminiConfig(), logger)
	case ProviderOpenRouter:
		return NewOpenRouterService(config.LoadOpenRouterConfig(), logger)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
