package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/resume-ats-scanner/internal/config"
	"github.com/fadilmartias/resume-ats-scanner/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenRouterService talks to an OpenAI-compatible chat completions API.
type OpenRouterService struct {
	client *resty.Client
	model  string
	logger *zap.Logger
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, log *zap.Logger) (*OpenRouterService, error) {
	if cfg == nil || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &OpenRouterService{
		client: client,
		model:  cfg.Model,
		logger: logger.OrNop(log).With(zap.String("provider", ProviderOpenRouter), zap.String("model", cfg.Model)),
	}, nil
}

func (s *OpenRouterService) Name() string { return ProviderOpenRouter }

func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrCompletion)
	}

	s.logger.Debug("openrouter chat completion request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, promptPreviewLength)),
	)

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: openrouter request: %w", ErrCompletion, err)
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = logger.TruncateForLog(body, promptPreviewLength)
		}
		return "", fmt.Errorf("%w: openrouter status %d: %s", ErrCompletion, resp.StatusCode(), msg)
	}

	text := strings.TrimSpace(gjson.Get(body, "choices.0.message.content").String())
	if text == "" {
		return "", fmt.Errorf("%w: no response from LLM", ErrCompletion)
	}

	s.logger.Debug("openrouter chat completion response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
	)
	return text, nil
}
