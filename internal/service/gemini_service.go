package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/resume-ats-scanner/internal/config"
	"github.com/fadilmartias/resume-ats-scanner/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// generativeModels is the part of *genai.Models the service needs.
type generativeModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiService struct {
	models generativeModels
	model  string
	logger *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, log *zap.Logger) (*GeminiService, error) {
	if cfg == nil || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiService{
		models: client.Models,
		model:  cfg.Model,
		logger: logger.OrNop(log).With(zap.String("provider", ProviderGemini), zap.String("model", cfg.Model)),
	}, nil
}

func (s *GeminiService) Name() string { return ProviderGemini }

func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrCompletion)
	}

	s.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, promptPreviewLength)),
	)

	result, err := s.models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %w", ErrCompletion, err)
	}
	if err := validateGenerateResponse(result); err != nil {
		return "", fmt.Errorf("%w: invalid response: %w", ErrCompletion, err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned empty text", ErrCompletion)
	}

	s.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
	)
	return text, nil
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}
