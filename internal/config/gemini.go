package config

import (
	"os"
	"sync"
)

type GeminiConfig struct {
	APIKey string
	Model  string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

// LoadGeminiConfig reads GOOGLE_API_KEY, falling back to GEMINI_API_KEY.
func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		geminiConfig = &GeminiConfig{
			APIKey: apiKey,
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		}
	})
	return geminiConfig
}
