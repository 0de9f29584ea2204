package config

import (
	"strings"
	"sync"
	"time"
)

// ScannerConfig holds the provider selection, extractor backend and
// session cache bounds.
type ScannerConfig struct {
	LLMProvider         string
	PDFExtractor        string
	QACacheSize         int
	ComparisonCacheSize int
	SessionTTL          time.Duration
	MaxSessions         int
}

var (
	scannerConfig *ScannerConfig
	scannerOnce   sync.Once
)

func LoadScannerConfig() *ScannerConfig {
	scannerOnce.Do(func() {
		scannerConfig = &ScannerConfig{
			LLMProvider:         strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
			PDFExtractor:        strings.ToLower(getEnv("PDF_EXTRACTOR", "fitz")),
			QACacheSize:         getEnvInt("QA_CACHE_SIZE", 256),
			ComparisonCacheSize: getEnvInt("COMPARISON_CACHE_SIZE", 64),
			SessionTTL:          getEnvDuration("SESSION_TTL", 2*time.Hour),
			MaxSessions:         getEnvInt("MAX_SESSIONS", 1000),
		}
	})
	return scannerConfig
}
