package config

import (
	"log"
	"os"
	"sync"
	"time"
)

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	MaxUploadMB     int
	LogJSON         bool
	LogDebug        bool
	RateLimitMax    int
	RateLimitWindow time.Duration
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		appConfig = &AppConfig{
			Name:            getEnv("APP_NAME", "Resume ATS Scanner"),
			Env:             env,
			Port:            getEnv("APP_PORT", ":3000"),
			MaxUploadMB:     getEnvInt("MAX_UPLOAD_MB", 5),
			LogJSON:         getEnvBool("LOG_JSON"),
			LogDebug:        getEnvBool("LOG_DEBUG"),
			RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 50),
			RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
