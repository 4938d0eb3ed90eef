package config

import (
	"time"

	"github.com/deepgram/asklyn/pkg/logger"
)

type RateLimitConfig struct {
	Enabled bool
	MaxHits int
	Window  time.Duration
}

func GetRateLimitConfig(key string) RateLimitConfig {
	enabled := GetEnvOrDefault("RATELIMIT_ENABLED", "false") == "true"

	configs := map[string]RateLimitConfig{
		"chat": {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_CHAT", 60), // 60 messages per minute
			Window:  time.Minute,
		},
		"upload": {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_UPLOAD", 20), // 20 files per minute
			Window:  time.Minute,
		},
	}

	if config, exists := configs[key]; exists {
		return config
	}

	logger.Warn(logger.CONFIG, "No rate limit config found for key: %s", key)
	return RateLimitConfig{Enabled: false}
}
