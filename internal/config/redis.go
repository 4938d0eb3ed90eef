package config

import (
	"github.com/deepgram/asklyn/pkg/logger"
)

func GetRedisURL() string {
	logger.Debug(logger.CONFIG, "Attempting to retrieve Redis URL from environment")
	value := GetEnvOrDefault("REDIS_URL", "")
	if value == "" {
		logger.Info(logger.CONFIG, "REDIS_URL not set - knowledge base falls back to bolt or memory")
	} else {
		logger.Info(logger.CONFIG, "Redis URL successfully loaded")
	}
	return value
}

func GetRedisPassword() string {
	return GetEnvOrDefault("REDIS_PASSWORD", "")
}

// GetRedisKey is the list key holding knowledge-base documents.
func GetRedisKey() string {
	return GetEnvOrDefault("REDIS_KB_KEY", "asklyn:knowledge")
}
