package config

import (
	"os"
	"strconv"
	"time"

	"github.com/deepgram/asklyn/pkg/logger"
)

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseEnvInt(key string, defaultValue int) int {
	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		logger.Warn(logger.CONFIG, "Invalid value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return parsed
}

func parseEnvDuration(key string, defaultValue time.Duration) time.Duration {
	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(val)
	if err != nil {
		logger.Warn(logger.CONFIG, "Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return parsed
}
