package config

import (
	"time"

	"github.com/deepgram/asklyn/pkg/logger"
)

const (
	defaultPort           = "5000"
	defaultMaxUploadBytes = 10 << 20
)

func GetPort() string {
	return GetEnvOrDefault("PORT", defaultPort)
}

// GetMaxUploadBytes bounds the size of a single uploaded document.
func GetMaxUploadBytes() int64 {
	n := parseEnvInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if n <= 0 {
		logger.Warn(logger.CONFIG, "MAX_UPLOAD_BYTES must be positive, using default: %d", defaultMaxUploadBytes)
		return defaultMaxUploadBytes
	}
	return int64(n)
}

func GetShutdownTimeout() time.Duration {
	return parseEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
}
