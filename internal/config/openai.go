package config

import (
	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

func GetOpenAIKey() string {
	value := GetEnvOrDefault("OPENAI_API_KEY", "")
	if value == "" {
		logger.Info(logger.CONFIG, "OPENAI_API_KEY not set - using the built-in response generator")
	}
	return value
}

func GetOpenAIModel() string {
	return GetEnvOrDefault("OPENAI_MODEL", openai.GPT4oMini)
}

// GetOpenAIBaseURL allows pointing the client at a compatible gateway.
func GetOpenAIBaseURL() string {
	return GetEnvOrDefault("OPENAI_BASE_URL", "")
}
