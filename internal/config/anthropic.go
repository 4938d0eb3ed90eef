package config

func GetAnthropicKey() string {
	return GetEnvOrDefault("ANTHROPIC_API_KEY", "")
}

func GetAnthropicModel() string {
	return GetEnvOrDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
}

// GetAnthropicBaseURL allows pointing the client at a proxy.
func GetAnthropicBaseURL() string {
	return GetEnvOrDefault("ANTHROPIC_BASE_URL", "")
}
