package config

func GetOllamaHost() string {
	return GetEnvOrDefault("OLLAMA_HOST", "http://127.0.0.1:11434")
}

// GetOllamaModel enables the Ollama generator when OPENAI_API_KEY is unset.
func GetOllamaModel() string {
	return GetEnvOrDefault("OLLAMA_MODEL", "")
}
