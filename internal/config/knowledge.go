package config

// GetKBWatchDir names a directory whose .txt files are ingested as they appear.
func GetKBWatchDir() string {
	return GetEnvOrDefault("KB_WATCH_DIR", "")
}

func GetRetrievalTopK() int {
	k := parseEnvInt("RETRIEVAL_TOP_K", 2)
	if k < 1 {
		return 2
	}
	return k
}

// GetKBBoltPath names a bbolt file that persists the knowledge base when Redis
// is not configured.
func GetKBBoltPath() string {
	return GetEnvOrDefault("KB_BOLT_PATH", "")
}

// GetKBSeedFile names a YAML file replacing the built-in seed documents.
func GetKBSeedFile() string {
	return GetEnvOrDefault("KB_SEED_FILE", "")
}
