package config

import (
	"os"
	"strconv"
)

func loadProductionConfig(cfg *Config) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err == nil {
		cfg.ServerPort = port
	}

	cfg.DatabaseFilePath = envOrDefault("DATABASE_FILE_PATH", "/data/chaptermill.sqlite")
	cfg.MediaRoot = envOrDefault("MEDIA_ROOT", "/data/media")
	cfg.ServerHost = "0.0.0.0"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
