package config

import "os"

func loadTestConfig(cfg *Config) {
	cfg.DatabaseFilePath = "file::memory:?cache=shared"
	cfg.MediaRoot = os.TempDir()
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
}
