package app

import "os"

type Config struct {
	BaseURL      string // Base URL of the PropertyPlus backend
	Env          string // Environment (dev, staging, prod) (default: dev)
	LogLevel     string // Log level (debug, info, warn, error) (default: info)
	LogFormat    string // Log format (json, text) (default: text)
	UseStub      bool   // Run against the in-process backend stub
	StubDatabase string // SQLite DSN for the stub store (default: :memory:)
}

func LoadConfig() Config {
	return Config{
		BaseURL:      getEnvOrDefault("PROPERTYPLUS_BASE_URL", "http://localhost:5000"),
		Env:          getEnvOrDefault("ENV", "dev"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "text"),
		UseStub:      os.Getenv("PROPCTL_STUB") == "1",
		StubDatabase: getEnvOrDefault("PROPCTL_STUB_DB", ":memory:"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
