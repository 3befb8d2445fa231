package config

import "os"

// Config holds application configuration
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	AppEnv      string
}

// New loads configuration from environment variables
func New() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		AppEnv:      getEnv("APP_ENV", "development"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
