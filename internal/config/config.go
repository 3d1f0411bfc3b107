// Package config loads service configuration from environment variables.
package config

import (
	"os"
	"time"
)

// Config holds everything the server needs to start.
type Config struct {
	ServerPort    string
	DBPath        string
	UploadDir     string
	MaxUploadSize int64
	JWTSecret     string
	TokenDuration time.Duration
	OCRAPIKey     string
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from the environment, applying defaults suitable
// for local development.
func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "./data/splitbill.db"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: 16 * 1024 * 1024, // 16 MB
		JWTSecret:     getEnv("JWT_SECRET", "splitbill-dev-secret"),
		TokenDuration: 24 * time.Hour,
		OCRAPIKey:     getEnv("OCR_API_KEY", "helloworld"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
