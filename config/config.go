package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    int
	ProjectID     string
	JWTSecret     string
	TokenTTL      time.Duration
	AllowedOrigin string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		ServerPort:    getEnvInt("SERVER_PORT", 8080),
		ProjectID:     getEnv("GOOGLE_CLOUD_PROJECT", ""),
		JWTSecret:     getEnv("JWT_SECRET", "default_secret"),
		TokenTTL:      time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 10)) * time.Minute,
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
