package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Google Generative Language API
	GoogleAIAPIKey  string
	GoogleAIAPIURL  string
	GenerateTimeout time.Duration

	// Rate limiting for the generation endpoint
	RateLimitCount  int
	RateLimitWindow time.Duration

	// Logging
	LogLevel string
}

// LoadConfig reads configuration from the environment, after loading an
// optional .env file. Missing values fall back to development defaults;
// only the secrets have no default.
func LoadConfig() (*Config, error) {
	// A missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getenv("SERVER_PORT", "8080"),
		ServerHost: getenv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "nutriflow"),
		DBSSLMode:  getenv("DB_SSL_MODE", "disable"),

		RedisHost:     getenv("REDIS_HOST", "localhost"),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoogleAIAPIKey:  os.Getenv("GOOGLE_AI_API_KEY"),
		GoogleAIAPIURL:  getenv("GOOGLE_AI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent"),
		GenerateTimeout: getdur("GENERATE_TIMEOUT", 60*time.Second),

		RateLimitCount:  getint("RATE_LIMIT_COUNT", 10),
		RateLimitWindow: getdur("RATE_LIMIT_WINDOW", time.Minute),

		LogLevel: getenv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getdur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
