package env

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config process configuration, built once at startup
type Config struct {
	Port              string
	GeminiAPIKey      string
	GeminiModel       string
	GeminiURL         string
	AITimeout         time.Duration
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	CORSAllowedOrigin string
	LogLevel          zerolog.Level
	OTLPEndpoint      string
	Environment       string
}

// LoadEnv load env variables from .env file
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}
}

// GetEnv return a value of an env variable
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Load reads Config from the process environment
func Load() (Config, error) {
	cfg := Config{
		Port:              GetEnv("PORT", "5000"),
		GeminiAPIKey:      GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:       GetEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiURL:         GetEnv("GEMINI_URL", "https://generativelanguage.googleapis.com/v1beta"),
		CORSAllowedOrigin: GetEnv("CORS_ALLOWED_ORIGIN", "*"),
		OTLPEndpoint:      GetEnv("OTLP_ENDPOINT", ""),
		Environment:       GetEnv("ENVIRONMENT", "development"),
	}

	var err error
	if cfg.AITimeout, err = parseDuration("AI_TIMEOUT", "0s"); err != nil {
		return Config{}, err
	}
	if cfg.ReadHeaderTimeout, err = parseDuration("READ_HEADER_TIMEOUT", "5s"); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}

	level, err := zerolog.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("can't parse LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is empty")
	}
	if cfg.AITimeout < 0 {
		return Config{}, fmt.Errorf("AI_TIMEOUT must not be negative")
	}

	return cfg, nil
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(GetEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("can't parse %s: %w", key, err)
	}
	return d, nil
}
