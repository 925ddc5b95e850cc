package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Auth modes selectable via AUTH_MODE. A deployment runs exactly one;
// the verifiers are never mixed.
const (
	AuthModeSession = "session"
	AuthModeToken   = "token"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	DatabasePath    string
	AuthMode        string
	JWTSecret       string
	SessionTTL      time.Duration
	TokenTTL        time.Duration
	SessionReapCron string
	RawgAPIKey      string
	RawgBaseURL     string
	AllowedOrigins  []string
	Production      bool
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	mode := getEnv("AUTH_MODE", AuthModeSession)
	if mode != AuthModeSession && mode != AuthModeToken {
		return nil, fmt.Errorf("invalid AUTH_MODE %q: must be %q or %q", mode, AuthModeSession, AuthModeToken)
	}

	secret := os.Getenv("JWT_SECRET")
	if mode == AuthModeToken && secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when AUTH_MODE=%s", AuthModeToken)
	}

	sessionHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "168"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %w", err)
	}
	tokenMinutes, err := strconv.Atoi(getEnv("TOKEN_TTL_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES: %w", err)
	}

	return &Config{
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "./gamescape.db"),
		AuthMode:        mode,
		JWTSecret:       secret,
		SessionTTL:      time.Duration(sessionHours) * time.Hour,
		TokenTTL:        time.Duration(tokenMinutes) * time.Minute,
		SessionReapCron: getEnv("SESSION_REAP_CRON", "*/10 * * * *"),
		RawgAPIKey:      os.Getenv("RAWG_API_KEY"),
		RawgBaseURL:     getEnv("RAWG_BASE_URL", "https://api.rawg.io/api"),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		Production:      os.Getenv("APP_ENV") == "production",
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
