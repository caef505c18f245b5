package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything read from the environment. Load it once in main
// and pass it down; nothing in here mutates after startup.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration

	// AllowDuplicateReviews lets a user review the same recipe more than
	// once. Off by default.
	AllowDuplicateReviews bool
}

func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "4000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", "21fg10kl"),
		TokenTTL:    24 * time.Hour,
	}

	if hours, err := strconv.Atoi(os.Getenv("TOKEN_TTL_HOURS")); err == nil && hours > 0 {
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}
	if v, err := strconv.ParseBool(os.Getenv("ALLOW_DUPLICATE_REVIEWS")); err == nil {
		cfg.AllowDuplicateReviews = v
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
