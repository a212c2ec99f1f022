package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Port           string
	Env            string
	DatabaseDSN    string
	EphemeralDB    bool
	ConnectTimeout time.Duration
	JWTSecret      string
	JWTExpiry      time.Duration
}

// Load reads configuration from the environment. A missing JWT_SECRET is
// fatal: the service must not mint tokens with an empty or built-in secret.
func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/taskhub?parseTime=true"),
		EphemeralDB:    getEnv("EPHEMERAL_DB", "") == "true",
		ConnectTimeout: 5 * time.Second,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      24 * time.Hour,
	}

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
