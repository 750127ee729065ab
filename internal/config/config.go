package config

import (
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr      = ":8080"
	defaultDSN       = "wellness.db"
	defaultJWTSecret = "change-me-jwt-secret"
	defaultJWTTTL    = "24h"
)

type Config struct {
	AppEnv      string
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
}

// Load reads configuration from the environment, applying development
// defaults. Insecure defaults are rejected outside of dev.
func Load() *Config {
	cfg := &Config{
		AppEnv:      envOr("APP_ENV", "dev"),
		Addr:        envOr("ADDR", defaultAddr),
		DatabaseURL: envOr("DATABASE_URL", defaultDSN),
		JWTSecret:   envOr("JWT_SECRET", defaultJWTSecret),
	}

	ttlStr := envOr("JWT_TTL", defaultJWTTTL)
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("invalid JWT_TTL %q, using %s", ttlStr, defaultJWTTTL)
		ttl, _ = time.ParseDuration(defaultJWTTTL)
	}
	cfg.JWTTTL = ttl

	if cfg.AppEnv != "dev" && cfg.JWTSecret == defaultJWTSecret {
		log.Fatal("JWT_SECRET must be set outside dev")
	}
	if cfg.AppEnv == "dev" && cfg.JWTSecret == defaultJWTSecret {
		log.Println("warning: using default JWT secret (dev only)")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
