package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTTTL      = "24h"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultDatabaseDSN = "unidomus.db"
	defaultListenAddr  = ":8080"
	defaultGeocodeURL  = "https://nominatim.openstreetmap.org"
	defaultSMTPPort    = "587"
	defaultVerifyTTL   = "24h"
)

// Config holds everything the process needs at startup. Values come from the
// environment; godotenv is loaded by main before this runs.
type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseDSN string

	JWTSecret string
	JWTTTL    time.Duration

	VerificationTokenTTL time.Duration

	// AppURL is the public base URL used in activation links.
	AppURL string

	GeocodeBaseURL string

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseDSN = getEnv("DATABASE_URL", defaultDatabaseDSN)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.VerificationTokenTTL, err = parseDurationEnv("VERIFY_TOKEN_TTL", defaultVerifyTTL)
	if err != nil {
		return nil, err
	}

	cfg.AppURL = strings.TrimRight(getEnv("APP_URL", "http://localhost:8080"), "/")
	cfg.GeocodeBaseURL = getEnv("GEOCODE_BASE_URL", defaultGeocodeURL)

	cfg.SMTPHost = strings.TrimSpace(os.Getenv("SMTP_HOST"))
	cfg.SMTPFrom = getEnv("SMTP_FROM", "noreply@unidomus.it")
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPPort, err = strconv.Atoi(getEnv("SMTP_PORT", defaultSMTPPort))
	if err != nil {
		return nil, fmt.Errorf("config: invalid SMTP_PORT: %w", err)
	}

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("config: JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return d, nil
}
