// Package config loads server settings from the environment.
// Values in a .env file are used for variables that are not already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port     int
	DBPath   string
	LogLevel string

	JWTSecret string
	TokenTTL  time.Duration
}

const (
	defaultPort     = 8080
	defaultDBPath   = "./data/hostezee.db"
	defaultTokenTTL = 24 * time.Hour
)

// Load reads the given .env files (".env" when none are named) and then the
// environment. Missing files are ignored. JWT_SECRET is required.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		DBPath:    getEnv("DB_PATH", defaultDBPath),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  defaultTokenTTL,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q", v)
		}
		cfg.TokenTTL = ttl
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}

// Addr is the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
