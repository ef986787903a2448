// Package config provides configuration parsing and validation for firesignal.
package config

import (
	"fmt"
	"os"
)

// Config holds all configuration parameters for the service.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	RedisAddr   string // optional; response caching is disabled when empty
}

// Load reads configuration from the environment.
func Load() *Config {
	cfg := &Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}

	return cfg
}

// Validate checks that all required configuration fields are set.
// Returns an error if validation fails, nil otherwise.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	return nil
}
