package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all service settings. Values come from an optional YAML file
// named by CONFIG_FILE, then environment variables, then defaults.
type Config struct {
	DataPath        string        `yaml:"data_path"`
	HTTPAddr        string        `yaml:"http_addr"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	DefaultYear     int           `yaml:"default_year"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// RateLimit is the sustained requests per second allowed per client IP.
	RateLimit float64 `yaml:"rate_limit"`
}

func defaults() Config {
	return Config{
		DataPath:        "data/hasil_output.csv",
		HTTPAddr:        ":1651",
		LogLevel:        "info",
		LogFormat:       "json",
		DefaultYear:     2021,
		ShutdownTimeout: 10 * time.Second,
		RateLimit:       20,
	}
}

// Load reads configuration, applying defaults where unset.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read CONFIG_FILE: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse CONFIG_FILE: %w", err)
		}
	}

	cfg.DataPath = envOrDefault("DATA_PATH", cfg.DataPath)
	cfg.HTTPAddr = envOrDefault("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOrDefault("LOG_FORMAT", cfg.LogFormat)

	if s := os.Getenv("DEFAULT_YEAR"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.New("invalid DEFAULT_YEAR")
		}
		cfg.DefaultYear = year
	}
	if s := os.Getenv("SHUTDOWN_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
		}
		cfg.ShutdownTimeout = d
	}
	if s := os.Getenv("RATE_LIMIT"); s != "" {
		r, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.New("invalid RATE_LIMIT")
		}
		cfg.RateLimit = r
	}

	if cfg.DataPath == "" {
		return nil, errors.New("DATA_PATH is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT: must be positive")
	}
	if cfg.RateLimit <= 0 {
		return nil, errors.New("invalid RATE_LIMIT: must be positive")
	}
	if cfg.DefaultYear < 1900 || cfg.DefaultYear > 9999 {
		return nil, errors.New("invalid DEFAULT_YEAR: out of range")
	}

	return &cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
