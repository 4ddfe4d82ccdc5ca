// Package config loads the service configuration from a YAML file with
// environment-variable overrides, falling back to pure-env loading when no
// file exists (container deployments).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration settings.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Gateway       GatewayConfig       `yaml:"gateway"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// GatewayConfig paces and bounds requests to the Discord gateway process.
type GatewayConfig struct {
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	RequestBurst      int           `yaml:"request_burst"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	// MetricsAddress is the listen address of the ops HTTP server
	// (/healthz, /metrics); empty disables it.
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	TracingEnabled bool   `yaml:"tracing_enabled"`
}

// LoadConfig loads the configuration from a YAML file, overriding with
// environment variables where present.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		cfg.Observability.TracingEnabled = v == "true"
	}
	if v := os.Getenv("GATEWAY_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Gateway.RequestTimeout = d
		}
	}
	if v := os.Getenv("GATEWAY_REQUESTS_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Gateway.RequestsPerSecond = f
		}
	}
	if v := os.Getenv("GATEWAY_REQUEST_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Gateway.RequestBurst = n
		}
	}
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	cfg.NATS.URL = os.Getenv("NATS_URL")
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}
