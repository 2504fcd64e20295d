package main

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration. Precedence: defaults, then the YAML
// file, then environment variables.
type Config struct {
	Port           string `yaml:"port" env:"PORT"`
	NATSURL        string `yaml:"nats_url" env:"NATS_URL"`
	JWTSecret      string `yaml:"jwt_secret" env:"JWT_SECRET"`
	TurnTimeoutSec int    `yaml:"turn_timeout_sec" env:"TURN_TIMEOUT_SEC"`
	PrettyLogs     bool   `yaml:"pretty_logs" env:"PRETTY_LOGS"`
}

func defaultConfig() Config {
	return Config{
		Port:           "8080",
		NATSURL:        "nats://localhost:4222",
		TurnTimeoutSec: 20,
	}
}

// TurnTimeout returns the per-turn inactivity window.
func (c Config) TurnTimeout() time.Duration {
	return time.Duration(c.TurnTimeoutSec) * time.Second
}

func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if config.TurnTimeoutSec <= 0 {
		return nil, fmt.Errorf("turn_timeout_sec must be positive")
	}

	return &config, nil
}
