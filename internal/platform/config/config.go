package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/envutil"
)

const DefaultBaseURL = "https://brainink-backend.onrender.com"

type Config struct {
	BaseURL string `yaml:"base_url"`

	// AccessToken is the bearer token for the signed-in student. Requests
	// fail fast client-side when it is empty or expired.
	AccessToken string `yaml:"access_token"`

	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxRetries     int `yaml:"max_retries"`
	RetryBaseMS    int `yaml:"retry_base_ms"`

	LogMode string `yaml:"log_mode"`
}

// Load reads an optional YAML config file and applies BRAININK_* env
// overrides on top, then fills defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	var cfg Config

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// FromEnv builds a Config from env vars alone.
func FromEnv() Config {
	var cfg Config
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyEnv() {
	c.BaseURL = envutil.String("BRAININK_API_BASE_URL", c.BaseURL)
	c.AccessToken = envutil.String("BRAININK_ACCESS_TOKEN", c.AccessToken)
	c.TimeoutSeconds = envutil.Int("BRAININK_TIMEOUT_SECONDS", c.TimeoutSeconds)
	c.MaxRetries = envutil.Int("BRAININK_MAX_RETRIES", c.MaxRetries)
	c.RetryBaseMS = envutil.Int("BRAININK_RETRY_BASE_MS", c.RetryBaseMS)
	c.LogMode = envutil.String("LOG_MODE", c.LogMode)
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 60
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryBaseMS <= 0 {
		c.RetryBaseMS = 1000
	}
	if strings.TrimSpace(c.LogMode) == "" {
		c.LogMode = "development"
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseMS) * time.Millisecond
}
