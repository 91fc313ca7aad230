package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/thruflo/loanops/internal/logging"
	"gopkg.in/yaml.v3"
)

// Dir is the per-project configuration directory.
const Dir = ".loanops"

// Default values for Config.
const (
	DefaultServerURL = "http://localhost:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultLogLevel  = "warn"
)

// Environment variables that override the config file.
const (
	EnvServerURL = "LOANOPS_SERVER_URL"
	EnvTimeout   = "LOANOPS_TIMEOUT"
	EnvLogLevel  = "LOANOPS_LOG_LEVEL"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:     DefaultServerURL,
			Timeout: Duration(DefaultTimeout),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// LoadConfig reads .loanops/config.yaml from the given base path, then
// applies overrides from .loanops/.env and the process environment.
// A missing file yields the defaults. The process environment wins over
// .env, which wins over the YAML file.
func LoadConfig(basePath string) (*Config, error) {
	cfg := DefaultConfig()

	configPath := filepath.Join(basePath, Dir, "config.yaml")
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	env, err := LoadEnvFile(basePath)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{EnvServerURL, EnvTimeout, EnvLogLevel} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	if err := applyEnv(&cfg, env); err != nil {
		return nil, err
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEnvFile parses .loanops/.env into a map. A missing file yields an
// empty map.
func LoadEnvFile(basePath string) (map[string]string, error) {
	envPath := filepath.Join(basePath, Dir, ".env")

	env, err := godotenv.Read(envPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return env, nil
}

// applyEnv copies recognised overrides into cfg.
func applyEnv(cfg *Config, env map[string]string) error {
	if v := env[EnvServerURL]; v != "" {
		cfg.Server.URL = v
	}
	if v := env[EnvTimeout]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ValidationError{Field: EnvTimeout, Message: fmt.Sprintf("invalid duration %q", v)}
		}
		cfg.Server.Timeout = Duration(d)
	}
	if v := env[EnvLogLevel]; v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.Server.URL == "" {
		return ValidationError{Field: "server.url", Message: "required field is empty"}
	}
	u, err := url.Parse(cfg.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ValidationError{Field: "server.url", Message: "must be an absolute http(s) URL"}
	}
	if cfg.Server.Timeout <= 0 {
		return ValidationError{Field: "server.timeout", Message: "must be positive"}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: "must be one of debug, info, warn, error"}
	}
	return nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
