package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that reads and writes as a Go duration string
// ("30s", "1m30s") in YAML.
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML emits the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig locates the loan orchestrator.
type ServerConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout"`
}

// ChatConfig controls the conversation.
type ChatConfig struct {
	// Greeting is the opening bot message. Set to "" in YAML to start with
	// an empty transcript.
	Greeting *string `yaml:"greeting,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
	// File receives logs while the TUI owns the terminal. Empty means stderr
	// in line mode and discard in TUI mode.
	File string `yaml:"file,omitempty"`
}

// Config represents the .loanops/config.yaml file.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Chat   ChatConfig   `yaml:"chat"`
	Log    LogConfig    `yaml:"log"`
}

// GreetingText returns the configured greeting, or def when none is set.
func (c *Config) GreetingText(def string) string {
	if c.Chat.Greeting == nil {
		return def
	}
	return *c.Chat.Greeting
}
