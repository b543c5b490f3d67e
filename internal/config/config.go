// Package config loads the optional user configuration file. Every field
// has a default; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable settings.
type Config struct {
	// DBPath overrides the attempt database location.
	DBPath string `yaml:"db_path"`

	// ContentDir points at a lesson content directory to use instead of
	// the embedded content. Mainly for lesson authoring.
	ContentDir string `yaml:"content_dir"`

	// FeedbackDelayMs is how long answer feedback stays on screen before
	// auto-advancing to the next question.
	FeedbackDelayMs int `yaml:"feedback_delay_ms"`

	// DialogueDelayMs is the pause between dialogue turns.
	DialogueDelayMs int `yaml:"dialogue_delay_ms"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FeedbackDelayMs: 1500,
		DialogueDelayMs: 800,
	}
}

// FeedbackDelay returns the feedback auto-advance delay as a duration.
func (c Config) FeedbackDelay() time.Duration {
	return time.Duration(c.FeedbackDelayMs) * time.Millisecond
}

// DialogueDelay returns the dialogue turn pause as a duration.
func (c Config) DialogueDelay() time.Duration {
	return time.Duration(c.DialogueDelayMs) * time.Millisecond
}

// Load reads the config file at DefaultPath, falling back to defaults when
// the file does not exist. Fields absent from the file keep their defaults.
func Load() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads one specific config file, layered over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.FeedbackDelayMs < 0 {
		cfg.FeedbackDelayMs = 0
	}
	if cfg.DialogueDelayMs < 0 {
		cfg.DialogueDelayMs = 0
	}
	return cfg, nil
}

// DefaultPath resolves the config file path in priority order:
// 1. PMQUEST_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/pmquest/config.yaml
// 3. ~/.config/pmquest/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("PMQUEST_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pmquest", "config.yaml"), nil
}
