// Package config loads the engine configuration from YAML with environment
// overrides for secrets and endpoints.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all fitcoach configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Completion service
	LLM LLMConfig `yaml:"llm"`

	// Remote record store (calendar, diary, workouts, meal plans)
	Store StoreConfig `yaml:"store"`

	// Dispatch strategy
	Engine EngineConfig `yaml:"engine"`

	// User profile defaults for single-user CLI sessions
	Profile ProfileConfig `yaml:"profile"`

	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the completion service client.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// StoreConfig configures the record store client.
type StoreConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

// EngineConfig tunes query dispatch.
type EngineConfig struct {
	// ToolFirst tries a direct model-picked tool call before classification.
	ToolFirst bool `yaml:"tool_first"`
}

// ProfileConfig seeds the session profile.
type ProfileConfig struct {
	Name          string  `yaml:"name"`
	Age           int     `yaml:"age"`
	Gender        string  `yaml:"gender"`
	WeightKg      float64 `yaml:"weight_kg"`
	HeightCm      float64 `yaml:"height_cm"`
	ActivityLevel string  `yaml:"activity_level"` // sedentary, light, moderate, active
	Goal          string  `yaml:"goal"`           // lose, maintain, gain
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "fitcoach",
		Version: "1.0.0",

		LLM: LLMConfig{
			Model:   "gpt-4o-mini",
			BaseURL: "https://api.openai.com/v1",
			Timeout: "60s",
		},

		Store: StoreConfig{
			BaseURL: "http://localhost:8090",
			Timeout: "10s",
		},

		Engine: EngineConfig{
			ToolFirst: true,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an
// error; defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over file values for secrets
// and endpoints.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("FITCOACH_API_KEY"); key != "" {
		c.LLM.APIKey = key
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
	}
	if url := os.Getenv("FITCOACH_LLM_URL"); url != "" {
		c.LLM.BaseURL = url
	}
	if url := os.Getenv("FITCOACH_STORE_URL"); url != "" {
		c.Store.BaseURL = url
	}
	if key := os.Getenv("FITCOACH_STORE_KEY"); key != "" {
		c.Store.APIKey = key
	}
	if level := os.Getenv("FITCOACH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// LLMTimeout parses the LLM timeout, falling back to a minute.
func (c *Config) LLMTimeout() time.Duration {
	return parseTimeout(c.LLM.Timeout, time.Minute)
}

// StoreTimeout parses the store timeout, falling back to ten seconds.
func (c *Config) StoreTimeout() time.Duration {
	return parseTimeout(c.Store.Timeout, 10*time.Second)
}

func parseTimeout(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
