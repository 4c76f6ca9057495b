package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	Timeout       time.Duration `yaml:"timeout"`
	Temperature   float64       `yaml:"temperature"`
	MaxTokens     int           `yaml:"max_tokens"`
	RateLimit     float64       `yaml:"rate_limit"`
	RetryAttempts int           `yaml:"retry_attempts"`
	CacheSize     int           `yaml:"cache_size"`
	ScoreWithLLM  bool          `yaml:"score_with_llm"`
	LogLevel      string        `yaml:"log_level"`

	// envAPIKey comes from PROMPTR_API_KEY and is never saved
	envAPIKey string
}

func DefaultConfig() *Config {
	return &Config{
		Provider:      "ollama",
		Model:         "llama3.1:8b",
		Timeout:       60 * time.Second,
		Temperature:   0.7,
		MaxTokens:     2048,
		RateLimit:     2,
		RetryAttempts: 2,
		CacheSize:     256,
		LogLevel:      "info",
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "promptr"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFrom reads a config file on top of the defaults and applies
// environment overrides. A missing file returns nil with no error so
// callers can run the setup flow.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// envKeys maps provider IDs to their conventional API key variables
var envKeys = map[string]string{
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"groq":       "GROQ_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
	"gemini":     "GEMINI_API_KEY",
}

// ApplyEnv overlays the PROMPTR_* variables. An API key from the
// environment is held apart from APIKey so Save never writes it out.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PROMPTR_PROVIDER"); v != "" {
		c.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("PROMPTR_MODEL"); v != "" {
		c.Model = v
	}
	c.envAPIKey = os.Getenv("PROMPTR_API_KEY")
}

// Key returns the API key to use: PROMPTR_API_KEY, then the saved key,
// then the provider's own variable such as OPENAI_API_KEY.
func (c *Config) Key() string {
	if c.envAPIKey != "" {
		return c.envAPIKey
	}
	if c.APIKey != "" {
		return c.APIKey
	}
	if name, ok := envKeys[c.Provider]; ok {
		return os.Getenv(name)
	}
	return ""
}

// Validate checks that the config can build a provider
func (c *Config) Validate() error {
	info := GetProvider(c.Provider)
	if info == nil {
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Provider == "custom" && c.BaseURL == "" {
		return errors.New("custom provider requires base_url")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0,2]", c.Temperature)
	}
	if c.MaxTokens < 0 || c.RetryAttempts < 0 || c.CacheSize < 0 || c.RateLimit < 0 {
		return errors.New("max_tokens, retry_attempts, cache_size and rate_limit must not be negative")
	}
	return nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
