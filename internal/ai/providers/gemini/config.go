package gemini

import (
	"fmt"
	"net/url"
	"time"

	"github.com/yildizm/HumanizePro/internal/ai"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-pro"
	DefaultTimeout = 120 * time.Second
	APIVersion     = "v1beta"
)

// Config holds Gemini-specific configuration. Zero MaxTokens and
// DefaultTemperature leave the model's own defaults in place.
type Config struct {
	APIKey             string        `json:"api_key"`
	BaseURL            string        `json:"base_url"`
	DefaultModel       string        `json:"default_model"`
	MaxTokens          int           `json:"max_tokens,omitempty"`
	DefaultTemperature float64       `json:"default_temperature,omitempty"`
	Timeout            time.Duration `json:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		DefaultModel: DefaultModel,
		Timeout:      DefaultTimeout,
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ai.NewConfigurationError("gemini", "api_key", "API key is required (set API_KEY, GEMINI_API_KEY or ai.api_key)")
	}

	if c.BaseURL == "" {
		return ai.NewConfigurationError("gemini", "base_url", "base URL is required")
	}

	if _, err := url.Parse(c.BaseURL); err != nil {
		return ai.NewConfigurationError("gemini", "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	if c.DefaultModel == "" {
		return ai.NewConfigurationError("gemini", "default_model", "default model is required")
	}

	if c.MaxTokens < 0 {
		return ai.NewConfigurationError("gemini", "max_tokens", "max tokens cannot be negative")
	}

	if c.DefaultTemperature < 0 || c.DefaultTemperature > 2 {
		return ai.NewConfigurationError("gemini", "default_temperature", "temperature must be between 0 and 2")
	}

	if c.Timeout <= 0 {
		return ai.NewConfigurationError("gemini", "timeout", "timeout must be positive")
	}

	return nil
}

func (c *Config) ToProviderConfig() *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Name:               "gemini",
		Type:               "gemini",
		APIKey:             c.APIKey,
		BaseURL:            c.BaseURL,
		DefaultModel:       c.DefaultModel,
		MaxTokens:          c.MaxTokens,
		DefaultTemperature: c.DefaultTemperature,
		Timeout:            c.Timeout,
	}
}

func FromProviderConfig(config *ai.ProviderConfig) *Config {
	c := DefaultConfig()
	if config == nil {
		return c
	}

	c.APIKey = config.APIKey
	c.MaxTokens = config.MaxTokens
	c.DefaultTemperature = config.DefaultTemperature

	if config.BaseURL != "" {
		c.BaseURL = config.BaseURL
	}
	if config.DefaultModel != "" {
		c.DefaultModel = config.DefaultModel
	}
	if config.Timeout > 0 {
		c.Timeout = config.Timeout
	}

	return c
}
