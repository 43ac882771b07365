package config

import (
	"fmt"
	"time"

	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/HumanizePro/internal/detector"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	AI       AIConfig       `yaml:"ai" json:"ai"`
	Session  SessionConfig  `yaml:"session" json:"session"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Output   OutputConfig   `yaml:"output" json:"output"`
}

// AIConfig configures the generative model backend
type AIConfig struct {
	Provider    string        `yaml:"provider" json:"provider"`       // gemini|openai|ollama
	Model       string        `yaml:"model" json:"model"`             // model name/identifier
	Endpoint    string        `yaml:"endpoint" json:"endpoint"`       // API base URL, empty for the provider default
	APIKey      string        `yaml:"api_key" json:"-"`               // credential, never echoed
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`         // transport timeout
	Temperature float64       `yaml:"temperature" json:"temperature"` // 0 leaves the provider default
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens"`   // 0 leaves the provider default
}

// SessionConfig configures the initial interactive session
type SessionConfig struct {
	Language     string `yaml:"language" json:"language"`
	Tone         string `yaml:"tone" json:"tone"`
	Theme        string `yaml:"theme" json:"theme"`                 // dark|light
	DiscardStale bool   `yaml:"discard_stale" json:"discard_stale"` // drop completions of superseded requests
}

// AnalysisConfig configures response validation
type AnalysisConfig struct {
	RangePolicy string `yaml:"range_policy" json:"range_policy"` // passthrough|reject|clamp
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Address         string          `yaml:"address" json:"address"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	MaxBodyBytes    int64           `yaml:"max_body_bytes" json:"max_body_bytes"`
	AllowedOrigins  []string        `yaml:"allowed_origins" json:"allowed_origins"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
}

// RateLimitConfig configures the per-client token bucket
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" json:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute" json:"requests_per_minute"`
	Burst             int  `yaml:"burst" json:"burst"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // json|text|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	LogFile       string `yaml:"log_file" json:"log_file"`             // TUI debug log, used when verbose
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		AI: AIConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-pro",
			Timeout:  120 * time.Second,
		},
		Session: SessionConfig{
			Language: string(common.DefaultLanguage),
			Tone:     string(common.DefaultTone),
			Theme:    "dark",
		},
		Analysis: AnalysisConfig{
			RangePolicy: string(detector.RangePassthrough),
		},
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    150 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
			AllowedOrigins:  []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
			},
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			LogFile:       "~/.cache/humanizepro/tui.log",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAIConfig(); err != nil {
		return err
	}
	if err := c.validateSessionConfig(); err != nil {
		return err
	}
	if err := c.validateAnalysisConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	return c.validateOutputConfig()
}

// validateAIConfig validates AI-related configuration
func (c *Config) validateAIConfig() error {
	validProviders := map[string]bool{
		"gemini": true,
		"openai": true,
		"ollama": true,
	}
	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("invalid AI provider: %s (must be one of: gemini, openai, ollama)", c.AI.Provider)
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("ai timeout must be non-negative")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("ai temperature must be between 0 and 2")
	}
	if c.AI.MaxTokens < 0 {
		return fmt.Errorf("ai max_tokens must be non-negative")
	}
	return nil
}

// validateSessionConfig validates the initial session options
func (c *Config) validateSessionConfig() error {
	if _, err := common.ParseLanguage(c.Session.Language); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if _, err := common.ParseTone(c.Session.Tone); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if c.Session.Theme != "dark" && c.Session.Theme != "light" {
		return fmt.Errorf("invalid theme: %s (must be one of: dark, light)", c.Session.Theme)
	}
	return nil
}

// validateAnalysisConfig validates analysis-related configuration
func (c *Config) validateAnalysisConfig() error {
	if _, err := detector.ParseRangePolicy(c.Analysis.RangePolicy); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	return nil
}

// validateServerConfig validates HTTP API configuration
func (c *Config) validateServerConfig() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address must not be empty")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}
	if c.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("max_body_bytes must be greater than 0")
	}
	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.RequestsPerMinute < 1 {
			return fmt.Errorf("rate_limit.requests_per_minute must be greater than 0")
		}
		if c.Server.RateLimit.Burst < 1 {
			return fmt.Errorf("rate_limit.burst must be greater than 0")
		}
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// RequiresAPIKey reports whether the configured provider needs a credential
func (c *Config) RequiresAPIKey() bool {
	return c.AI.Provider == "gemini" || c.AI.Provider == "openai"
}
