package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.humanizepro.yaml",               // Project-specific config (highest priority)
	"~/.config/humanizepro/config.yaml", // User config
	"/etc/humanizepro/config.yaml",      // System config (lowest priority)
}

// EnvPrefix prefixes every environment override
const EnvPrefix = "HUMANIZEPRO_"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	getenv      func(string) string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		getenv:      os.Getenv,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.humanizepro.yaml
// 4. ~/.config/humanizepro/config.yaml
// 5. /etc/humanizepro/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file over config. Keys absent from the file
// keep their current value, so explicit false and zero values survive.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Decode into a copy so a parse error leaves config untouched
	merged := *config
	merged.Server.AllowedOrigins = append([]string(nil), config.Server.AllowedOrigins...)
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	*config = merged
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// AI Config
		"AI_PROVIDER":    func(v string) error { config.AI.Provider = strings.ToLower(v); return nil },
		"AI_MODEL":       func(v string) error { config.AI.Model = v; return nil },
		"AI_ENDPOINT":    func(v string) error { config.AI.Endpoint = v; return nil },
		"AI_API_KEY":     func(v string) error { config.AI.APIKey = v; return nil },
		"AI_TIMEOUT":     func(v string) error { return parseDuration(v, &config.AI.Timeout) },
		"AI_TEMPERATURE": func(v string) error { return parseFloat(v, &config.AI.Temperature) },
		"AI_MAX_TOKENS":  func(v string) error { return parseInt(v, &config.AI.MaxTokens) },

		// Session Config
		"SESSION_LANGUAGE":      func(v string) error { config.Session.Language = v; return nil },
		"SESSION_TONE":          func(v string) error { config.Session.Tone = v; return nil },
		"SESSION_THEME":         func(v string) error { config.Session.Theme = strings.ToLower(v); return nil },
		"SESSION_DISCARD_STALE": func(v string) error { return parseBool(v, &config.Session.DiscardStale) },

		// Analysis Config
		"ANALYSIS_RANGE_POLICY": func(v string) error { config.Analysis.RangePolicy = v; return nil },

		// Server Config
		"SERVER_ADDRESS":            func(v string) error { config.Server.Address = v; return nil },
		"SERVER_READ_TIMEOUT":       func(v string) error { return parseDuration(v, &config.Server.ReadTimeout) },
		"SERVER_WRITE_TIMEOUT":      func(v string) error { return parseDuration(v, &config.Server.WriteTimeout) },
		"SERVER_SHUTDOWN_TIMEOUT":   func(v string) error { return parseDuration(v, &config.Server.ShutdownTimeout) },
		"SERVER_MAX_BODY_BYTES":     func(v string) error { return parseInt64(v, &config.Server.MaxBodyBytes) },
		"SERVER_ALLOWED_ORIGINS":    func(v string) error { config.Server.AllowedOrigins = splitList(v); return nil },
		"SERVER_RATE_LIMIT_ENABLED": func(v string) error { return parseBool(v, &config.Server.RateLimit.Enabled) },
		"SERVER_RATE_LIMIT_RPM":     func(v string) error { return parseInt(v, &config.Server.RateLimit.RequestsPerMinute) },
		"SERVER_RATE_LIMIT_BURST":   func(v string) error { return parseInt(v, &config.Server.RateLimit.Burst) },

		// Output Config
		"OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"OUTPUT_LOG_FILE":       func(v string) error { config.Output.LogFile = v; return nil },
	}

	for name, setter := range envMappings {
		envVar := EnvPrefix + name
		if value := l.getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	if config.AI.APIKey == "" {
		config.AI.APIKey = l.credentialFallback(config.AI.Provider)
	}

	return nil
}

// credentialFallback reads the conventional credential variables used when
// neither the config file nor HUMANIZEPRO_AI_API_KEY set one
func (l *Loader) credentialFallback(provider string) string {
	if key := l.getenv("API_KEY"); key != "" {
		return key
	}
	switch provider {
	case "gemini":
		return l.getenv("GEMINI_API_KEY")
	case "openai":
		return l.getenv("OPENAI_API_KEY")
	}
	return ""
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path string) string {
	return expandPath(path)
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseInt64(s string, dst *int64) error {
	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
