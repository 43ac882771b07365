package cli

import (
	"fmt"
	"strings"
	"sync"

	"github.com/yildizm/HumanizePro/internal/ai"
	"github.com/yildizm/HumanizePro/internal/ai/providers/gemini"
	"github.com/yildizm/HumanizePro/internal/ai/providers/ollama"
	"github.com/yildizm/HumanizePro/internal/ai/providers/openai"
	"github.com/yildizm/HumanizePro/internal/config"
	"github.com/yildizm/HumanizePro/internal/detector"
	"github.com/yildizm/HumanizePro/internal/logger"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// providerRegistry registers the built-in providers into the global
// registry on first use and returns it
func providerRegistry() (ai.Registry, error) {
	registerOnce.Do(func() {
		for _, register := range []func() error{gemini.Register, openai.Register, ollama.Register} {
			if registerErr = register(); registerErr != nil {
				return
			}
		}
	})
	return ai.GlobalRegistry(), registerErr
}

// providerConfig maps the ai config section onto a provider config. Empty
// fields are left for the factory to default.
func providerConfig(aiConfig *config.AIConfig) *ai.ProviderConfig {
	name := strings.ToLower(aiConfig.Provider)
	return &ai.ProviderConfig{
		Name:               name,
		Type:               name,
		APIKey:             aiConfig.APIKey,
		BaseURL:            aiConfig.Endpoint,
		DefaultModel:       aiConfig.Model,
		MaxTokens:          aiConfig.MaxTokens,
		DefaultTemperature: aiConfig.Temperature,
		Timeout:            aiConfig.Timeout,
	}
}

// createAIProvider creates the configured provider. A hosted provider
// without a credential fails here, before any UI or listener starts.
func createAIProvider(cfg *config.Config) (ai.Provider, error) {
	if cfg.RequiresAPIKey() && cfg.AI.APIKey == "" {
		return nil, ai.NewConfigurationError(cfg.AI.Provider, "api_key",
			fmt.Sprintf("an API key is required; set %sAI_API_KEY, API_KEY or %s", config.EnvPrefix, providerKeyEnv(cfg.AI.Provider)))
	}

	registry, err := providerRegistry()
	if err != nil {
		return nil, err
	}
	return registry.Create(strings.ToLower(cfg.AI.Provider), providerConfig(&cfg.AI))
}

func providerKeyEnv(provider string) string {
	if strings.EqualFold(provider, "openai") {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// newDetector builds the model client on top of the configured provider.
// The caller closes the returned provider.
func newDetector(cfg *config.Config, log *logger.Logger) (*detector.Client, ai.Provider, error) {
	provider, err := createAIProvider(cfg)
	if err != nil {
		return nil, nil, err
	}

	policy, err := detector.ParseRangePolicy(cfg.Analysis.RangePolicy)
	if err != nil {
		_ = provider.Close()
		return nil, nil, err
	}

	options := &detector.Options{
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		RangePolicy: policy,
	}
	return detector.New(provider, options, log), provider, nil
}

// modelName is the model requests will use
func modelName(cfg *config.Config, provider ai.Provider) string {
	if cfg.AI.Model != "" {
		return cfg.AI.Model
	}
	return provider.DefaultModel()
}
