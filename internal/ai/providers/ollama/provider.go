package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yildizm/HumanizePro/internal/ai"
)

// Provider implements the AI provider interface for Ollama
type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

// New creates a new Ollama provider instance
func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, ai.NewConfigurationError("ollama", "base_url", "invalid base URL: "+err.Error())
	}

	return &Provider{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "ollama"
}

// DefaultModel returns the configured model
func (p *Provider) DefaultModel() string {
	return p.config.DefaultModel
}

// Complete performs a single non-streaming generation
func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	ollamaReq, err := p.buildRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.generate(ctx, ollamaReq)
	if err != nil {
		return nil, err
	}

	finishReason := resp.DoneReason
	if finishReason == "" {
		finishReason = "stop"
	}

	return &ai.CompletionResponse{
		Content:      resp.Response,
		FinishReason: finishReason,
		Usage: &ai.TokenUsage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
		Model:     resp.Model,
		RequestID: req.RequestID,
		CreatedAt: startTime,
	}, nil
}

// ValidateConfig validates the provider configuration
func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

// Close cleans up provider resources
func (p *Provider) Close() error {
	return nil
}

// HealthCheck verifies the server is reachable
func (p *Provider) HealthCheck(ctx context.Context) error {
	_, err := p.tags(ctx)
	return err
}

// ListModels returns locally available models
func (p *Provider) ListModels(ctx context.Context) ([]ai.Model, error) {
	tags, err := p.tags(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]ai.Model, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, ai.Model{
			ID:       m.Name,
			Name:     m.Name,
			Provider: "ollama",
		})
	}
	return models, nil
}

func (p *Provider) buildRequest(req *ai.CompletionRequest) (*GenerateRequest, error) {
	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.config.DefaultTemperature
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	ollamaReq := &GenerateRequest{
		Model:  model,
		Prompt: req.Prompt,
		System: req.SystemPrompt,
		Stream: false,
		Options: &Options{
			Temperature: temperature,
			NumPredict:  maxTokens,
		},
	}

	if req.WantsJSON() {
		format, err := json.Marshal(req.ResponseSchema.JSONSchema())
		if err != nil {
			return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal response schema", "ollama", err)
		}
		ollamaReq.Format = format
	}

	return ollamaReq, nil
}

// generate performs a single generation request
func (p *Provider) generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	endpoint := p.baseURL.JoinPath("/api/generate")

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal request", "ollama", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to create request", "ollama", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeProvider, "failed to decode response", "ollama", err)
	}

	return &result, nil
}

func (p *Provider) tags(ctx context.Context) (*TagsResponse, error) {
	endpoint := p.baseURL.JoinPath("/api/tags")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to create tags request", "ollama", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}

	var tags TagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeProvider, "failed to decode tags response", "ollama", err)
	}
	return &tags, nil
}

func networkError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", "ollama", err)
	}
	return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", "ollama", err)
}

func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
	var errorResp ErrorResponse
	if json.Unmarshal(body, &errorResp) == nil && errorResp.Error != "" {
		message = errorResp.Error
	}

	pe := ai.NewProviderError(ai.ErrorTypeFromStatus(resp.StatusCode), message, "ollama")
	pe.StatusCode = resp.StatusCode
	return pe
}
