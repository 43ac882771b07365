package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/yildizm/HumanizePro/internal/ai"
)

// analysisSchemaName is the json_schema name sent with structured requests
const analysisSchemaName = "response"

type Provider struct {
	config *Config
	client *goopenai.Client
}

func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	clientConfig := goopenai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	clientConfig.OrgID = config.OrganizationID
	clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}

	return &Provider{
		config: config,
		client: goopenai.NewClientWithConfig(clientConfig),
	}, nil
}

func (p *Provider) Name() string {
	return "openai"
}

func (p *Provider) DefaultModel() string {
	return p.config.DefaultModel
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, p.buildChatRequest(req))
	if err != nil {
		return nil, p.convertError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, ai.NewProviderError(ai.ErrTypeProvider, "response contained no choices", "openai")
	}

	if resp.Choices[0].FinishReason == goopenai.FinishReasonContentFilter {
		return nil, ai.NewProviderError(ai.ErrTypeBlocked, "response blocked by content filter", "openai")
	}

	return toAIResponse(&resp, req.RequestID), nil
}

func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

func (p *Provider) Close() error {
	return nil
}

func (p *Provider) HealthCheck(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return p.convertError(err)
	}
	return nil
}

func (p *Provider) ListModels(ctx context.Context) ([]ai.Model, error) {
	list, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, p.convertError(err)
	}

	models := make([]ai.Model, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, ai.Model{
			ID:       m.ID,
			Name:     m.ID,
			Provider: "openai",
			OwnedBy:  m.OwnedBy,
		})
	}
	return models, nil
}

func (p *Provider) buildChatRequest(req *ai.CompletionRequest) goopenai.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.config.DefaultTemperature
	}

	chatReq := goopenai.ChatCompletionRequest{
		Model:    model,
		Messages: buildMessages(req.SystemPrompt, req.Prompt),
	}

	// Reasoning models take MaxCompletionTokens and reject a temperature
	if isReasoningModel(model) {
		chatReq.MaxCompletionTokens = maxTokens
	} else {
		chatReq.MaxTokens = maxTokens
		chatReq.Temperature = float32(temperature)
	}

	if req.WantsJSON() {
		chatReq.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
				Name:   analysisSchemaName,
				Schema: toDefinition(req.ResponseSchema),
				Strict: true,
			},
		}
	}

	return chatReq
}

func isReasoningModel(model string) bool {
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

func (p *Provider) convertError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", "openai", err)
	}
	if errors.Is(err, context.Canceled) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request canceled", "openai", err)
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		pe := ai.NewProviderErrorWithCause(ai.ErrorTypeFromStatus(apiErr.HTTPStatusCode), apiErr.Message, "openai", err)
		pe.StatusCode = apiErr.HTTPStatusCode
		if apiErr.Code == "insufficient_quota" {
			pe.Type = ai.ErrTypeQuota
		}
		return pe
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		pe := ai.NewProviderErrorWithCause(ai.ErrorTypeFromStatus(reqErr.HTTPStatusCode),
			fmt.Sprintf("request failed with status %d", reqErr.HTTPStatusCode), "openai", err)
		pe.StatusCode = reqErr.HTTPStatusCode
		return pe
	}

	return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", "openai", err)
}
