package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yildizm/HumanizePro/internal/ai"
)

const jsonMimeType = "application/json"

type Provider struct {
	config *Config
	client *genai.Client
}

func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: config.Timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    strings.TrimRight(config.BaseURL, "/") + "/",
			APIVersion: APIVersion,
		},
	})
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeConfiguration, "failed to create client", "gemini", err)
	}

	return &Provider{
		config: config,
		client: client,
	}, nil
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) DefaultModel() string {
	return p.config.DefaultModel
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	resp, err := p.client.Models.GenerateContent(ctx, model,
		genai.Text(req.Prompt), p.buildConfig(req))
	if err != nil {
		return nil, convertError(err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, ai.NewProviderError(ai.ErrTypeBlocked,
			"prompt blocked: "+string(resp.PromptFeedback.BlockReason), "gemini")
	}

	if len(resp.Candidates) == 0 {
		return nil, ai.NewProviderError(ai.ErrTypeProvider, "response contained no candidates", "gemini")
	}

	return toAIResponse(resp, model, req.RequestID), nil
}

func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

func (p *Provider) Close() error {
	return nil
}

func (p *Provider) HealthCheck(ctx context.Context) error {
	_, err := p.ListModels(ctx)
	return err
}

func (p *Provider) ListModels(ctx context.Context) ([]ai.Model, error) {
	page, err := p.client.Models.List(ctx, nil)
	if err != nil {
		return nil, convertError(err)
	}

	models := make([]ai.Model, 0, len(page.Items))
	for _, m := range page.Items {
		models = append(models, ai.Model{
			ID:       strings.TrimPrefix(m.Name, "models/"),
			Name:     m.DisplayName,
			Provider: "gemini",
			OwnedBy:  "google",
		})
	}
	return models, nil
}

// buildConfig returns nil when nothing beyond the model defaults is set
func (p *Provider) buildConfig(req *ai.CompletionRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	hasConfig := false

	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
		hasConfig = true
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.config.DefaultTemperature
	}
	if temperature > 0 {
		config.Temperature = genai.Ptr(float32(temperature))
		hasConfig = true
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
		hasConfig = true
	}

	if req.WantsJSON() {
		config.ResponseMIMEType = jsonMimeType
		config.ResponseSchema = toSchema(req.ResponseSchema)
		hasConfig = true
	}

	if !hasConfig {
		return nil
	}
	return config
}

func toAIResponse(resp *genai.GenerateContentResponse, model, requestID string) *ai.CompletionResponse {
	out := &ai.CompletionResponse{
		Content:      resp.Text(),
		FinishReason: strings.ToLower(string(resp.Candidates[0].FinishReason)),
		Model:        model,
		RequestID:    requestID,
		CreatedAt:    time.Now(),
	}

	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}

	if resp.UsageMetadata != nil {
		out.Usage = &ai.TokenUsage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	return out
}

func convertError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", "gemini", err)
	}
	if errors.Is(err, context.Canceled) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request canceled", "gemini", err)
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", "gemini", err)
	}

	message := apiErr.Message
	if message == "" {
		message = http.StatusText(apiErr.Code)
	}

	errType := ai.ErrorTypeFromStatus(apiErr.Code)
	// An invalid key comes back as 400 INVALID_ARGUMENT
	if apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(message), "api key") {
		errType = ai.ErrTypeAuthentication
	}
	if apiErr.Status == "RESOURCE_EXHAUSTED" {
		errType = ai.ErrTypeRateLimit
	}

	pe := ai.NewProviderErrorWithCause(errType, message, "gemini", err)
	pe.StatusCode = apiErr.Code
	return pe
}
