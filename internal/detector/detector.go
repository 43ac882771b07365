// Package detector issues the two model calls the application makes:
// AI-authorship analysis and humanized rewriting.
package detector

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/go-promptfmt"

	"github.com/yildizm/HumanizePro/internal/ai"
	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/HumanizePro/internal/logger"
	"github.com/yildizm/HumanizePro/internal/prompts"
)

// Options tunes requests sent through a Client
type Options struct {
	// Model overrides the provider's default model
	Model string

	// Temperature and MaxTokens are passed through; zero leaves the
	// provider default in place
	Temperature float64
	MaxTokens   int

	// RangePolicy applies to analysis percentages
	RangePolicy RangePolicy
}

// DefaultOptions returns the options matching the hosted web app
func DefaultOptions() *Options {
	return &Options{RangePolicy: RangePassthrough}
}

// Client is the model client. It is safe for concurrent use as long as
// the provider is.
type Client struct {
	provider ai.Provider
	options  *Options
	log      *logger.Logger
}

// New creates a Client. A nil logger discards output.
func New(provider ai.Provider, options *Options, log *logger.Logger) *Client {
	if options == nil {
		options = DefaultOptions()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		provider: provider,
		options:  options,
		log:      log.WithComponent("detector"),
	}
}

// Provider returns the underlying provider
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// Analyze asks the model how likely text is to be AI-written
func (c *Client) Analyze(ctx context.Context, text string) (common.AnalysisResult, error) {
	requestID := uuid.NewString()

	if common.IsBlank(text) {
		return common.AnalysisResult{}, &AnalysisError{
			RequestID: requestID,
			Cause:     ai.NewValidationError("text", "", "text cannot be empty"),
		}
	}

	prompt := promptfmt.New().
		User("%s", prompts.BuildAnalysisPrompt(text)).
		Build()

	resp, err := c.complete(ctx, "analyze", prompt, &ai.CompletionRequest{
		Prompt:         userContent(prompt),
		ResponseSchema: prompts.AnalysisSchema(),
		RequestID:      requestID,
	})
	if err != nil {
		return common.AnalysisResult{}, &AnalysisError{RequestID: requestID, Cause: err}
	}

	result, err := ParseAnalysis(resp.Content, c.options.RangePolicy)
	if err != nil {
		c.log.WarnWithFields("analysis response rejected", []logger.Field{
			logger.Provider(c.provider.Name()),
			logger.RequestID(requestID),
			logger.Error(err),
		})
		return common.AnalysisResult{}, &AnalysisError{
			RequestID: requestID,
			Cause:     ai.NewProviderErrorWithCause(ai.ErrTypeValidation, "invalid analysis response", c.provider.Name(), err),
		}
	}

	return result, nil
}

// Humanize asks the model to rewrite text in the given language and tone.
// The model's output is returned verbatim.
func (c *Client) Humanize(ctx context.Context, text string, language common.Language, tone common.Tone) (string, error) {
	requestID := uuid.NewString()

	if err := validateHumanize(text, language, tone); err != nil {
		return "", &HumanizeError{RequestID: requestID, Cause: err}
	}

	prompt := promptfmt.New().
		User("%s", prompts.BuildHumanizePrompt(text, language, tone)).
		Build()

	resp, err := c.complete(ctx, "humanize", prompt, &ai.CompletionRequest{
		Prompt:    userContent(prompt),
		RequestID: requestID,
	})
	if err != nil {
		return "", &HumanizeError{RequestID: requestID, Cause: err}
	}

	return resp.Content, nil
}

func validateHumanize(text string, language common.Language, tone common.Tone) error {
	if common.IsBlank(text) {
		return ai.NewValidationError("text", "", "text cannot be empty")
	}
	if !language.Valid() {
		return ai.NewValidationError("language", string(language), "unsupported language")
	}
	if !tone.Valid() {
		return ai.NewValidationError("tone", string(tone), "unsupported tone")
	}
	return nil
}

// userContent is the text of the last user turn. The model receives it
// as the whole request body, with no role labels and no system turn.
func userContent(p *promptfmt.Prompt) string {
	for i := len(p.Messages) - 1; i >= 0; i-- {
		if p.Messages[i].Role == "user" {
			return p.Messages[i].Content
		}
	}
	return ""
}

// complete issues exactly one provider call and logs its outcome
func (c *Client) complete(ctx context.Context, operation string, prompt *promptfmt.Prompt, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	req.Model = c.options.Model
	req.Temperature = c.options.Temperature
	req.MaxTokens = c.options.MaxTokens

	model := req.Model
	if model == "" {
		model = c.provider.DefaultModel()
	}

	start := time.Now()
	resp, err := c.provider.Complete(ctx, req)
	elapsed := time.Since(start)

	fields := []logger.Field{
		logger.F("op", operation),
		logger.Provider(c.provider.Name()),
		logger.F("model", model),
		logger.RequestID(req.RequestID),
		logger.F("prompt_tokens_est", prompt.EstimateTokens()),
		logger.Duration(elapsed),
	}

	if err != nil {
		c.log.WarnWithFields("model call failed", append(fields, logger.Error(err)))
		return nil, err
	}

	if resp.Usage != nil {
		fields = append(fields, logger.F("tokens", resp.Usage.TotalTokens))
	}
	c.log.DebugWithFields("model call completed", fields)

	return resp, nil
}
