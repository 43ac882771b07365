package ai

import (
	"strconv"
	"time"
)

// CompletionRequest represents a single request to a generative model
type CompletionRequest struct {
	// Prompt is the user-turn text sent to the model
	Prompt string `json:"prompt"`

	// SystemPrompt provides system-level instructions
	SystemPrompt string `json:"system_prompt,omitempty"`

	// MaxTokens limits the response length
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 to 1.0)
	Temperature float64 `json:"temperature,omitempty"`

	// Model overrides the provider's default model
	Model string `json:"model,omitempty"`

	// ResponseSchema, when set, asks the provider for a JSON response of
	// this shape. Providers without structured output ignore it.
	ResponseSchema *Schema `json:"response_schema,omitempty"`

	// Metadata for request tracking
	RequestID string            `json:"request_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// WantsJSON reports whether the request declares a structured response
func (r *CompletionRequest) WantsJSON() bool {
	return r != nil && r.ResponseSchema != nil
}

// CompletionResponse represents the response from a completion request
type CompletionResponse struct {
	// Content is the generated text
	Content string `json:"content"`

	// FinishReason indicates why the completion finished
	FinishReason string `json:"finish_reason"`

	// Usage contains token usage information
	Usage *TokenUsage `json:"usage"`

	// Model indicates which model was used
	Model string `json:"model"`

	// RequestID matches the original request
	RequestID string `json:"request_id,omitempty"`

	// CreatedAt timestamp
	CreatedAt time.Time `json:"created_at"`
}

// TokenUsage tracks token consumption
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// SchemaType is a JSON schema primitive type
type SchemaType string

const (
	SchemaObject  SchemaType = "object"
	SchemaNumber  SchemaType = "number"
	SchemaString  SchemaType = "string"
	SchemaInteger SchemaType = "integer"
	SchemaBoolean SchemaType = "boolean"
	SchemaArray   SchemaType = "array"
)

// Schema is a provider-neutral subset of JSON schema. Each provider
// translates it into its own structured-output format.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// JSONSchema renders s as a plain JSON schema document
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return nil
	}

	out := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.JSONSchema()
		}
		out["properties"] = props
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if len(s.Required) > 0 {
		out["required"] = append([]string(nil), s.Required...)
	}
	if s.Type == SchemaObject {
		out["additionalProperties"] = false
	}
	return out
}

// ProviderConfig contains configuration for a provider
type ProviderConfig struct {
	// Name is the provider identifier
	Name string `json:"name"`

	// Type is the provider type (gemini, openai, ollama)
	Type string `json:"type"`

	// APIKey for authentication
	APIKey string `json:"api_key,omitempty"`

	// BaseURL for the API endpoint
	BaseURL string `json:"base_url,omitempty"`

	// DefaultModel is the default model to use
	DefaultModel string `json:"default_model,omitempty"`

	// MaxTokens caps the response length
	MaxTokens int `json:"max_tokens,omitempty"`

	// DefaultTemperature for requests
	DefaultTemperature float64 `json:"default_temperature,omitempty"`

	// Timeout for requests
	Timeout time.Duration `json:"timeout,omitempty"`

	// Custom headers for requests
	Headers map[string]string `json:"headers,omitempty"`

	// Provider-specific options
	Options map[string]interface{} `json:"options,omitempty"`
}

// Model represents an AI model with provider-agnostic information
type Model struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	OwnedBy  string `json:"owned_by,omitempty"`
}

// Validate checks the request before it is sent to a provider
func (r *CompletionRequest) Validate() error {
	if r == nil || r.Prompt == "" {
		return NewValidationError("prompt", "", "prompt cannot be empty")
	}
	if r.MaxTokens < 0 {
		return NewValidationError("max_tokens", strconv.Itoa(r.MaxTokens), "max_tokens cannot be negative")
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		return NewValidationError("temperature", strconv.FormatFloat(r.Temperature, 'f', -1, 64), "temperature must be between 0 and 2")
	}
	if r.ResponseSchema != nil && r.ResponseSchema.Type != SchemaObject {
		return NewValidationError("response_schema", string(r.ResponseSchema.Type), "response schema must describe an object")
	}
	return nil
}
