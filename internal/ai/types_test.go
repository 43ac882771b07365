package ai

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestCompletionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     *CompletionRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: &CompletionRequest{
				Prompt:      "Test prompt",
				MaxTokens:   100,
				Temperature: 0.7,
			},
			wantErr: false,
		},
		{
			name:    "nil request",
			req:     nil,
			wantErr: true,
		},
		{
			name:    "empty prompt",
			req:     &CompletionRequest{MaxTokens: 100},
			wantErr: true,
		},
		{
			name:    "negative max tokens",
			req:     &CompletionRequest{Prompt: "Test", MaxTokens: -1},
			wantErr: true,
		},
		{
			name:    "invalid temperature",
			req:     &CompletionRequest{Prompt: "Test", Temperature: 2.5},
			wantErr: true,
		},
		{
			name: "non-object schema",
			req: &CompletionRequest{
				Prompt:         "Test",
				ResponseSchema: &Schema{Type: SchemaNumber},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("expected validation error, got %T", err)
			}
		})
	}
}

func TestSchema_JSONSchema(t *testing.T) {
	s := &Schema{
		Type: SchemaObject,
		Properties: map[string]*Schema{
			"score": {Type: SchemaNumber},
		},
		Required: []string{"score"},
	}

	got := s.JSONSchema()
	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{"type": "number"},
		},
		"required":             []string{"score"},
		"additionalProperties": false,
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("JSONSchema() = %#v, want %#v", got, want)
	}

	var nilSchema *Schema
	if nilSchema.JSONSchema() != nil {
		t.Error("nil schema should render as nil")
	}
}

func TestWantsJSON(t *testing.T) {
	if (&CompletionRequest{Prompt: "x"}).WantsJSON() {
		t.Error("request without schema should not want JSON")
	}
	if !(&CompletionRequest{Prompt: "x", ResponseSchema: &Schema{Type: SchemaObject}}).WantsJSON() {
		t.Error("request with schema should want JSON")
	}
}

func TestProviderError_Chain(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("analyze: %w", NewProviderErrorWithCause(ErrTypeNetwork, "request failed", "gemini", cause))

	if !HasErrorType(err, ErrTypeNetwork) {
		t.Error("expected network error type in chain")
	}
	if HasErrorType(err, ErrTypeValidation) {
		t.Error("unexpected validation error type in chain")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through the chain")
	}

	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Provider != "gemini" {
		t.Errorf("errors.As() = %v, provider %q", pe, pe.Provider)
	}
}

func TestProviderError_Error(t *testing.T) {
	err := &ProviderError{
		Type:       ErrTypeAuthentication,
		Message:    "invalid key",
		Provider:   "openai",
		StatusCode: 401,
	}
	want := "provider=openai: type=authentication: status=401: invalid key"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorTypeFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{401, ErrTypeAuthentication},
		{403, ErrTypeAuthentication},
		{404, ErrTypeModelUnavailable},
		{429, ErrTypeRateLimit},
		{504, ErrTypeTimeout},
		{500, ErrTypeProvider},
		{400, ErrTypeProvider},
	}

	for _, tt := range tests {
		if got := ErrorTypeFromStatus(tt.status); got != tt.want {
			t.Errorf("ErrorTypeFromStatus(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestIsConfigurationError(t *testing.T) {
	if !IsConfigurationError(fmt.Errorf("setup: %w", NewConfigurationError("gemini", "api_key", "missing"))) {
		t.Error("wrapped ConfigurationError not detected")
	}
	if !IsConfigurationError(NewProviderError(ErrTypeConfiguration, "bad", "x")) {
		t.Error("configuration-typed ProviderError not detected")
	}
	if IsConfigurationError(errors.New("other")) {
		t.Error("plain error detected as configuration error")
	}
}
