package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/HumanizePro/internal/ai"
)

const testAPIKey = "test-gemini-key"

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.APIKey = testAPIKey
	config.BaseURL = server.URL
	config.Timeout = 5 * time.Second

	provider, err := New(config)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return provider
}

func writeResponse(w http.ResponseWriter, parts ...string) {
	textParts := make([]map[string]any, 0, len(parts))
	for _, p := range parts {
		textParts = append(textParts, map[string]any{"text": p})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": textParts},
			"finishReason": "STOP",
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     12,
			"candidatesTokenCount": 4,
			"totalTokenCount":      16,
		},
	})
}

// lookup walks nested JSON objects
func lookup(raw map[string]any, path ...string) any {
	var cur any = raw
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(DefaultConfig())
	if !ai.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestComplete_StructuredRequest(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/gemini-2.5-pro:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != testAPIKey {
			t.Errorf("x-goog-api-key = %q", got)
		}

		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode: %v", err)
		}

		contents, _ := raw["contents"].([]any)
		if len(contents) != 1 {
			t.Fatalf("contents = %v", raw["contents"])
		}
		parts, _ := lookup(contents[0].(map[string]any), "parts").([]any)
		if len(parts) != 1 || lookup(parts[0].(map[string]any), "text") != "the prompt" {
			t.Errorf("parts = %v", parts)
		}
		if _, ok := raw["systemInstruction"]; ok {
			t.Errorf("unexpected systemInstruction: %v", raw["systemInstruction"])
		}

		if got := lookup(raw, "generationConfig", "responseMimeType"); got != "application/json" {
			t.Fatalf("responseMimeType = %v", got)
		}
		if got, _ := lookup(raw, "generationConfig", "responseSchema", "type").(string); !strings.EqualFold(got, "OBJECT") {
			t.Errorf("schema type = %q, want OBJECT", got)
		}
		prop, _ := lookup(raw, "generationConfig", "responseSchema", "properties", "humanPercentage", "type").(string)
		if !strings.EqualFold(prop, "NUMBER") {
			t.Errorf("property type = %q, want NUMBER", prop)
		}
		if required, _ := lookup(raw, "generationConfig", "responseSchema", "required").([]any); len(required) != 2 {
			t.Errorf("required = %v", required)
		}

		writeResponse(w, `{"humanPercentage": 20,`, ` "aiPercentage": 80}`)
	})

	resp, err := provider.Complete(context.Background(), &ai.CompletionRequest{
		Prompt: "the prompt",
		ResponseSchema: &ai.Schema{
			Type: ai.SchemaObject,
			Properties: map[string]*ai.Schema{
				"humanPercentage": {Type: ai.SchemaNumber},
				"aiPercentage":    {Type: ai.SchemaNumber},
			},
			Required: []string{"humanPercentage", "aiPercentage"},
		},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if resp.Content != `{"humanPercentage": 20, "aiPercentage": 80}` {
		t.Errorf("parts must be concatenated, got %q", resp.Content)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 16 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.FinishReason != "stop" {
		t.Errorf("finish reason = %q", resp.FinishReason)
	}
}

func TestComplete_SystemPromptAndTuning(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		_ = json.NewDecoder(r.Body).Decode(&raw)

		parts, _ := lookup(raw, "systemInstruction", "parts").([]any)
		if len(parts) != 1 || lookup(parts[0].(map[string]any), "text") != "persona" {
			t.Errorf("systemInstruction = %v", raw["systemInstruction"])
		}
		if got := lookup(raw, "generationConfig", "maxOutputTokens"); got != float64(256) {
			t.Errorf("maxOutputTokens = %v", got)
		}
		if got, _ := lookup(raw, "generationConfig", "temperature").(float64); got < 0.69 || got > 0.71 {
			t.Errorf("temperature = %v", got)
		}
		writeResponse(w, "ok")
	})

	_, err := provider.Complete(context.Background(), &ai.CompletionRequest{
		Prompt:       "x",
		SystemPrompt: "persona",
		Temperature:  0.7,
		MaxTokens:    256,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
}

func TestComplete_FreeFormOmitsGenerationConfig(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		_ = json.NewDecoder(r.Body).Decode(&raw)
		if _, ok := raw["generationConfig"]; ok {
			t.Errorf("unexpected generationConfig: %v", raw["generationConfig"])
		}
		writeResponse(w, "Rewritten text.\n")
	})

	resp, err := provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "rewrite"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "Rewritten text.\n" {
		t.Errorf("Content = %q", resp.Content)
	}
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType ai.ErrorType
	}{
		{
			name:     "invalid key",
			status:   http.StatusBadRequest,
			body:     `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`,
			wantType: ai.ErrTypeAuthentication,
		},
		{
			name:     "quota exhausted",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`,
			wantType: ai.ErrTypeRateLimit,
		},
		{
			name:     "model overloaded",
			status:   http.StatusServiceUnavailable,
			body:     `{"error":{"code":503,"message":"The model is overloaded.","status":"UNAVAILABLE"}}`,
			wantType: ai.ErrTypeProvider,
		},
		{
			name:     "non-json error body",
			status:   http.StatusBadGateway,
			body:     `upstream failure`,
			wantType: ai.ErrTypeProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
			if !ai.HasErrorType(err, tt.wantType) {
				t.Errorf("error = %v, want type %s", err, tt.wantType)
			}
			if calls != 1 {
				t.Errorf("server called %d times, want 1", calls)
			}
		})
	}
}

func TestComplete_BlockedPrompt(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	})

	_, err := provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
	if !ai.HasErrorType(err, ai.ErrTypeBlocked) {
		t.Errorf("expected blocked error, got %v", err)
	}
}

func TestListModels(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models":[{"name":"models/gemini-2.5-pro","displayName":"Gemini 2.5 Pro"}]}`))
	})

	models, err := provider.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 1 || models[0].ID != "gemini-2.5-pro" || models[0].Name != "Gemini 2.5 Pro" {
		t.Errorf("models = %+v", models)
	}
}

func TestFromProviderConfig_Defaults(t *testing.T) {
	c := FromProviderConfig(&ai.ProviderConfig{APIKey: "k"})
	if c.DefaultModel != DefaultModel || c.BaseURL != DefaultBaseURL || c.Timeout != DefaultTimeout {
		t.Errorf("defaults not applied: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
