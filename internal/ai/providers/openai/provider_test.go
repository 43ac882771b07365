package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yildizm/HumanizePro/internal/ai"
)

const testAPIKey = "test-api-key"

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.APIKey = testAPIKey
	config.BaseURL = server.URL + "/v1"
	config.Timeout = 5 * time.Second

	provider, err := New(config)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return provider
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   DefaultModel,
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	})
}

func TestProvider_New(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "nil config fails without API key",
			config:  nil,
			wantErr: true,
		},
		{
			name: "valid config",
			config: &Config{
				APIKey:             testAPIKey,
				BaseURL:            DefaultBaseURL,
				DefaultModel:       DefaultModel,
				MaxTokens:          DefaultMaxTokens,
				DefaultTemperature: DefaultTemperature,
				Timeout:            DefaultTimeout,
			},
			wantErr: false,
		},
		{
			name: "invalid base URL",
			config: &Config{
				APIKey:  testAPIKey,
				BaseURL: "http://[::1]:namedport",
			},
			wantErr: true,
		},
		{
			name:    "missing API key",
			config:  &Config{BaseURL: DefaultBaseURL},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !ai.IsConfigurationError(err) {
				t.Errorf("expected configuration error, got %T", err)
			}
			if !tt.wantErr && provider == nil {
				t.Error("New() returned nil provider without error")
			}
		})
	}
}

func TestProvider_CompleteStructured(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s, want /v1/chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer "+testAPIKey {
			t.Errorf("Authorization = %q", got)
		}

		var body struct {
			Model          string `json:"model"`
			Messages       []struct{ Role, Content string }
			ResponseFormat struct {
				Type       string `json:"type"`
				JSONSchema struct {
					Name   string         `json:"name"`
					Strict bool           `json:"strict"`
					Schema map[string]any `json:"schema"`
				} `json:"json_schema"`
			} `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		if body.ResponseFormat.Type != "json_schema" {
			t.Errorf("response_format.type = %q, want json_schema", body.ResponseFormat.Type)
		}
		if !body.ResponseFormat.JSONSchema.Strict {
			t.Error("expected strict schema")
		}
		props, _ := body.ResponseFormat.JSONSchema.Schema["properties"].(map[string]any)
		if _, ok := props["score"]; !ok {
			t.Errorf("schema properties = %v, want score", props)
		}
		if len(body.Messages) != 2 || body.Messages[0].Role != "system" || body.Messages[1].Content != "rate this" {
			t.Errorf("messages = %+v", body.Messages)
		}

		writeCompletion(w, `{"score": 42}`)
	})

	resp, err := provider.Complete(context.Background(), &ai.CompletionRequest{
		Prompt:       "rate this",
		SystemPrompt: "you are a judge",
		RequestID:    "req-1",
		ResponseSchema: &ai.Schema{
			Type:       ai.SchemaObject,
			Properties: map[string]*ai.Schema{"score": {Type: ai.SchemaNumber}},
			Required:   []string{"score"},
		},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != `{"score": 42}` {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.RequestID != "req-1" {
		t.Errorf("RequestID = %q", resp.RequestID)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 15 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
}

func TestProvider_CompleteFreeForm(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["response_format"]; ok {
			t.Error("free-form request must not carry response_format")
		}
		if user, ok := body["user"]; ok {
			t.Errorf("request id leaked into the end-user field: %v", user)
		}
		writeCompletion(w, "  plain text with spaces  ")
	})

	resp, err := provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "rewrite", RequestID: "req-123"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "  plain text with spaces  " {
		t.Errorf("content must be returned verbatim, got %q", resp.Content)
	}
}

func TestProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType ai.ErrorType
	}{
		{"unauthorized", http.StatusUnauthorized, ai.ErrTypeAuthentication},
		{"rate limited", http.StatusTooManyRequests, ai.ErrTypeRateLimit},
		{"server error", http.StatusInternalServerError, ai.ErrTypeProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"invalid_request_error"}}`))
			})

			_, err := provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
			if !ai.HasErrorType(err, tt.wantType) {
				t.Errorf("error = %v, want type %s", err, tt.wantType)
			}
			if calls != 1 {
				t.Errorf("server called %d times, want exactly 1", calls)
			}
		})
	}
}

func TestProvider_RejectsEmptyPrompt(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server must not be called for an invalid request")
	})

	if _, err := provider.Complete(context.Background(), &ai.CompletionRequest{}); !ai.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestProvider_ListModels(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o-mini","object":"model","owned_by":"openai"}]}`))
	})

	models, err := provider.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 1 || models[0].ID != "gpt-4o-mini" {
		t.Errorf("models = %+v", models)
	}
	if err := provider.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestIsReasoningModel(t *testing.T) {
	cases := map[string]bool{
		"o3-mini":     true,
		"gpt-5":       true,
		"gpt-4o-mini": false,
	}
	for model, want := range cases {
		if got := isReasoningModel(model); got != want {
			t.Errorf("isReasoningModel(%q) = %v, want %v", model, got, want)
		}
	}
}
