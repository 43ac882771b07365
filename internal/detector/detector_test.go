package detector

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/yildizm/HumanizePro/internal/ai"
	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/HumanizePro/internal/prompts"
)

// fakeProvider records requests and replays a canned reply
type fakeProvider struct {
	mu       sync.Mutex
	requests []*ai.CompletionRequest
	content  string
	err      error
}

func (f *fakeProvider) Name() string         { return "fake" }
func (f *fakeProvider) DefaultModel() string { return "fake-model" }
func (f *fakeProvider) ValidateConfig() error { return nil }
func (f *fakeProvider) Close() error          { return nil }
func (f *fakeProvider) HealthCheck(ctx context.Context) error {
	return nil
}

func (f *fakeProvider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &ai.CompletionResponse{Content: f.content, RequestID: req.RequestID}, nil
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func TestAnalyze_Success(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    common.AnalysisResult
	}{
		{"integers", `{"humanPercentage": 15, "aiPercentage": 85}`, common.AnalysisResult{HumanPercentage: 15, AIPercentage: 85}},
		{"fractions", `{"humanPercentage": 33.3, "aiPercentage": 66.7}`, common.AnalysisResult{HumanPercentage: 33.3, AIPercentage: 66.7}},
		{"surrounding whitespace", "\n  {\"aiPercentage\": 1, \"humanPercentage\": 99}  \n", common.AnalysisResult{HumanPercentage: 99, AIPercentage: 1}},
		{"extra keys ignored", `{"humanPercentage": 50, "aiPercentage": 50, "note": "x"}`, common.AnalysisResult{HumanPercentage: 50, AIPercentage: 50}},
		{"out of range passes through", `{"humanPercentage": 130, "aiPercentage": -5}`, common.AnalysisResult{HumanPercentage: 130, AIPercentage: -5}},
		{"sum not 100", `{"humanPercentage": 10, "aiPercentage": 10}`, common.AnalysisResult{HumanPercentage: 10, AIPercentage: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{content: tt.content}
			client := New(provider, nil, nil)

			got, err := client.Analyze(context.Background(), "Some sample text")
			if err != nil {
				t.Fatalf("Analyze() error = %v (%s)", err, Detail(err))
			}
			if got != tt.want {
				t.Errorf("Analyze() = %+v, want %+v", got, tt.want)
			}
			if provider.calls() != 1 {
				t.Errorf("provider called %d times, want 1", provider.calls())
			}
		})
	}
}

func TestAnalyze_RequestShape(t *testing.T) {
	provider := &fakeProvider{content: `{"humanPercentage": 1, "aiPercentage": 99}`}
	client := New(provider, nil, nil)

	const text = "A perfectly ordinary paragraph about teapots."
	if _, err := client.Analyze(context.Background(), text); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	req := provider.requests[0]
	if req.ResponseSchema == nil {
		t.Fatal("analysis request must declare a response schema")
	}
	if req.ResponseSchema.Type != ai.SchemaObject {
		t.Errorf("schema type = %s", req.ResponseSchema.Type)
	}
	for _, key := range []string{prompts.FieldHumanPercentage, prompts.FieldAIPercentage} {
		prop, ok := req.ResponseSchema.Properties[key]
		if !ok || prop.Type != ai.SchemaNumber {
			t.Errorf("schema property %s = %+v", key, prop)
		}
	}
	if n := strings.Count(req.Prompt, text); n != 1 {
		t.Errorf("text appears %d times in prompt, want 1", n)
	}
	if req.RequestID == "" {
		t.Error("request id not set")
	}
}

func TestRequests_SendBuiltPromptOnly(t *testing.T) {
	provider := &fakeProvider{content: `{"humanPercentage": 40, "aiPercentage": 60}`}
	client := New(provider, nil, nil)

	const text = "Furthermore, it is important to note the following."
	if _, err := client.Analyze(context.Background(), text); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	provider.content = "rewritten"
	if _, err := client.Humanize(context.Background(), text, common.LanguageEnglish, common.ToneAcademic); err != nil {
		t.Fatalf("Humanize() error = %v", err)
	}

	analyze, humanize := provider.requests[0], provider.requests[1]
	if analyze.Prompt != prompts.BuildAnalysisPrompt(text) {
		t.Errorf("analysis prompt differs from the built prompt:\n%.80q", analyze.Prompt)
	}
	if humanize.Prompt != prompts.BuildHumanizePrompt(text, common.LanguageEnglish, common.ToneAcademic) {
		t.Errorf("humanize prompt differs from the built prompt:\n%.80q", humanize.Prompt)
	}
	for _, req := range provider.requests {
		if req.SystemPrompt != "" {
			t.Errorf("unexpected system prompt %q", req.SystemPrompt)
		}
		if strings.HasPrefix(req.Prompt, "System:") || strings.HasPrefix(req.Prompt, "User:") {
			t.Errorf("prompt carries a role label: %.20q", req.Prompt)
		}
	}
	if n := strings.Count(analyze.Prompt, "highly advanced AI detection engine"); n != 1 {
		t.Errorf("persona appears %d times, want 1", n)
	}
}

func TestAnalyze_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "The text is 80% AI."},
		{"markdown fenced", "```json\n{\"humanPercentage\": 20, \"aiPercentage\": 80}\n```"},
		{"json array", `[20, 80]`},
		{"json null", `null`},
		{"empty", ``},
		{"missing ai field", `{"humanPercentage": 20}`},
		{"missing human field", `{"aiPercentage": 80}`},
		{"string number", `{"humanPercentage": "20", "aiPercentage": 80}`},
		{"null field", `{"humanPercentage": 20, "aiPercentage": null}`},
		{"boolean field", `{"humanPercentage": true, "aiPercentage": 80}`},
		{"truncated", `{"humanPercentage": 20, "aiPerc`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{content: tt.content}
			client := New(provider, nil, nil)

			_, err := client.Analyze(context.Background(), "text")

			var analysisErr *AnalysisError
			if !errors.As(err, &analysisErr) {
				t.Fatalf("expected *AnalysisError, got %T (%v)", err, err)
			}
			if err.Error() != AnalysisFailedMessage {
				t.Errorf("Error() = %q, want fixed message", err.Error())
			}
			if !ai.HasErrorType(err, ai.ErrTypeValidation) {
				t.Errorf("validation tag missing from chain: %s", Detail(err))
			}
			if !ai.IsValidationError(err) {
				t.Error("expected ValidationError in chain")
			}
		})
	}
}

func TestAnalyze_ProviderFailure(t *testing.T) {
	cause := ai.NewProviderError(ai.ErrTypeNetwork, "connection reset", "fake")
	provider := &fakeProvider{err: cause}
	client := New(provider, nil, nil)

	_, err := client.Analyze(context.Background(), "text")
	if err == nil || err.Error() != AnalysisFailedMessage {
		t.Fatalf("Analyze() error = %v, want %q", err, AnalysisFailedMessage)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if ai.HasErrorType(err, ai.ErrTypeValidation) {
		t.Error("transport failure must not be tagged as validation")
	}
	if provider.calls() != 1 {
		t.Errorf("provider called %d times, want exactly 1 (no retries)", provider.calls())
	}
}

func TestAnalyze_BlankTextSkipsProvider(t *testing.T) {
	provider := &fakeProvider{content: `{"humanPercentage": 1, "aiPercentage": 2}`}
	client := New(provider, nil, nil)

	_, err := client.Analyze(context.Background(), "   \n\t")
	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("expected *AnalysisError, got %v", err)
	}
	if provider.calls() != 0 {
		t.Errorf("provider called %d times for blank text", provider.calls())
	}
}

func TestAnalyze_RangePolicies(t *testing.T) {
	content := `{"humanPercentage": 120, "aiPercentage": -20}`

	t.Run("reject", func(t *testing.T) {
		client := New(&fakeProvider{content: content}, &Options{RangePolicy: RangeReject}, nil)
		_, err := client.Analyze(context.Background(), "text")
		if !ai.HasErrorType(err, ai.ErrTypeValidation) {
			t.Errorf("expected validation failure, got %v", err)
		}
	})

	t.Run("clamp", func(t *testing.T) {
		client := New(&fakeProvider{content: content}, &Options{RangePolicy: RangeClamp}, nil)
		got, err := client.Analyze(context.Background(), "text")
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if got.HumanPercentage != 100 || got.AIPercentage != 0 {
			t.Errorf("clamped = %+v", got)
		}
	})

	t.Run("reject accepts bounds", func(t *testing.T) {
		client := New(&fakeProvider{content: `{"humanPercentage": 0, "aiPercentage": 100}`}, &Options{RangePolicy: RangeReject}, nil)
		if _, err := client.Analyze(context.Background(), "text"); err != nil {
			t.Errorf("bounds rejected: %v", err)
		}
	})
}

func TestHumanize_ReturnsVerbatim(t *testing.T) {
	const reply = "  Honestly? I loved it.\n\nEvery bit.  "
	provider := &fakeProvider{content: reply}
	client := New(provider, &Options{Model: "custom-model"}, nil)

	const text = "The product exhibited satisfactory performance characteristics."
	got, err := client.Humanize(context.Background(), text, common.LanguageArabic, common.ToneCreative)
	if err != nil {
		t.Fatalf("Humanize() error = %v", err)
	}
	if got != reply {
		t.Errorf("Humanize() = %q, want verbatim %q", got, reply)
	}

	req := provider.requests[0]
	if req.ResponseSchema != nil {
		t.Error("humanize request must not declare a schema")
	}
	if req.Model != "custom-model" {
		t.Errorf("model = %q", req.Model)
	}
	if strings.Count(req.Prompt, text) != 1 {
		t.Error("text must appear exactly once")
	}
	if !strings.Contains(req.Prompt, "Arabic") || !strings.Contains(req.Prompt, "Creative") {
		t.Error("prompt must carry language and tone display names")
	}
}

func TestHumanize_Failures(t *testing.T) {
	tests := []struct {
		name      string
		provider  *fakeProvider
		text      string
		language  common.Language
		tone      common.Tone
		wantCalls int
	}{
		{"provider error", &fakeProvider{err: errors.New("503")}, "text", common.LanguageEnglish, common.ToneCasual, 1},
		{"blank text", &fakeProvider{}, " ", common.LanguageEnglish, common.ToneCasual, 0},
		{"unknown language", &fakeProvider{}, "text", common.Language("Klingon"), common.ToneCasual, 0},
		{"unknown tone", &fakeProvider{}, "text", common.LanguageEnglish, common.Tone("Sarcastic"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New(tt.provider, nil, nil)
			_, err := client.Humanize(context.Background(), tt.text, tt.language, tt.tone)

			var humanizeErr *HumanizeError
			if !errors.As(err, &humanizeErr) {
				t.Fatalf("expected *HumanizeError, got %T (%v)", err, err)
			}
			if err.Error() != HumanizeFailedMessage {
				t.Errorf("Error() = %q", err.Error())
			}
			if tt.provider.calls() != tt.wantCalls {
				t.Errorf("provider calls = %d, want %d", tt.provider.calls(), tt.wantCalls)
			}
		})
	}
}

func TestParseRangePolicy(t *testing.T) {
	tests := map[string]RangePolicy{
		"":            RangePassthrough,
		"passthrough": RangePassthrough,
		"REJECT":      RangeReject,
		" clamp ":     RangeClamp,
	}
	for input, want := range tests {
		got, err := ParseRangePolicy(input)
		if err != nil || got != want {
			t.Errorf("ParseRangePolicy(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseRangePolicy("round"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestDetail(t *testing.T) {
	err := &HumanizeError{Cause: errors.New("status 503")}
	if Detail(err) != "status 503" {
		t.Errorf("Detail() = %q", Detail(err))
	}
	if Detail(&AnalysisError{}) != AnalysisFailedMessage {
		t.Error("Detail without cause should fall back to the message")
	}
	if Detail(nil) != "" {
		t.Error("Detail(nil) should be empty")
	}
}
