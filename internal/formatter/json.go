package formatter

import (
	"encoding/json"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	if err := validateReport(report); err != nil {
		return nil, err
	}

	output := &JSONOutput{
		Operation:  string(report.Operation),
		Provider:   report.Provider,
		Model:      report.Model,
		InputSize:  report.InputSize,
		DurationMS: report.Duration.Milliseconds(),
	}
	if report.Operation == OperationAnalyze {
		output.HumanPercentage = &report.Analysis.HumanPercentage
		output.AIPercentage = &report.Analysis.AIPercentage
	} else {
		text := report.Text
		output.Text = &text
		output.Language = report.Language.String()
		output.Tone = report.Tone.String()
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput is the machine-readable report. The percentage keys match
// the HTTP API so the two can be consumed the same way.
type JSONOutput struct {
	Operation       string   `json:"operation"`
	HumanPercentage *float64 `json:"humanPercentage,omitempty"`
	AIPercentage    *float64 `json:"aiPercentage,omitempty"`
	Text            *string  `json:"text,omitempty"`
	Language        string   `json:"language,omitempty"`
	Tone            string   `json:"tone,omitempty"`
	Provider        string   `json:"provider,omitempty"`
	Model           string   `json:"model,omitempty"`
	InputSize       int      `json:"input_size"`
	DurationMS      int64    `json:"duration_ms"`
}
