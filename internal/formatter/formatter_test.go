package formatter

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/HumanizePro/internal/common"
)

func analyzeReport() *Report {
	return &Report{
		Operation: OperationAnalyze,
		Provider:  "gemini",
		Model:     "gemini-2.5-pro",
		InputSize: 1234,
		Duration:  1500 * time.Millisecond,
		Analysis:  &common.AnalysisResult{HumanPercentage: 72.5, AIPercentage: 27.5},
	}
}

func humanizeReport() *Report {
	return &Report{
		Operation: OperationHumanize,
		Provider:  "openai",
		Model:     "gpt-4o",
		InputSize: 42,
		Duration:  2 * time.Second,
		Text:      "Honestly, it went better than\nwe hoped.",
		Language:  common.LanguageArabic,
		Tone:      common.ToneFormal,
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"text", false},
		{"JSON", false},
		{"md", false},
		{"markdown", false},
		{"csv", false},
		{"xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := New(tt.format, false, false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if !tt.wantErr && f == nil {
				t.Fatal("expected a formatter")
			}
		})
	}
}

func TestFormattersRejectIncompleteReports(t *testing.T) {
	formatters := map[string]Formatter{
		"text":     NewTerminal(false, false),
		"json":     NewJSON(),
		"markdown": NewMarkdown(),
		"csv":      NewCSV(),
	}
	bad := []*Report{
		nil,
		{Operation: OperationAnalyze},
		{Operation: "summarize"},
	}

	for name, f := range formatters {
		for _, report := range bad {
			if _, err := f.Format(report); err == nil {
				t.Errorf("%s: expected error for %+v", name, report)
			}
		}
	}
}

func TestTerminalAnalyze(t *testing.T) {
	out, err := NewTerminal(false, false).Format(analyzeReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	output := string(out)
	for _, want := range []string{
		"AI Content Analysis",
		"Human", "73%",
		"AI", "28%",
		"Estimated 28% AI content",
		"gemini/gemini-2.5-pro",
		"1,234 chars",
		"1.5s",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestTerminalHumanizeKeepsTextVerbatim(t *testing.T) {
	report := humanizeReport()
	out, err := NewTerminal(false, false).Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	output := string(out)
	for _, want := range []string{"Humanized Text", "Arabic", "Formal", report.Text} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestTerminalHumanizeEmptyText(t *testing.T) {
	report := humanizeReport()
	report.Text = ""

	out, err := NewTerminal(false, false).Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(out), "no text") {
		t.Errorf("expected a note for empty text:\n%s", out)
	}
}

func TestJSONAnalyze(t *testing.T) {
	out, err := NewJSON().Format(analyzeReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["humanPercentage"] != 72.5 || decoded["aiPercentage"] != 27.5 {
		t.Errorf("unexpected percentages: %v", decoded)
	}
	if decoded["operation"] != "analyze" || decoded["duration_ms"] != float64(1500) {
		t.Errorf("unexpected metadata: %v", decoded)
	}
	if _, ok := decoded["text"]; ok {
		t.Error("analyze output must not carry a text field")
	}
}

func TestJSONHumanizeKeepsEmptyText(t *testing.T) {
	report := humanizeReport()
	report.Text = ""

	out, err := NewJSON().Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if text, ok := decoded["text"]; !ok || text != "" {
		t.Errorf("expected an explicit empty text, got %v", decoded)
	}
	if _, ok := decoded["humanPercentage"]; ok {
		t.Error("humanize output must not carry percentages")
	}
	if decoded["language"] != "Arabic" || decoded["tone"] != "Formal" {
		t.Errorf("unexpected options: %v", decoded)
	}
}

func TestMarkdown(t *testing.T) {
	f := &markdownFormatter{now: func() time.Time {
		return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	}}

	out, err := f.Format(analyzeReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	output := string(out)
	for _, want := range []string{"# AI Content Analysis", "Generated: 2024-03-01 09:30:00", "| Human | 73% |", "| AI | 28% |"} {
		if !strings.Contains(output, want) {
			t.Errorf("markdown missing %q:\n%s", want, output)
		}
	}

	out, err = f.Format(humanizeReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	output = string(out)
	for _, want := range []string{"# Humanized Text", "**Language:** Arabic", "**Tone:** Formal", "we hoped."} {
		if !strings.Contains(output, want) {
			t.Errorf("markdown missing %q:\n%s", want, output)
		}
	}
}

func TestCSV(t *testing.T) {
	tests := []struct {
		name   string
		report *Report
		check  func(t *testing.T, record []string)
	}{
		{
			name:   "analyze",
			report: analyzeReport(),
			check: func(t *testing.T, record []string) {
				if record[1] != "72.5" || record[2] != "27.5" || record[5] != "" {
					t.Errorf("unexpected record %q", record)
				}
			},
		},
		{
			name:   "humanize",
			report: humanizeReport(),
			check: func(t *testing.T, record []string) {
				if record[1] != "" || record[3] != "Arabic" || record[4] != "Formal" {
					t.Errorf("unexpected record %q", record)
				}
				if strings.Contains(record[5], "\n") {
					t.Errorf("text should be folded onto one line: %q", record[5])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewCSV().Format(tt.report)
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
			if err != nil {
				t.Fatalf("invalid CSV: %v", err)
			}
			if len(rows) != 2 {
				t.Fatalf("expected header plus one record, got %d rows", len(rows))
			}
			if len(rows[0]) != len(rows[1]) {
				t.Fatalf("header has %d columns, record %d", len(rows[0]), len(rows[1]))
			}
			tt.check(t, rows[1])
		})
	}
}

func TestHelpers(t *testing.T) {
	if got := formatNumber(1234567); got != "1,234,567" {
		t.Errorf("formatNumber = %q", got)
	}
	if got := formatNumber(999); got != "999" {
		t.Errorf("formatNumber = %q", got)
	}
	if got := shareFraction(-3); got != 0 {
		t.Errorf("shareFraction(-3) = %v", got)
	}
	if got := shareFraction(140); got != 1 {
		t.Errorf("shareFraction(140) = %v", got)
	}
	if got := shareFraction(25); got != 0.25 {
		t.Errorf("shareFraction(25) = %v", got)
	}
	if got := formatDuration(0); got != "N/A" {
		t.Errorf("formatDuration(0) = %q", got)
	}
	if got := modelLabel("ollama", ""); got != "ollama" {
		t.Errorf("modelLabel = %q", got)
	}
}
