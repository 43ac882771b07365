package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/HumanizePro/internal/common"
)

// Operation names the action a report describes
type Operation string

const (
	OperationAnalyze  Operation = "analyze"
	OperationHumanize Operation = "humanize"
)

// Report is the outcome of one command-line run
type Report struct {
	Operation Operation
	Provider  string
	Model     string
	InputSize int
	Duration  time.Duration

	// Set for analyze
	Analysis *common.AnalysisResult

	// Set for humanize
	Text     string
	Language common.Language
	Tone     common.Tone
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Formats lists the supported output formats
func Formats() []string {
	return []string{"text", "json", "markdown", "csv"}
}

// New returns the formatter for format. Color and emoji only affect text.
func New(format string, color, emoji bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text", "terminal":
		return NewTerminal(color, emoji), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: %s)", format, strings.Join(Formats(), ", "))
	}
}

func validateReport(report *Report) error {
	if report == nil {
		return fmt.Errorf("nothing to format")
	}
	switch report.Operation {
	case OperationAnalyze:
		if report.Analysis == nil {
			return fmt.Errorf("analyze report has no result")
		}
	case OperationHumanize:
	default:
		return fmt.Errorf("unknown operation: %q", report.Operation)
	}
	return nil
}
