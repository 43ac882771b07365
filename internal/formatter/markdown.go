package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/HumanizePro/internal/common"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	now func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{now: time.Now}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	if err := validateReport(report); err != nil {
		return nil, err
	}

	var b strings.Builder
	if report.Operation == OperationAnalyze {
		b.WriteString("# AI Content Analysis\n\n")
	} else {
		b.WriteString("# Humanized Text\n\n")
	}
	fmt.Fprintf(&b, "Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05"))

	if report.Operation == OperationAnalyze {
		f.writeAnalysisTable(&b, *report.Analysis)
	} else {
		f.writeRewrite(&b, report)
	}
	f.writeDetails(&b, report)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeAnalysisTable(b *strings.Builder, result common.AnalysisResult) {
	b.WriteString("## Result\n\n")
	b.WriteString("| Authorship | Share |\n")
	b.WriteString("|------------|-------|\n")
	fmt.Fprintf(b, "| Human | %s |\n", common.FormatPercent(result.HumanPercentage))
	fmt.Fprintf(b, "| AI | %s |\n\n", common.FormatPercent(result.AIPercentage))
	b.WriteString("> " + verdict(result) + "\n\n")
}

func (f *markdownFormatter) writeRewrite(b *strings.Builder, report *Report) {
	fmt.Fprintf(b, "**Language:** %s  \n**Tone:** %s\n\n", report.Language, report.Tone)
	b.WriteString("## Text\n\n")
	b.WriteString(report.Text)
	b.WriteString("\n\n")
}

func (f *markdownFormatter) writeDetails(b *strings.Builder, report *Report) {
	b.WriteString("## Details\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| Backend | %s |\n", modelLabel(report.Provider, report.Model))
	fmt.Fprintf(b, "| Input | %s chars |\n", formatNumber(report.InputSize))
	fmt.Fprintf(b, "| Duration | %s |\n", formatDuration(report.Duration))
}
