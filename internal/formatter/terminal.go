package formatter

import (
	"strings"

	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter
func NewTerminal(color, emoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = emoji
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	if err := validateReport(report); err != nil {
		return nil, err
	}

	var b strings.Builder
	if report.Operation == OperationAnalyze {
		f.writeHeader(&b, "AI Content Analysis")
		f.writeShares(&b, *report.Analysis)
		f.writeSummary(&b, *report.Analysis)
	} else {
		f.writeHeader(&b, "Humanized Text")
		f.writeRewrite(&b, report)
	}
	f.writeRunDetails(&b, report)

	return []byte(b.String()), nil
}

// writeHeader writes a boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder, header string) {
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeShares lists both percentages with a bar each
func (f *terminalFormatter) writeShares(b *strings.Builder, result common.AnalysisResult) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Authorship\n")

	items := []termfmt.TreeItem{
		{Label: "Human", Value: common.FormatPercent(result.HumanPercentage) + " " + createShareBar(result.HumanPercentage, f.opts)},
		{Label: "AI", Value: common.FormatPercent(result.AIPercentage) + " " + createShareBar(result.AIPercentage, f.opts), Last: true},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeSummary(b *strings.Builder, result common.AnalysisResult) {
	symbol := termfmt.GetEmoji("summary", f.opts)
	b.WriteString(symbol + " " + verdict(result) + "\n\n")
}

// writeRewrite prints the options used and then the text verbatim
func (f *terminalFormatter) writeRewrite(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " Rewrite\n")

	items := []termfmt.TreeItem{
		{Label: "Language", Value: report.Language.String()},
		{Label: "Tone", Value: report.Tone.String(), Last: true},
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")

	if report.Text == "" {
		b.WriteString("(the model returned no text)\n\n")
		return
	}
	b.WriteString(report.Text)
	if !strings.HasSuffix(report.Text, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeRunDetails(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("ai", f.opts)
	b.WriteString(symbol + " Model\n")

	items := []termfmt.TreeItem{
		{Label: "Backend", Value: modelLabel(report.Provider, report.Model)},
		{Label: "Input", Value: formatNumber(report.InputSize) + " chars"},
		{Label: "Duration", Value: formatDuration(report.Duration), Last: true},
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}
