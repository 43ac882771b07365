package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// csvFormatter formats a report as a header row plus one record
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	if err := validateReport(report); err != nil {
		return nil, err
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Operation",
		"Human Percentage",
		"AI Percentage",
		"Language",
		"Tone",
		"Text",
		"Provider",
		"Model",
		"Duration (ms)",
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	record := []string{string(report.Operation), "", "", "", "", "", report.Provider, report.Model,
		strconv.FormatInt(report.Duration.Milliseconds(), 10)}
	if report.Operation == OperationAnalyze {
		record[1] = formatCSVFloat(report.Analysis.HumanPercentage)
		record[2] = formatCSVFloat(report.Analysis.AIPercentage)
	} else {
		record[3] = report.Language.String()
		record[4] = report.Tone.String()
		record[5] = escapeCSVString(report.Text)
	}

	if err := writer.Write(record); err != nil {
		return nil, fmt.Errorf("failed to write CSV record: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// formatCSVFloat keeps the model's precision without trailing zeros
func formatCSVFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escapeCSVString folds line breaks so each report stays on one row
func escapeCSVString(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
