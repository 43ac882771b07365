package formatter

import (
	"fmt"
	"time"

	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/go-termfmt"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// shareFraction maps a percentage onto the [0, 1] range the bars expect
func shareFraction(percent float64) float64 {
	switch {
	case percent < 0:
		return 0
	case percent > 100:
		return 1
	default:
		return percent / 100
	}
}

// createShareBar draws a percentage as a go-termfmt confidence bar
func createShareBar(percent float64, opts *termfmt.TerminalOptions) string {
	return termfmt.CreateConfidenceBar(shareFraction(percent), opts)
}

// verdict summarizes a result in one sentence
func verdict(result common.AnalysisResult) string {
	return fmt.Sprintf("Analysis complete. Estimated %s AI content.", common.FormatPercent(result.AIPercentage))
}

// formatDuration rounds to milliseconds; zero means unknown
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "N/A"
	}
	return d.Round(time.Millisecond).String()
}

// modelLabel joins provider and model for display
func modelLabel(provider, model string) string {
	switch {
	case provider == "" && model == "":
		return "N/A"
	case model == "":
		return provider
	case provider == "":
		return model
	}
	return provider + "/" + model
}
