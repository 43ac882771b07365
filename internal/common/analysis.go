package common

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// AnalysisResult is the model's estimate of how a text was authored.
// Values are percentages; the model is asked for [0, 100] but nothing
// forces them to sum to 100.
type AnalysisResult struct {
	HumanPercentage float64 `json:"humanPercentage" yaml:"humanPercentage"`
	AIPercentage    float64 `json:"aiPercentage" yaml:"aiPercentage"`
}

// byteOrderMark counts as whitespace when deciding whether input is blank
const byteOrderMark = '\uFEFF'

// IsBlank reports whether text has no content once whitespace and byte
// order marks are trimmed
func IsBlank(text string) bool {
	return strings.TrimFunc(text, isBlankRune) == ""
}

func isBlankRune(r rune) bool {
	return unicode.IsSpace(r) || r == byteOrderMark
}

// FormatPercent renders a percentage rounded half up, the way the result
// panel has always shown it ("72.5" becomes "73%")
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", math.Floor(v+0.5))
}
