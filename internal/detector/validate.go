package detector

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/yildizm/HumanizePro/internal/ai"
	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/HumanizePro/internal/prompts"
)

// RangePolicy decides what happens to percentages outside [0, 100]
type RangePolicy string

const (
	// RangePassthrough returns values exactly as the model sent them
	RangePassthrough RangePolicy = "passthrough"

	// RangeReject fails validation for out-of-range values
	RangeReject RangePolicy = "reject"

	// RangeClamp pulls out-of-range values to the nearest bound
	RangeClamp RangePolicy = "clamp"
)

// ParseRangePolicy parses a policy name; empty means passthrough
func ParseRangePolicy(s string) (RangePolicy, error) {
	switch RangePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RangePassthrough:
		return RangePassthrough, nil
	case RangeReject:
		return RangeReject, nil
	case RangeClamp:
		return RangeClamp, nil
	default:
		return "", fmt.Errorf("unsupported range policy: %q (must be one of: passthrough, reject, clamp)", s)
	}
}

// ParseAnalysis validates a raw analysis response. The body must be a
// JSON object whose two percentage fields are JSON numbers; anything
// else is a validation error.
func ParseAnalysis(content string, policy RangePolicy) (common.AnalysisResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &fields); err != nil {
		return common.AnalysisResult{}, ai.NewValidationError("response", truncate(content), "response is not a JSON object: "+err.Error())
	}
	if fields == nil {
		return common.AnalysisResult{}, ai.NewValidationError("response", truncate(content), "response is not a JSON object")
	}

	human, err := numberField(fields, prompts.FieldHumanPercentage)
	if err != nil {
		return common.AnalysisResult{}, err
	}

	aiShare, err := numberField(fields, prompts.FieldAIPercentage)
	if err != nil {
		return common.AnalysisResult{}, err
	}

	result := common.AnalysisResult{HumanPercentage: human, AIPercentage: aiShare}

	switch policy {
	case RangeReject:
		if !inRange(human) {
			return common.AnalysisResult{}, ai.NewValidationError(prompts.FieldHumanPercentage, fmt.Sprint(human), "value outside [0, 100]")
		}
		if !inRange(aiShare) {
			return common.AnalysisResult{}, ai.NewValidationError(prompts.FieldAIPercentage, fmt.Sprint(aiShare), "value outside [0, 100]")
		}
	case RangeClamp:
		result.HumanPercentage = clamp(human)
		result.AIPercentage = clamp(aiShare)
	}

	return result, nil
}

func numberField(fields map[string]json.RawMessage, key string) (float64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, ai.NewValidationError(key, "", "field is missing")
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, ai.NewValidationError(key, string(raw), "field is not valid JSON")
	}

	n, ok := v.(float64)
	if !ok {
		return 0, ai.NewValidationError(key, string(raw), "field is not a number")
	}
	return n, nil
}

func inRange(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= 100
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func truncate(s string) string {
	const limit = 120
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
