package prompts

import "github.com/yildizm/HumanizePro/internal/ai"

// AnalysisSchema is the response shape declared to the provider for
// detection requests. Providers may ignore it; the detector re-validates.
func AnalysisSchema() *ai.Schema {
	return &ai.Schema{
		Type: ai.SchemaObject,
		Properties: map[string]*ai.Schema{
			FieldHumanPercentage: {Type: ai.SchemaNumber},
			FieldAIPercentage:    {Type: ai.SchemaNumber},
		},
		Required: []string{FieldHumanPercentage, FieldAIPercentage},
	}
}
