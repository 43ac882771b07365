package gemini

import (
	"strings"

	"google.golang.org/genai"

	"github.com/yildizm/HumanizePro/internal/ai"
)

// toSchema maps the provider-neutral schema onto the OpenAPI subset
// Gemini accepts for structured output
func toSchema(s *ai.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genai.Type(strings.ToUpper(string(s.Type))),
		Description: s.Description,
		Items:       toSchema(s.Items),
		Required:    s.Required,
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toSchema(prop)
		}
	}

	return out
}
