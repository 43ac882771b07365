package openai

import (
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/yildizm/HumanizePro/internal/ai"
)

// toDefinition converts a provider-neutral schema into the go-openai form.
// Strict structured output requires additionalProperties=false on objects.
func toDefinition(s *ai.Schema) jsonschema.Definition {
	def := jsonschema.Definition{
		Type:        jsonschema.DataType(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}

	if len(s.Properties) > 0 {
		def.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for name, prop := range s.Properties {
			def.Properties[name] = toDefinition(prop)
		}
	}

	if s.Items != nil {
		items := toDefinition(s.Items)
		def.Items = &items
	}

	if s.Type == ai.SchemaObject {
		def.AdditionalProperties = false
	}

	return def
}

func buildMessages(systemPrompt, prompt string) []goopenai.ChatCompletionMessage {
	messages := make([]goopenai.ChatCompletionMessage, 0, 2)

	if systemPrompt != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}

	return append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: prompt,
	})
}

func toAIResponse(resp *goopenai.ChatCompletionResponse, requestID string) *ai.CompletionResponse {
	response := &ai.CompletionResponse{
		RequestID: requestID,
		Model:     resp.Model,
		CreatedAt: time.Unix(resp.Created, 0),
		Usage: &ai.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}

	if len(resp.Choices) > 0 {
		choice := resp.Choices[0]
		response.Content = choice.Message.Content
		response.FinishReason = string(choice.FinishReason)
	}

	return response
}
