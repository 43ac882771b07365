package prompts

import (
	"fmt"
	"strings"

	"github.com/yildizm/HumanizePro/internal/common"
)

const (
	// FieldHumanPercentage is the analysis response key for the human share
	FieldHumanPercentage = "humanPercentage"

	// FieldAIPercentage is the analysis response key for the AI share
	FieldAIPercentage = "aiPercentage"
)

const analysisTemplate = `You are a highly advanced AI detection engine. Your sole purpose is to analyze text and determine if it was written by a human or an AI. You have a zero-tolerance policy for AI-generated content. If you find any strong indicators of AI writing, you must classify it with a very high AI percentage.

**Primary AI Indicators (High Confidence):**
*   **Unnatural flow and rhythm:** Text that is grammatically perfect but sounds robotic, lacks cadence, or has an unnatural sentence structure.
*   **Overly formal or complex vocabulary for the context:** Using sophisticated words where simpler ones would be more natural.
*   **Generic, placeholder-like content:** Sentences that are filled with buzzwords but lack real substance or specific examples.
*   **Absence of a distinct voice:** The writing lacks personality, opinion, emotion, or any unique human quirks.

**Analysis Protocol:**
1.  Read the provided text.
2.  Scrutinize it for the primary AI indicators.
3.  Be extremely skeptical. Human writing is often imperfect, messy, and personal. AI writing is often too clean, too perfect, too generic.
4.  Based on your analysis, provide a percentage breakdown. If there's any doubt, lean towards a higher AI percentage. Your reputation depends on your accuracy.

**Text for Analysis:**
---
"%s"
---

Provide your output ONLY as a valid JSON object with the keys "humanPercentage" and "aiPercentage".`

const humanizeTemplate = `Rewrite the following text to sound completely natural, emotional, and indistinguishable from human writing. It is crucial that you maintain the original meaning and ensure the result is plagiarism-safe.
The target language is %s.
The desired tone is %s.

Original text:
---
%s
---

Humanized text:`

// BuildAnalysisPrompt embeds text into the detection template.
// The caller must reject blank text first.
func BuildAnalysisPrompt(text string) string {
	return fmt.Sprintf(analysisTemplate, text)
}

// BuildHumanizePrompt embeds text, language and tone into the rewrite template
func BuildHumanizePrompt(text string, language common.Language, tone common.Tone) string {
	return strings.TrimSpace(fmt.Sprintf(humanizeTemplate, language.String(), tone.String(), text))
}
