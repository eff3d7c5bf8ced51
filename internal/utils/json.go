package utils

import (
	"strings"
)

// SanitizeAIText cleans raw model output before showing it to staff.
// It strips Markdown code fences (```text ... ```) and surrounding
// whitespace that Gemini tends to wrap answers in.
func SanitizeAIText(input string) string {
	cleaned := strings.TrimSpace(input)

	if idx := strings.Index(cleaned, "\n"); strings.HasPrefix(cleaned, "```") && idx != -1 {
		cleaned = cleaned[idx+1:]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}

	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSuffix(cleaned, "```")
	}

	return strings.TrimSpace(cleaned)
}
