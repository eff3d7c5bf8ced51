package ai

import (
	"fmt"
	"strings"
)

func buildSuggestionPrompt(brand, model, issue string, remarks []string) string {
	var b strings.Builder
	b.WriteString("You are assisting a phone repair technician.\n")
	fmt.Fprintf(&b, "Device: %s %s\n", brand, model)
	fmt.Fprintf(&b, "Reported issue: %s\n", issue)
	if len(remarks) > 0 {
		b.WriteString("Technician notes so far:\n")
		for _, r := range remarks {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}
	b.WriteString("\nList the most likely causes and a short ordered repair plan. ")
	b.WriteString("Keep it under 200 words, plain text, no markdown.")
	return b.String()
}
