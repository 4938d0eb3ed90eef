package chat

import (
	"context"
	"fmt"
	"strings"
)

// PersonaGenerator answers without a language model by echoing the retrieved
// passages in Lyn's voice.
type PersonaGenerator struct{}

func (PersonaGenerator) Generate(_ context.Context, query string, passages []string) (string, error) {
	contextStr := "No specific context found."
	if len(passages) > 0 {
		contextStr = strings.Join(passages, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Analysis based on Knowledge Base:**\n\n%s\n\n", contextStr)
	fmt.Fprintf(&b, "**Lyn's Insight:**\n I've processed your query about '%s'. "+
		"Based on the data I have, it seems like we are discussing the core capabilities of this system. "+
		"Is there anything specific about the implementation you'd like to know?", query)
	return b.String(), nil
}
