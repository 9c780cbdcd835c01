package service

import (
	"strings"

	"yukti-ai/internal/conversation"
)

const (
	// ContextMessages is how many stored messages are replayed into each prompt.
	ContextMessages = 4

	// TopP and TopK are fixed sampling parameters sent with every completion.
	TopP = 0.9
	TopK = 40

	// EmptyResponseText replaces a blank completion.
	EmptyResponseText = "I apologize, but I couldn't generate a response."

	assistantMarker = "YuktiAI:"
)

// systemPrompt is the persona preamble sent ahead of every delegated question.
const systemPrompt = `You are YuktiAI, an intelligent and helpful AI assistant. You provide accurate, well-structured, and professional responses across all domains.

IMPORTANT GUIDELINES:
- You are YuktiAI - a standalone AI assistant
- NEVER redirect users to Google, other search engines, or external AI tools
- Provide complete, comprehensive answers based on your knowledge
- Use clear formatting with bullets, numbers, or sections when appropriate
- If uncertain, acknowledge limitations rather than making things up
- Stay professional and helpful at all times`

// FormatContext serializes history as "role: content" lines, oldest first.
func FormatContext(history []conversation.Message) string {
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, string(msg.Role)+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt assembles the persona preamble, the recent history, the new
// question and the assistant turn marker into a single prompt.
func BuildPrompt(history []conversation.Message, question string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nPrevious conversations:\n")
	b.WriteString(FormatContext(history))
	b.WriteString("\n\nCurrent question: ")
	b.WriteString(question)
	b.WriteString("\n\n")
	b.WriteString(assistantMarker)
	return b.String()
}

// FormatResponse trims a raw completion and makes sure it ends with punctuation.
// Blank completions become EmptyResponseText.
func FormatResponse(raw string) string {
	formatted := strings.TrimSpace(raw)
	if formatted == "" {
		return EmptyResponseText
	}
	switch formatted[len(formatted)-1] {
	case '.', '!', '?', ':':
		return formatted
	}
	return formatted + "."
}
