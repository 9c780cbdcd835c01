package service

import "strings"

// Effect is a side effect a built-in command applied to the conversation.
type Effect int

const (
	EffectNone Effect = iota
	// EffectCleared means the conversation history was wiped.
	EffectCleared
)

const (
	// AboutText is the static capability description returned for identity questions.
	AboutText = `**About YuktiAI:**

YuktiAI is an intelligent AI assistant that provides comprehensive answers without external redirections.

**Key Capabilities:**
• Answer questions across multiple domains
• Provide coding solutions and explanations
• Help with academic and business queries
• Maintain conversation context
• Format responses professionally

**Current Limitations:**
• Cannot browse the internet
• Cannot access external APIs
• Knowledge cutoff applies
• Cannot perform real-time data retrieval`

	// CapabilitiesText answers "what can you do" style questions.
	CapabilitiesText = "I can help you with a wide range of topics including general knowledge, coding, business advice, academic questions, explanations, tutorials, and more. I provide detailed, well-formatted responses without redirecting you to external sources."

	// ClearedText confirms that the conversation was cleared.
	ClearedText = "Chat history has been cleared!"
)

// Command is a locally handled reply to a recognized phrasing.
type Command struct {
	// Name identifies the command in logs and responses.
	Name string
	// Match is called with the trimmed, lower-cased user text.
	Match func(normalized string) bool
	// Handle produces the canned reply and applies any side effect.
	Handle func(store ConversationStore) (string, Effect)
}

// DefaultCommands returns the built-in commands in priority order.
// The first matching command wins, so order matters.
func DefaultCommands() []Command {
	return []Command{
		{
			Name:  "about",
			Match: containsAny("what is yukti", "about yukti", "who are you"),
			Handle: func(ConversationStore) (string, Effect) {
				return AboutText, EffectNone
			},
		},
		{
			Name:  "clear",
			Match: containsAll("clear", "chat"),
			Handle: func(store ConversationStore) (string, Effect) {
				store.Clear()
				return ClearedText, EffectCleared
			},
		},
		{
			Name:  "capabilities",
			Match: containsAny("what can you do", "your capabilities"),
			Handle: func(ConversationStore) (string, Effect) {
				return CapabilitiesText, EffectNone
			},
		},
	}
}

// MatchCommand returns the first command whose predicate accepts text.
func MatchCommand(commands []Command, text string) (Command, bool) {
	normalized := normalize(text)
	for _, cmd := range commands {
		if cmd.Match(normalized) {
			return cmd, true
		}
	}
	return Command{}, false
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func containsAny(phrases ...string) func(string) bool {
	return func(s string) bool {
		for _, p := range phrases {
			if strings.Contains(s, p) {
				return true
			}
		}
		return false
	}
}

func containsAll(words ...string) func(string) bool {
	return func(s string) bool {
		for _, w := range words {
			if !strings.Contains(s, w) {
				return false
			}
		}
		return true
	}
}
