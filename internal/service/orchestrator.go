package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completion_client.go -package=mocks yukti-ai/internal/service CompletionClient

import (
	"context"
	"strings"
	"sync/atomic"

	"yukti-ai/internal/contextutil"
	"yukti-ai/internal/conversation"
	"yukti-ai/internal/ollama"
)

// CompletionClient generates text from a prompt.
// This interface is defined from the service layer's perspective (consumer-first).
type CompletionClient interface {
	Generate(ctx context.Context, prompt string, opts ollama.Options) (string, error)
}

// ConversationStore is the part of the conversation store the orchestrator reads.
// Clear is only used by the clear command.
type ConversationStore interface {
	RecentContext(n int) []conversation.Message
	Settings() conversation.Settings
	Clear()
}

// Reply is the orchestrator's answer to one user utterance.
type Reply struct {
	Text string
	// Command is the name of the built-in command that answered, empty when delegated.
	Command string
	Effect  Effect
}

// Builtin reports whether the reply came from a built-in command.
func (r Reply) Builtin() bool {
	return r.Command != ""
}

// Orchestrator turns user text into a displayable assistant reply, either from a
// built-in command or by delegating to the completion endpoint.
// At most one Respond call is in flight; others are rejected with ErrBusy.
type Orchestrator struct {
	completion CompletionClient
	store      ConversationStore
	commands   []Command
	inFlight   atomic.Bool
}

// NewOrchestrator creates an orchestrator with the default built-in commands.
func NewOrchestrator(completion CompletionClient, store ConversationStore) *Orchestrator {
	return NewOrchestratorWithCommands(completion, store, DefaultCommands())
}

// NewOrchestratorWithCommands creates an orchestrator with a custom command table.
func NewOrchestratorWithCommands(completion CompletionClient, store ConversationStore, commands []Command) *Orchestrator {
	return &Orchestrator{
		completion: completion,
		store:      store,
		commands:   commands,
	}
}

// Busy reports whether a response is currently being generated.
func (o *Orchestrator) Busy() bool {
	return o.inFlight.Load()
}

// Respond answers userText. It does not append anything to the store; the caller
// records both messages.
func (o *Orchestrator) Respond(ctx context.Context, userText string) (Reply, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return Reply{}, ErrBusy
	}
	defer o.inFlight.Store(false)

	logger := contextutil.LoggerFromContext(ctx)
	text := strings.TrimSpace(userText)

	if cmd, ok := MatchCommand(o.commands, text); ok {
		reply, effect := cmd.Handle(o.store)
		logger.InfoContext(ctx, "answered with built-in command", "command", cmd.Name)
		return Reply{Text: reply, Command: cmd.Name, Effect: effect}, nil
	}

	prompt := BuildPrompt(o.store.RecentContext(ContextMessages), text)
	settings := o.store.Settings()
	opts := ollama.Options{
		Temperature: settings.Temperature,
		NumPredict:  settings.MaxLength,
		TopP:        TopP,
		TopK:        TopK,
	}

	logger.DebugContext(ctx, "requesting completion", "prompt_length", len(prompt), "temperature", opts.Temperature, "num_predict", opts.NumPredict)
	raw, err := o.completion.Generate(ctx, prompt, opts)
	if err != nil {
		logger.ErrorContext(ctx, "completion request failed", "error", err)
		return Reply{}, completionUnavailable(err)
	}

	formatted := FormatResponse(raw)
	logger.InfoContext(ctx, "completion received", "raw_length", len(raw), "reply_length", len(formatted))
	return Reply{Text: formatted}, nil
}
