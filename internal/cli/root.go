// Package cli provides the command-line interface for YuktiAI.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"yukti-ai/internal/config"
	"yukti-ai/internal/conversation"
	"yukti-ai/internal/ollama"
	"yukti-ai/internal/service"
)

// Version is set at build time.
var Version = "1.0.0"

// options holds the global flags shared by every subcommand.
type options struct {
	baseURL     string
	model       string
	temperature float64
	maxLength   int
	verbose     bool
}

// session is a single-user conversation wired to the completion endpoint.
type session struct {
	client *ollama.Client
	store  *conversation.Store
	chat   service.ChatService
}

// NewRootCmd builds the yukti command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "yukti",
		Short: "Chat with YuktiAI from the terminal",
		Long: `YuktiAI is an AI assistant backed by a local Ollama server.

The CLI shares its prompt, built-in commands and reply formatting with the
web service, so answers look the same in both places.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.baseURL != "" && opts.model != "" {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if opts.baseURL == "" {
				opts.baseURL = cfg.OllamaBaseURL
			}
			if opts.model == "" {
				opts.model = cfg.OllamaModel
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", "", "Ollama base URL (default $OLLAMA_BASE_URL or http://localhost:11434)")
	flags.StringVar(&opts.model, "model", "", "model name (default $OLLAMA_MODEL or llama3.2:3b)")
	flags.Float64Var(&opts.temperature, "temperature", conversation.DefaultTemperature, "sampling temperature")
	flags.IntVar(&opts.maxLength, "max-length", conversation.DefaultMaxLength, "maximum tokens to generate")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newAskCmd(opts))
	rootCmd.AddCommand(newChatCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// newSession creates a fresh conversation using the flag settings.
func (o *options) newSession() *session {
	client := ollama.NewClient(o.baseURL, o.model)
	store := conversation.NewStore()
	store.UpdateSettings(conversation.SettingsPatch{
		Temperature: &o.temperature,
		MaxLength:   &o.maxLength,
	})
	orch := service.NewOrchestrator(client, store)
	return &session{
		client: client,
		store:  store,
		chat:   service.NewChatService(orch, store),
	}
}

// logger returns a stderr logger, quiet unless --verbose is set.
func (o *options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
