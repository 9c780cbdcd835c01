package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yukti-ai/internal/contextutil"
	"yukti-ai/internal/service"
)

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question",
		Long: `Ask YuktiAI a single question and print the answer.

Examples:
  yukti ask "What is Yukti?"
  yukti ask How do goroutines work
  yukti ask --temperature 0.2 "Summarize the CAP theorem"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextutil.WithLogger(cmd.Context(), opts.logger(cmd.ErrOrStderr()))
			sess := opts.newSession()

			resp, err := sess.chat.ProcessChat(ctx, service.ChatRequest{Message: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			if resp.Failed {
				fmt.Fprintln(cmd.ErrOrStderr(), resp.Reply)
				return service.ErrCompletionUnavailable
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Reply)
			return nil
		},
	}
}
