package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yukti-ai/internal/contextutil"
	"yukti-ai/internal/service"
)

func newChatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long: `Start an interactive conversation. Each line is sent as one message and the
conversation is kept for context until you exit.

Type "exit" or "quit" (or send EOF) to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextutil.WithLogger(cmd.Context(), opts.logger(cmd.ErrOrStderr()))
			sess := opts.newSession()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "YuktiAI (%s). Type \"exit\" to quit.\n", opts.model)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}

				line := strings.TrimSpace(scanner.Text())
				switch strings.ToLower(line) {
				case "":
					continue
				case "exit", "quit":
					return nil
				}

				resp, err := sess.chat.ProcessChat(ctx, service.ChatRequest{Message: line})
				if err != nil {
					var validationErr *service.ValidationError
					if errors.As(err, &validationErr) {
						fmt.Fprintln(out, validationErr.Message)
						continue
					}
					return err
				}
				fmt.Fprintf(out, "YuktiAI: %s\n\n", resp.Reply)
			}
		},
	}
}
