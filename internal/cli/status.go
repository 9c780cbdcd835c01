package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const statusTimeout = 5 * time.Second

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that Ollama is running and the model is pulled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), statusTimeout)
			defer cancel()

			client := opts.newSession().client
			out := cmd.OutOrStdout()

			ok, err := client.HasModel(ctx)
			if err != nil {
				fmt.Fprintf(out, "Ollama:  not reachable at %s\n", opts.baseURL)
				return fmt.Errorf("ollama not reachable: %w", err)
			}
			fmt.Fprintf(out, "Ollama:  connected (%s)\n", opts.baseURL)

			if !ok {
				fmt.Fprintf(out, "Model:   %s not found, run: ollama pull %s\n", opts.model, opts.model)
				return fmt.Errorf("model %s not available", opts.model)
			}
			fmt.Fprintf(out, "Model:   %s available\n", opts.model)
			return nil
		},
	}
}
