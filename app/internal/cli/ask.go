package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
	"github.com/marketconnect/riskmap-agent/app/internal/agent"
	"github.com/marketconnect/riskmap-agent/app/internal/logger"
)

func newAskCommand(opts *rootOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return entities.ErrEmptyQuestion
			}

			cfg, err := readConfig(opts)
			if err != nil {
				return err
			}
			logger.Configure(cfg.Log.Level, cmd.ErrOrStderr())

			asker, _, err := agent.New(cfg)
			if err != nil {
				return err
			}

			answer, err := asker.Ask(cmd.Context(), question)
			if err != nil {
				return err
			}
			return printAnswer(cmd.OutOrStdout(), answer, raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the answer without markdown rendering")
	return cmd
}

func printAnswer(w io.Writer, answer *entities.Answer, raw bool) error {
	text := answer.Text
	if !raw {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		if text, err = renderer.Render(answer.Text); err != nil {
			return fmt.Errorf("failed to render answer: %w", err)
		}
	}

	fmt.Fprintln(w, strings.TrimRight(text, "\n"))
	fmt.Fprintf(w, "Prompt: %d | Resp: %d | Total: %d\n",
		answer.Usage.PromptTokens, answer.Usage.CompletionTokens, answer.Usage.TotalTokens)
	return nil
}

