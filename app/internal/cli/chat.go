package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/marketconnect/riskmap-agent/app/internal/agent"
	"github.com/marketconnect/riskmap-agent/app/internal/logger"
	"github.com/marketconnect/riskmap-agent/app/internal/tui"
)

func newChatCommand(opts *rootOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive risk map and question panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(opts)
			if err != nil {
				return err
			}
			closer, err := logger.ToFile(cfg.Log.Level, logFile)
			if err != nil {
				return err
			}
			defer closer.Close()

			asker, info, err := agent.New(cfg)
			if err != nil {
				return err
			}
			log.Info("chat session started", "provider", info.Provider, "model", info.Model)
			return tui.Run(asker, info, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of discarding them")
	return cmd
}
