package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/marketconnect/riskmap-agent/app/app"
	"github.com/marketconnect/riskmap-agent/app/internal/config"
	"github.com/marketconnect/riskmap-agent/app/internal/logger"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve sessions, usage stats and the zone catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), config.Usage())
				return err
			}
			logger.Configure(cfg.Log.Level, os.Stderr)
			if cfg.IsDebug {
				log.SetLevel(log.DebugLevel)
			}

			a, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					log.Error("error closing application", "err", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}
}
