package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/heroguide/pkg/log"
	"github.com/sandevgo/heroguide/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the bot and its background workers",
	Long:  `Loads the hero table, then starts the configured transports (Telegram, console) together with the refresh and sweep schedules.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting heroguide")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		// Blocks until the signal context is done
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("heroguide has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
