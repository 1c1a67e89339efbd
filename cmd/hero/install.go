package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/heroguide/internal/config"
	"github.com/sandevgo/heroguide/internal/service/installer"
	"github.com/sandevgo/heroguide/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure the bot and seed the hero table",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		state, err := installer.RunWizard()
		if err != nil {
			return err
		}

		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().
			Str("provider", state.Provider()).
			Bool("telegram", state.UsesTelegram()).
			Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Installation complete! You can now run 'hero start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
