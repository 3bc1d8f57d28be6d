package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/visiongate/visiongate/internal/config"
	"github.com/visiongate/visiongate/internal/initialization"
	"github.com/visiongate/visiongate/internal/server"
	"github.com/visiongate/visiongate/internal/version"
)

func NewStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the classification service",
		Long:  `Start the HTTP server that accepts image batches and classifies them through the two-stage predictor pipeline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart()
		},
	}

	return cmd
}

func runStart() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Str("version", version.GetShortVersion()).Msg("Starting visiongate service")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	deps, err := initialization.BuildServerDependencies(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build server dependencies")
	}

	app := server.NewHTTPServer(ctx, server.HTTPServerDependencies{
		ClassifyController: deps.ClassifyController,
	})

	log.Info().Str("address", cfg.Address()).Msg("Listening for classification requests")

	if err := app.Listen(cfg.Address(), fiber.ListenConfig{
		GracefulContext:       ctx,
		DisableStartupMessage: true,
	}); err != nil {
		log.Error().Err(err).Msg("HTTP server failed")
	}

	log.Info().Msg("Classification service stopped")
	return nil
}
