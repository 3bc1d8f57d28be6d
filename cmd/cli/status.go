package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/visiongate/visiongate/internal/config"
	"github.com/visiongate/visiongate/internal/version"
)

func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show current service configuration",
		Long:  `Display the configured predictor endpoints and whether their prediction keys are set. Keys are masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}

	return cmd
}

func runStatus() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
		return err
	}

	info := version.Get()

	fmt.Printf("visiongate %s\n", info.Version)
	fmt.Printf("   Go: %s (%s)\n", info.GoVersion, info.Platform)
	fmt.Printf("   Port: %s\n", cfg.Port)
	fmt.Println()
	fmt.Println("Predictors:")
	printPredictor("model-gate", cfg.ModelGateURL, cfg.ModelGatePredictionKey)
	printPredictor("supermodel-common", cfg.SuperModelCommonURL, cfg.SuperModelCommonPredictionKey)
	printPredictor("civilian-hybrid", cfg.CivilianHybridURL, cfg.CivilianHybridPredictionKey)
	fmt.Println()

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		fmt.Printf("❌ Missing prediction keys: %s\n", strings.Join(missing, ", "))
		fmt.Println("Classification requests will fail until they are set")
	} else {
		fmt.Println("✅ All prediction keys are set")
	}

	return nil
}

func printPredictor(name, url, key string) {
	fmt.Printf("   %-18s %s (key: %s)\n", name, url, maskKey(key))
}

func maskKey(key string) string {
	if key == "" {
		return "unset"
	}

	if len(key) <= 8 {
		return "********"
	}

	return key[:4] + "..." + key[len(key)-4:]
}
