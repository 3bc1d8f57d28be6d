package config

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/visiongate/visiongate/pkg/domain"
)

// Config holds all service configuration
type Config struct {
	// HTTP server settings
	Port string

	// Stage 1 binary gate (Model vs NOT Model)
	ModelGateURL           string
	ModelGatePredictionKey string

	// Stage 2 branch taken when the gate says the batch depicts a model
	SuperModelCommonURL           string
	SuperModelCommonPredictionKey string

	// Stage 2 branch taken otherwise
	CivilianHybridURL           string
	CivilianHybridPredictionKey string
}

// LoadConfig loads configuration from files and environment variables.
//
// Missing prediction keys are deliberately not a load error: the service still
// starts and reports them per request, so keys can be rotated without a
// restart ordering dance.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Configure environment variables - do this BEFORE reading config
	v.AutomaticEnv()

	// Set up explicit mappings between struct fields and environment variables
	envMappings := map[string]string{
		"Port":                          "PORT",
		"ModelGateURL":                  "MODEL_GATE_URL",
		"ModelGatePredictionKey":        "MODEL_GATE_PREDICTION_KEY",
		"SuperModelCommonURL":           "SUPERMODEL_COMMON_URL",
		"SuperModelCommonPredictionKey": "SUPERMODEL_COMMON_PREDICTION_KEY",
		"CivilianHybridURL":             "CIVILIAN_HYBRID_URL",
		"CivilianHybridPredictionKey":   "CIVILIAN_HYBRID_PREDICTION_KEY",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	// Configure the config file settings
	v.SetConfigName("visiongate_config") // Name of config file without extension
	v.SetConfigType("yaml")              // Type of config file
	// Add search paths for the config file
	v.AddConfigPath(".")                 // Current working directory
	v.AddConfigPath("./config")          // Config subdirectory
	v.AddConfigPath("$HOME/.visiongate") // Home directory

	// Try to read from config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, will just use environment variables and defaults
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	// Unmarshal config into struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if missing := config.MissingCredentials(); len(missing) > 0 {
		log.Warn().
			Strs("predictors", missing).
			Msg("Prediction keys missing, classification requests will fail until they are set")
	}

	log.Debug().Msgf("Config loaded: Port=%s, ModelGateURL=%s", config.Port, config.ModelGateURL)

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server settings
	v.SetDefault("Port", "3000")

	// Predictor endpoints. Keys have no defaults on purpose.
	v.SetDefault("ModelGateURL", "https://southcentralus.api.cognitive.microsoft.com/customvision/v1.1/Prediction/9f3c5e21-7b4a-4e0d-8a52-c1d4b8e67f30/url")
	v.SetDefault("SuperModelCommonURL", "https://southcentralus.api.cognitive.microsoft.com/customvision/v1.1/Prediction/6d82a4c9-1e5f-4b3a-9c07-5a8e2f4d6b91/url")
	v.SetDefault("CivilianHybridURL", "https://southcentralus.api.cognitive.microsoft.com/customvision/v1.1/Prediction/3e7b9d45-8c2a-4f6e-b1d0-7f4a5c8e2d63/url")
}

// Address returns the listen address derived from the configured port.
func (c *Config) Address() string {
	return ":" + c.Port
}

// Endpoints maps the configuration onto the predictor endpoints the
// classification pipeline calls.
func (c *Config) Endpoints() domain.PredictorEndpoints {
	return domain.PredictorEndpoints{
		ModelGate: domain.PredictorEndpoint{
			URL:           c.ModelGateURL,
			PredictionKey: c.ModelGatePredictionKey,
		},
		SuperModelCommon: domain.PredictorEndpoint{
			URL:           c.SuperModelCommonURL,
			PredictionKey: c.SuperModelCommonPredictionKey,
		},
		CivilianHybrid: domain.PredictorEndpoint{
			URL:           c.CivilianHybridURL,
			PredictionKey: c.CivilianHybridPredictionKey,
		},
	}
}

// MissingCredentials lists the predictors whose prediction key is unset.
func (c *Config) MissingCredentials() []string {
	return c.Endpoints().MissingCredentials()
}
