package initialization

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/visiongate/visiongate/internal/config"
	"github.com/visiongate/visiongate/internal/controllers"
	"github.com/visiongate/visiongate/internal/managers"
	"github.com/visiongate/visiongate/pkg/clients/prediction"
	"github.com/visiongate/visiongate/pkg/domain"
)

type ServerDependencies struct {
	PredictionClient      prediction.ClientInterface
	BatchPredictor        domain.BatchPredictor
	ClassificationService domain.ClassificationService
	ClassifyController    *controllers.ClassifyController
}

// BuildServerDependencies wires the prediction client into the managers and
// the managers into the HTTP controller.
func BuildServerDependencies(ctx context.Context, cfg *config.Config) (*ServerDependencies, error) {
	log.Info().Msg("Building server dependencies")

	predictionClient := prediction.NewClient()

	batchPredictor := managers.NewBatchPredictionManager(managers.BatchPredictionManagerDependencies{
		Client: predictionClient,
	})

	classificationService := managers.NewClassificationManager(managers.ClassificationManagerDependencies{
		BatchPredictor: batchPredictor,
		Endpoints:      cfg.Endpoints(),
	})

	classifyController := controllers.NewClassifyController(controllers.ClassifyControllerDependencies{
		ClassificationService: classificationService,
	})

	return &ServerDependencies{
		PredictionClient:      predictionClient,
		BatchPredictor:        batchPredictor,
		ClassificationService: classificationService,
		ClassifyController:    classifyController,
	}, nil
}
