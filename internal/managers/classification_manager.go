package managers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/visiongate/visiongate/pkg/domain"
)

type classificationManager struct {
	batchPredictor domain.BatchPredictor
	endpoints      domain.PredictorEndpoints
}

type ClassificationManagerDependencies struct {
	BatchPredictor domain.BatchPredictor
	Endpoints      domain.PredictorEndpoints
}

func NewClassificationManager(deps ClassificationManagerDependencies) domain.ClassificationService {
	return &classificationManager{
		batchPredictor: deps.BatchPredictor,
		endpoints:      deps.Endpoints,
	}
}

// Classify runs the two-stage pipeline: the gate predictor decides whether the
// batch depicts a model, and that verdict picks the predictor that produces the
// final tag. Both stages score every image and average the tags across the
// batch.
func (m *classificationManager) Classify(ctx context.Context, params domain.ClassifyParams) (domain.ClassificationResult, error) {
	if missing := m.endpoints.MissingCredentials(); len(missing) > 0 {
		return domain.ClassificationResult{}, &domain.ConfigurationError{Missing: missing}
	}

	requestID := uuid.NewString()

	log.Debug().
		Str("request_id", requestID).
		Int("image_count", len(params.ImageURLs)).
		Msg("Starting two-stage classification")

	gateImages, err := m.batchPredictor.PredictBatch(ctx, domain.BatchPredictParams{
		Predictor: domain.PredictorModelGate,
		Endpoint:  m.endpoints.ForPredictor(domain.PredictorModelGate),
		ImageURLs: params.ImageURLs,
	})
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("gate stage: %w", err)
	}

	gateAverages := domain.AverageTags(gateImages)
	branch := domain.DecideBranch(gateAverages)
	isModel := branch == domain.PredictorSuperModelCommon

	log.Debug().
		Str("request_id", requestID).
		Float64("model", gateAverages.Probability(domain.TagModel)).
		Float64("not_model", gateAverages.Probability(domain.TagNotModel)).
		Str("branch", string(branch)).
		Msg("Gate stage complete")

	branchImages, err := m.batchPredictor.PredictBatch(ctx, domain.BatchPredictParams{
		Predictor: branch,
		Endpoint:  m.endpoints.ForPredictor(branch),
		ImageURLs: params.ImageURLs,
	})
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("%s stage: %w", branch, err)
	}

	branchAverages := domain.AverageTags(branchImages)
	finalTag := branchAverages.Best()

	log.Debug().
		Str("request_id", requestID).
		Str("final_tag", finalTag.Tag).
		Float64("probability", finalTag.Probability).
		Msg("Classification complete")

	return domain.ClassificationResult{
		RequestID: requestID,
		ImageURLs: params.ImageURLs,
		Stage1: domain.StageOutcome{
			Predictor: domain.PredictorModelGate,
			Images:    gateImages,
			Averages:  gateAverages,
		},
		IsModel: isModel,
		Branch:  branch,
		Stage2: domain.StageOutcome{
			Predictor: branch,
			Images:    branchImages,
			Averages:  branchAverages,
		},
		FinalTag:       finalTag,
		HighConfidence: finalTag.Probability >= domain.ConfidenceThreshold,
	}, nil
}
