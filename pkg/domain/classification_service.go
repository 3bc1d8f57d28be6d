package domain

import "context"

// BatchPredictor issues one prediction call per image against a single remote
// classifier and returns the per-image results in input order.
type BatchPredictor interface {
	PredictBatch(ctx context.Context, params BatchPredictParams) ([]ImagePrediction, error)
}

type BatchPredictParams struct {
	Predictor Predictor
	Endpoint  PredictorEndpoint
	ImageURLs []string
}

// ClassificationService runs the full two-stage pipeline for a set of images.
type ClassificationService interface {
	Classify(ctx context.Context, params ClassifyParams) (ClassificationResult, error)
}

type ClassifyParams struct {
	ImageURLs []string
}

// PredictorEndpoint is the address and credential of one remote classifier.
type PredictorEndpoint struct {
	URL           string
	PredictionKey string
}

// PredictorEndpoints holds the three classifiers the pipeline calls. It is
// passed into the orchestrator explicitly so the pipeline never reads process
// state.
type PredictorEndpoints struct {
	ModelGate        PredictorEndpoint
	SuperModelCommon PredictorEndpoint
	CivilianHybrid   PredictorEndpoint
}

// ForPredictor returns the endpoint configured for the given predictor.
func (e PredictorEndpoints) ForPredictor(p Predictor) PredictorEndpoint {
	switch p {
	case PredictorSuperModelCommon:
		return e.SuperModelCommon
	case PredictorCivilianHybrid:
		return e.CivilianHybrid
	default:
		return e.ModelGate
	}
}

// MissingCredentials lists the predictors that have no prediction key set.
func (e PredictorEndpoints) MissingCredentials() []string {
	var missing []string
	for _, entry := range []struct {
		predictor Predictor
		endpoint  PredictorEndpoint
	}{
		{PredictorModelGate, e.ModelGate},
		{PredictorSuperModelCommon, e.SuperModelCommon},
		{PredictorCivilianHybrid, e.CivilianHybrid},
	} {
		if entry.endpoint.PredictionKey == "" {
			missing = append(missing, string(entry.predictor))
		}
	}
	return missing
}
