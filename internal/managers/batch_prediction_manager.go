package managers

import (
	"context"
	"fmt"
	"sync"

	"github.com/visiongate/visiongate/pkg/clients/prediction"
	"github.com/visiongate/visiongate/pkg/domain"
)

type batchPredictionManager struct {
	client prediction.ClientInterface
}

type BatchPredictionManagerDependencies struct {
	Client prediction.ClientInterface
}

func NewBatchPredictionManager(deps BatchPredictionManagerDependencies) domain.BatchPredictor {
	return &batchPredictionManager{
		client: deps.Client,
	}
}

// PredictBatch issues one prediction call per image, all concurrently, and
// joins on the full set. Results keep input order. The first failure fails the
// whole batch and the join stops waiting; in-flight siblings are abandoned
// rather than cancelled since their results would be discarded anyway.
func (m *batchPredictionManager) PredictBatch(ctx context.Context, params domain.BatchPredictParams) ([]domain.ImagePrediction, error) {
	images := make([]domain.ImagePrediction, len(params.ImageURLs))
	errc := make(chan error, len(params.ImageURLs))

	var wg sync.WaitGroup
	for i, imageURL := range params.ImageURLs {
		wg.Add(1)
		go func(i int, imageURL string) {
			defer wg.Done()

			resp, err := m.client.Predict(ctx, prediction.PredictParams{
				EndpointURL:   params.Endpoint.URL,
				PredictionKey: params.Endpoint.PredictionKey,
				ImageURL:      imageURL,
			})
			if err != nil {
				errc <- fmt.Errorf("predict %s for %q: %w", params.Predictor, imageURL, err)
				return
			}

			images[i] = domain.ImagePrediction{
				ImageURL:    imageURL,
				Predictions: toDomainPredictions(resp.Predictions),
			}
		}(i, imageURL)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case err := <-errc:
		return nil, err
	case <-done:
		// A failure can land right as the last call finishes; the buffered
		// channel still holds it.
		select {
		case err := <-errc:
			return nil, err
		default:
		}
		return images, nil
	}
}

func toDomainPredictions(predictions []prediction.Prediction) []domain.TagScore {
	scores := make([]domain.TagScore, len(predictions))
	for i, p := range predictions {
		scores[i] = domain.TagScore{
			Tag:         p.TagName,
			Probability: p.Probability,
		}
	}
	return scores
}
