package domain

import (
	"bytes"
	"encoding/json"

	"github.com/samber/lo"
)

// Predictor identifies one of the remote classifiers the pipeline can call.
type Predictor string

const (
	// PredictorModelGate is the stage-1 binary classifier deciding Model vs NOT Model.
	PredictorModelGate Predictor = "model-gate"
	// PredictorSuperModelCommon refines images the gate classified as models.
	PredictorSuperModelCommon Predictor = "supermodel-common"
	// PredictorCivilianHybrid refines images the gate classified as non-models.
	PredictorCivilianHybrid Predictor = "civilian-hybrid"
)

// Tags returned by the model gate.
const (
	TagModel    = "Model"
	TagNotModel = "NOT Model"
)

// ConfidenceThreshold is the fixed probability cutoff used to annotate the final
// tag. It never blocks or alters the result.
const ConfidenceThreshold = 0.95

// NoTagProbability is the sentinel probability reported when a tag set is empty.
// It sits below any probability a classifier can return.
const NoTagProbability = -1

// TagScore is a single (tag, probability) pair produced by a remote classifier.
type TagScore struct {
	Tag         string  `json:"tagName"`
	Probability float64 `json:"probability"`
}

// ImagePrediction holds the classifier output for one image.
type ImagePrediction struct {
	ImageURL    string     `json:"imageUrl"`
	Predictions []TagScore `json:"predictions"`
}

// TagAverages maps each tag to its mean probability across a batch of images.
// Tags keep the order in which they were first seen, so tie-breaking and JSON
// output are deterministic instead of depending on map iteration.
type TagAverages struct {
	scores []TagScore
}

// AverageTags reduces a batch of per-image predictions into one mean probability
// per tag. The divisor is always the number of images in the batch: an image
// that lacks a tag contributes 0 to that tag's sum. An empty batch divides by 1
// so the zero sums stay zero; callers are expected to pass at least one image.
func AverageTags(images []ImagePrediction) TagAverages {
	count := float64(len(images))
	if count == 0 {
		count = 1
	}

	sums := make(map[string]float64, 8)
	order := make([]string, 0, 8)

	for _, image := range images {
		for _, prediction := range image.Predictions {
			if _, seen := sums[prediction.Tag]; !seen {
				order = append(order, prediction.Tag)
			}
			sums[prediction.Tag] += prediction.Probability
		}
	}

	scores := make([]TagScore, 0, len(order))
	for _, tag := range order {
		scores = append(scores, TagScore{Tag: tag, Probability: sums[tag] / count})
	}

	return TagAverages{scores: scores}
}

// Len returns the number of distinct tags.
func (a TagAverages) Len() int {
	return len(a.scores)
}

// Scores returns the averaged tags in first-seen order.
func (a TagAverages) Scores() []TagScore {
	out := make([]TagScore, len(a.scores))
	copy(out, a.scores)
	return out
}

// Probability returns the averaged probability for tag, or 0 when the tag never
// appeared in the batch. The zero default is part of the branch-decision
// contract, so it is explicit here rather than hidden in a map access.
func (a TagAverages) Probability(tag string) float64 {
	for _, score := range a.scores {
		if score.Tag == tag {
			return score.Probability
		}
	}
	return 0
}

// Best returns the tag with the highest averaged probability. On an exact tie
// the tag seen first wins. An empty average set yields a sentinel score with
// NoTagProbability instead of an error.
func (a TagAverages) Best() TagScore {
	if len(a.scores) == 0 {
		return TagScore{Probability: NoTagProbability}
	}
	return lo.MaxBy(a.scores, func(candidate, current TagScore) bool {
		return candidate.Probability > current.Probability
	})
}

// MarshalJSON renders the averages as a JSON object in first-seen tag order.
func (a TagAverages) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, score := range a.scores {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(score.Tag)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(score.Probability)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecideBranch picks the stage-2 predictor from the stage-1 averages. The gate
// is binary: Model at or above NOT Model selects the supermodel-common branch,
// so an exact tie favors the model side.
func DecideBranch(gate TagAverages) Predictor {
	if gate.Probability(TagModel) >= gate.Probability(TagNotModel) {
		return PredictorSuperModelCommon
	}
	return PredictorCivilianHybrid
}

// StageOutcome captures everything one pipeline stage produced.
type StageOutcome struct {
	Predictor Predictor
	Images    []ImagePrediction
	Averages  TagAverages
}

// ClassificationResult is the composite outcome of the two-stage pipeline.
type ClassificationResult struct {
	RequestID string
	ImageURLs []string

	Stage1  StageOutcome
	IsModel bool
	Branch  Predictor
	Stage2  StageOutcome

	FinalTag       TagScore
	HighConfidence bool
}
