package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageTags(t *testing.T) {
	tests := []struct {
		name     string
		images   []ImagePrediction
		expected []TagScore
	}{
		{
			name: "single image single tag",
			images: []ImagePrediction{
				{ImageURL: "a.jpg", Predictions: []TagScore{{Tag: "Tank", Probability: 0.9}}},
			},
			expected: []TagScore{{Tag: "Tank", Probability: 0.9}},
		},
		{
			name: "mean across all images",
			images: []ImagePrediction{
				{ImageURL: "a.jpg", Predictions: []TagScore{
					{Tag: TagModel, Probability: 0.9},
					{Tag: TagNotModel, Probability: 0.1},
				}},
				{ImageURL: "b.jpg", Predictions: []TagScore{
					{Tag: TagModel, Probability: 0.8},
					{Tag: TagNotModel, Probability: 0.2},
				}},
			},
			expected: []TagScore{
				{Tag: TagModel, Probability: 0.85},
				{Tag: TagNotModel, Probability: 0.15},
			},
		},
		{
			name: "tag missing from one image counts as zero",
			images: []ImagePrediction{
				{ImageURL: "a.jpg", Predictions: []TagScore{{Tag: "Jeep", Probability: 0.6}}},
				{ImageURL: "b.jpg", Predictions: []TagScore{{Tag: "Truck", Probability: 0.4}}},
			},
			expected: []TagScore{
				{Tag: "Jeep", Probability: 0.3},
				{Tag: "Truck", Probability: 0.2},
			},
		},
		{
			name: "image without predictions still counts in the divisor",
			images: []ImagePrediction{
				{ImageURL: "a.jpg", Predictions: []TagScore{{Tag: "Tank", Probability: 1.0}}},
				{ImageURL: "b.jpg", Predictions: []TagScore{}},
			},
			expected: []TagScore{{Tag: "Tank", Probability: 0.5}},
		},
		{
			name:     "empty batch yields no tags",
			images:   nil,
			expected: []TagScore{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			averages := AverageTags(tc.images)

			require.Equal(t, len(tc.expected), averages.Len())
			expectedOrder := make([]string, 0, len(tc.expected))
			for _, want := range tc.expected {
				assert.InDelta(t, want.Probability, averages.Probability(want.Tag), 1e-9, "tag %s", want.Tag)
				expectedOrder = append(expectedOrder, want.Tag)
			}

			actualOrder := make([]string, 0, averages.Len())
			for _, score := range averages.Scores() {
				actualOrder = append(actualOrder, score.Tag)
			}
			assert.Equal(t, expectedOrder, actualOrder)
		})
	}
}

func TestAverageTagsIsIdempotent(t *testing.T) {
	images := []ImagePrediction{
		{ImageURL: "a.jpg", Predictions: []TagScore{{Tag: TagModel, Probability: 0.7}, {Tag: TagNotModel, Probability: 0.3}}},
		{ImageURL: "b.jpg", Predictions: []TagScore{{Tag: TagModel, Probability: 0.5}}},
	}

	first := AverageTags(images)
	second := AverageTags(images)

	assert.Equal(t, first.Scores(), second.Scores())
}

func TestTagAveragesProbabilityDefaultsToZero(t *testing.T) {
	averages := AverageTags([]ImagePrediction{
		{ImageURL: "a.jpg", Predictions: []TagScore{{Tag: "Tank", Probability: 0.9}}},
	})

	assert.Zero(t, averages.Probability("Helicopter"))
}

func TestTagAveragesBest(t *testing.T) {
	tests := []struct {
		name     string
		images   []ImagePrediction
		expected TagScore
	}{
		{
			name: "picks the maximum",
			images: []ImagePrediction{
				{ImageURL: "a.jpg", Predictions: []TagScore{
					{Tag: "Jeep", Probability: 0.2},
					{Tag: "Tank", Probability: 0.7},
					{Tag: "Truck", Probability: 0.1},
				}},
			},
			expected: TagScore{Tag: "Tank", Probability: 0.7},
		},
		{
			name: "exact tie keeps the first-seen tag",
			images: []ImagePrediction{
				{ImageURL: "a.jpg", Predictions: []TagScore{
					{Tag: "Jeep", Probability: 0.5},
					{Tag: "Tank", Probability: 0.5},
				}},
			},
			expected: TagScore{Tag: "Jeep", Probability: 0.5},
		},
		{
			name:     "empty averages yield the sentinel",
			images:   nil,
			expected: TagScore{Tag: "", Probability: NoTagProbability},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			best := AverageTags(tc.images).Best()
			assert.Equal(t, tc.expected, best)
		})
	}
}

func TestTagAveragesBestIsBelowAnyRealProbability(t *testing.T) {
	best := TagAverages{}.Best()
	assert.Less(t, best.Probability, 0.0)
}

func TestDecideBranch(t *testing.T) {
	tests := []struct {
		name     string
		model    float64
		notModel float64
		expected Predictor
	}{
		{name: "model dominates", model: 0.7, notModel: 0.3, expected: PredictorSuperModelCommon},
		{name: "not model dominates", model: 0.2, notModel: 0.8, expected: PredictorCivilianHybrid},
		{name: "exact tie favors the model branch", model: 0.5, notModel: 0.5, expected: PredictorSuperModelCommon},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			averages := AverageTags([]ImagePrediction{
				{ImageURL: "a.jpg", Predictions: []TagScore{
					{Tag: TagModel, Probability: tc.model},
					{Tag: TagNotModel, Probability: tc.notModel},
				}},
			})

			assert.Equal(t, tc.expected, DecideBranch(averages))
		})
	}
}

func TestDecideBranchWithAbsentGateTags(t *testing.T) {
	// A classifier that never returned the gate tags leaves both sides at 0,
	// which is a tie and therefore selects the model branch.
	averages := AverageTags([]ImagePrediction{
		{ImageURL: "a.jpg", Predictions: []TagScore{{Tag: "Banana", Probability: 0.9}}},
	})

	assert.Equal(t, PredictorSuperModelCommon, DecideBranch(averages))
}

func TestTagAveragesMarshalJSONKeepsFirstSeenOrder(t *testing.T) {
	averages := AverageTags([]ImagePrediction{
		{ImageURL: "a.jpg", Predictions: []TagScore{
			{Tag: "Zebra", Probability: 0.5},
			{Tag: "Apple", Probability: 0.25},
		}},
		{ImageURL: "b.jpg", Predictions: []TagScore{
			{Tag: "Mango", Probability: 0.5},
			{Tag: "Zebra", Probability: 0.5},
		}},
	})

	raw, err := json.Marshal(averages)
	require.NoError(t, err)
	assert.Equal(t, `{"Zebra":0.5,"Apple":0.125,"Mango":0.25}`, string(raw))
}

func TestPredictorEndpointsForPredictor(t *testing.T) {
	endpoints := PredictorEndpoints{
		ModelGate:        PredictorEndpoint{URL: "https://gate", PredictionKey: "gate-key"},
		SuperModelCommon: PredictorEndpoint{URL: "https://super", PredictionKey: "super-key"},
		CivilianHybrid:   PredictorEndpoint{URL: "https://civilian", PredictionKey: "civilian-key"},
	}

	assert.Equal(t, "https://gate", endpoints.ForPredictor(PredictorModelGate).URL)
	assert.Equal(t, "https://super", endpoints.ForPredictor(PredictorSuperModelCommon).URL)
	assert.Equal(t, "https://civilian", endpoints.ForPredictor(PredictorCivilianHybrid).URL)
}

func TestPredictorEndpointsMissingCredentials(t *testing.T) {
	endpoints := PredictorEndpoints{
		ModelGate:        PredictorEndpoint{URL: "https://gate", PredictionKey: "gate-key"},
		SuperModelCommon: PredictorEndpoint{URL: "https://super"},
		CivilianHybrid:   PredictorEndpoint{URL: "https://civilian"},
	}

	missing := endpoints.MissingCredentials()

	assert.Equal(t, []string{"supermodel-common", "civilian-hybrid"}, missing)

	endpoints.SuperModelCommon.PredictionKey = "super-key"
	endpoints.CivilianHybrid.PredictionKey = "civilian-key"
	assert.Empty(t, endpoints.MissingCredentials())
}
