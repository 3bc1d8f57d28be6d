package prediction

// PredictParams identifies one prediction call: which classifier to hit, the
// credential for it, and the image to classify.
type PredictParams struct {
	EndpointURL   string
	PredictionKey string
	ImageURL      string
}

// predictRequest is the wire body the classifier expects.
type predictRequest struct {
	URL string `json:"Url"`
}

// Prediction is one tag/probability pair returned by the classifier.
type Prediction struct {
	TagName     string  `json:"tagName"`
	Probability float64 `json:"probability"`
}

// PredictResponse is the classifier's response payload. The predictions array
// may be absent upstream; Predict normalizes it to an empty slice.
type PredictResponse struct {
	ID          string       `json:"id,omitempty"`
	Project     string       `json:"project,omitempty"`
	Iteration   string       `json:"iteration,omitempty"`
	Created     string       `json:"created,omitempty"`
	Predictions []Prediction `json:"predictions"`
}
