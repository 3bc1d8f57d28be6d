package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ClientInterface defines the calls the rest of the service makes against a
// remote prediction endpoint.
type ClientInterface interface {
	Predict(ctx context.Context, params PredictParams) (*PredictResponse, error)
}

// Client is an HTTP client for machine-vision prediction endpoints. The same
// client instance serves every endpoint; the endpoint URL and credential travel
// with each call.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new prediction client with the given options.
func NewClient(options ...ClientOption) *Client {
	config := DefaultConfig()

	for _, option := range options {
		option(config)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// Predict asks the classifier behind params.EndpointURL to tag the image at
// params.ImageURL. The remote service fetches the image itself; the URL is
// passed through opaquely. There is no retry: the caller treats any failure as
// fatal for the whole batch.
func (c *Client) Predict(ctx context.Context, params PredictParams) (*PredictResponse, error) {
	bodyBytes, err := json.Marshal(predictRequest{URL: params.ImageURL})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, params.EndpointURL, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prediction-Key", params.PredictionKey)
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}

	var result PredictResponse
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, err
	}

	if result.Predictions == nil {
		result.Predictions = []Prediction{}
	}

	return &result, nil
}

// handleResponse processes the HTTP response and unmarshals JSON if successful.
// Non-success statuses become an *Error carrying whatever message the endpoint
// sent, plus the raw body for the caller to surface.
func (c *Client) handleResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read prediction response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errorResponse struct {
			Message string `json:"message"`
			Error   string `json:"error"`
			Code    string `json:"code"`
		}

		if json.Unmarshal(body, &errorResponse) == nil {
			message := errorResponse.Message
			if message == "" {
				message = errorResponse.Error
			}
			if message != "" {
				return &Error{
					StatusCode: resp.StatusCode,
					Message:    message,
					Body:       string(body),
				}
			}
		}

		return &Error{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
			Body:       string(body),
		}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to unmarshal prediction response: %w", err)
		}
	}

	return nil
}
