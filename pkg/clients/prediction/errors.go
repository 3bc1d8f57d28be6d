package prediction

import (
	"errors"
	"fmt"
)

// Error represents a non-success response from a prediction endpoint.
type Error struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Body       string `json:"body,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("prediction: %s (status: %d)", e.Message, e.StatusCode)
}

// IsClientError returns true if the endpoint rejected the request.
func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError returns true if the endpoint itself failed.
func (e *Error) IsServerError() bool {
	return e.StatusCode >= 500
}

// AsPredictionError checks if an error is a prediction endpoint error.
func AsPredictionError(err error) (*Error, bool) {
	var predErr *Error
	if errors.As(err, &predErr) {
		return predErr, true
	}
	return nil, false
}
