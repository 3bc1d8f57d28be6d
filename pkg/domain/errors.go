package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError reports prediction credentials that are required for a
// request but not configured. It is raised per request, before any remote call.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing prediction key(s): %s", strings.Join(e.Missing, ", "))
}

// AsConfigurationError unwraps err into a ConfigurationError if it is one.
func AsConfigurationError(err error) (*ConfigurationError, bool) {
	var configErr *ConfigurationError
	if errors.As(err, &configErr) {
		return configErr, true
	}
	return nil, false
}
