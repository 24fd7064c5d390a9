package venice

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/haojie06/venice-image-cli/internal/model"
)

// ErrNoImages indicates a 2xx response whose image list was empty.
var ErrNoImages = errors.New("No images returned from API")

// APIError is a non-2xx response from the Venice API. Detail holds the
// structured error body when one parses, otherwise the raw response text.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Detail)
}

// AsAPIError attempts to cast an error to *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var e *APIError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func newAPIError(statusCode int, body []byte) *APIError {
	detail := strings.TrimSpace(string(body))
	var errBody model.APIErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil {
		switch {
		case errBody.Error != "":
			detail = errBody.Error
		case errBody.Message != "":
			detail = errBody.Message
		}
		if len(errBody.Issues) > 0 {
			detail += " " + string(errBody.Issues)
		}
	}
	return &APIError{StatusCode: statusCode, Detail: detail}
}
