package notion

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error codes returned by the API.
const (
	CodeUnauthorized       = "unauthorized"
	CodeRestrictedResource = "restricted_resource"
	CodeObjectNotFound     = "object_not_found"
	CodeValidation         = "validation_error"
	CodeInvalidJSON        = "invalid_json"
	CodeRateLimited        = "rate_limited"
	CodeConflict           = "conflict_error"
	CodeInternal           = "internal_server_error"
)

// APIError is an error response from the API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("notion: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("notion: status %d %s: %s", e.Status, e.Code, e.Message)
}

// HasCode reports whether err is an APIError with the given code.
func HasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// decodeError builds an APIError from a response body. Bodies that are not
// error objects are kept verbatim as the message.
func decodeError(status int, body []byte) *APIError {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr = &APIError{Message: strings.TrimSpace(string(body))}
	}
	apiErr.Status = status
	return apiErr
}
