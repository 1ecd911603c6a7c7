// Package errors provides custom error types for the relay and the chat client.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common cases
var (
	ErrMissingAPIKey   = errors.New("missing API key")
	ErrInvalidRequest  = errors.New("invalid request body")
	ErrUpstreamFailed  = errors.New("upstream request failed")
	ErrInvalidResponse = errors.New("invalid response format")
)

// ConfigError represents a fatal configuration problem detected at startup
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("configuration error: %s is not set", e.Key)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ConfigError) Is(target error) bool {
	if target == ErrMissingAPIKey {
		return e.Key != ""
	}
	_, ok := target.(*ConfigError)
	return ok
}

// NewConfigError creates a new ConfigError for a missing key
func NewConfigError(key, message string) *ConfigError {
	return &ConfigError{Key: key, Message: message}
}

// APIError represents a non-success HTTP response.
// Body holds the raw response body so callers can pass it through unchanged.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is allows comparison with sentinel errors
func (e *APIError) Is(target error) bool {
	if target == ErrUpstreamFailed {
		return true
	}
	_, ok := target.(*APIError)
	return ok
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint string, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Body:       body,
	}
}

// NetworkError wraps a transport failure (connect, read, write)
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

// ParseError represents a payload that could not be parsed
type ParseError struct {
	Message string
	Payload string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse || target == ErrInvalidRequest {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, payload string) *ParseError {
	return &ParseError{Message: message, Payload: payload}
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetResponseBody returns the response body carried by err, or ""
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return string(apiErr.Body)
	}
	return ""
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	return ""
}

// IsAPIError reports whether err is a non-success HTTP response
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsConfigError reports whether err is a configuration problem
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
