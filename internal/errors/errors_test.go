package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("ANTHROPIC_API_KEY", "")

	expected := "configuration error: ANTHROPIC_API_KEY is not set"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrMissingAPIKey) {
		t.Error("Expected ConfigError to match ErrMissingAPIKey")
	}

	wrapped := fmt.Errorf("startup: %w", err)
	if !IsConfigError(wrapped) {
		t.Error("Expected wrapped error to be detected as ConfigError")
	}
}

func TestConfigError_CustomMessage(t *testing.T) {
	err := NewConfigError("", "port must be numeric")

	if err.Error() != "configuration error: port must be numeric" {
		t.Errorf("Error() = %s", err.Error())
	}
	if errors.Is(err, ErrMissingAPIKey) {
		t.Error("ConfigError without key should not match ErrMissingAPIKey")
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{401, "API Error: 401 Unauthorized"},
		{429, "API Error: 429 Too Many Requests"},
		{500, "API Error: 500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			err := NewAPIError(tt.status, "/api/chat", []byte(`{"error":"bad key"}`))
			if err.Error() != tt.want {
				t.Errorf("Error() = %s, want %s", err.Error(), tt.want)
			}
			if !errors.Is(err, ErrUpstreamFailed) {
				t.Error("Expected APIError to match ErrUpstreamFailed")
			}
		})
	}
}

func TestAPIErrorHelpers(t *testing.T) {
	err := fmt.Errorf("send: %w", NewAPIError(401, "/api/chat", []byte(`{"error":"bad key"}`)))

	if got := GetHTTPStatus(err); got != 401 {
		t.Errorf("GetHTTPStatus() = %d, want 401", got)
	}
	if got := GetResponseBody(err); got != `{"error":"bad key"}` {
		t.Errorf("GetResponseBody() = %s", got)
	}
	if got := GetEndpoint(err); got != "/api/chat" {
		t.Errorf("GetEndpoint() = %s", got)
	}
	if !IsAPIError(err) {
		t.Error("IsAPIError() = false")
	}

	plain := errors.New("plain")
	if GetHTTPStatus(plain) != 0 || GetResponseBody(plain) != "" || GetEndpoint(plain) != "" {
		t.Error("helpers should return zero values for plain errors")
	}
}

func TestNetworkError(t *testing.T) {
	err := NewNetworkError("read stream", io.ErrUnexpectedEOF)

	if err.Error() != "read stream: unexpected EOF" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("Expected NetworkError to unwrap to the cause")
	}
	if !IsNetworkError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsNetworkError() = false for wrapped error")
	}

	bare := NewNetworkError("", io.EOF)
	if bare.Error() != "EOF" {
		t.Errorf("Error() without op = %s", bare.Error())
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("body is not a JSON object", "[]")

	if err.Error() != "parse error: body is not a JSON object" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, ErrInvalidRequest) {
		t.Error("Expected ParseError to match ErrInvalidRequest")
	}
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("Expected ParseError to match ErrInvalidResponse")
	}
	if errors.Is(err, ErrMissingAPIKey) {
		t.Error("ParseError should not match ErrMissingAPIKey")
	}
}
