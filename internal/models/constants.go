// Package models contains data types and constants shared by the relay and the chat client.
package models

// Upstream API
const (
	EndpointMessages = "https://api.anthropic.com/v1/messages"
	AnthropicVersion = "2023-06-01"
)

// Relay API
const (
	DefaultRelayURL = "http://localhost:3000"
	PathChat        = "/api/chat"
	PathHealth      = "/health"
	PathMetrics     = "/metrics"
)

// Request defaults used by the chat client
const (
	DefaultModel     = "claude-haiku-4-5-20251001"
	DefaultMaxTokens = 1024
)

// SSE framing
const (
	SSEDataPrefix   = "data: "
	SSEDoneSentinel = "[DONE]"

	// EventContentBlockDelta is the only upstream event type that carries reply text
	EventContentBlockDelta = "content_block_delta"
)

// UpstreamHeaders returns the fixed headers sent with every upstream request.
// The API key header is added separately.
func UpstreamHeaders() map[string]string {
	return map[string]string{
		"Content-Type":      "application/json",
		"anthropic-version": AnthropicVersion,
	}
}

// StreamHeaders returns the headers the relay sets on a successful streaming response
func StreamHeaders() map[string]string {
	return map[string]string{
		"Content-Type":  "text/event-stream",
		"Cache-Control": "no-cache",
		"Connection":    "keep-alive",
	}
}
