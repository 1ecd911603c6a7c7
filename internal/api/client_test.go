package api

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	apierrors "github.com/diogo/barbchat/internal/errors"
	"github.com/diogo/barbchat/internal/models"
)

func newTestClient(t *testing.T, mock *MockHttpClient, opts ...ClientOption) *Client {
	t.Helper()
	opts = append([]ClientOption{WithHTTPClient(mock)}, opts...)
	client, err := NewClient(opts...)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClient_Defaults(t *testing.T) {
	client := newTestClient(t, NewMockHttpClientWithError(errors.New("unused")))

	if client.Model() != models.DefaultModel {
		t.Errorf("Model() = %s, want %s", client.Model(), models.DefaultModel)
	}
	if client.RelayURL() != models.DefaultRelayURL {
		t.Errorf("RelayURL() = %s, want %s", client.RelayURL(), models.DefaultRelayURL)
	}
	if client.maxTokens != models.DefaultMaxTokens {
		t.Errorf("maxTokens = %d, want %d", client.maxTokens, models.DefaultMaxTokens)
	}
}

func TestNewClient_Options(t *testing.T) {
	client := newTestClient(t, NewMockHttpClientWithError(errors.New("unused")),
		WithModel("claude-test"),
		WithMaxTokens(64),
		WithRelayURL("http://relay.local:8080/"),
	)

	if client.Model() != "claude-test" {
		t.Errorf("Model() = %s, want claude-test", client.Model())
	}
	if client.maxTokens != 64 {
		t.Errorf("maxTokens = %d, want 64", client.maxTokens)
	}
	if client.RelayURL() != "http://relay.local:8080" {
		t.Errorf("RelayURL() = %s, want trailing slash trimmed", client.RelayURL())
	}
}

func TestNewClient_IgnoresZeroOptions(t *testing.T) {
	client := newTestClient(t, NewMockHttpClientWithError(errors.New("unused")),
		WithModel(""),
		WithMaxTokens(0),
		WithRelayURL(""),
	)

	if client.Model() != models.DefaultModel || client.maxTokens != models.DefaultMaxTokens ||
		client.RelayURL() != models.DefaultRelayURL {
		t.Errorf("zero-valued options changed defaults: %+v", client)
	}
}

func TestSend_RequestShape(t *testing.T) {
	mock := NewMockHttpClient(NewMockResponseBody(nil), 200)
	client := newTestClient(t, mock, WithModel("claude-test"), WithMaxTokens(300))

	conv := []models.Message{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "hello"},
		{Role: models.RoleUser, Content: "how are you?"},
	}

	stream, err := client.Send(context.Background(), conv)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	defer stream.Close()

	if len(mock.Requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(mock.Requests))
	}
	req := mock.Requests[0]
	if req.Method != "POST" {
		t.Errorf("Method = %s, want POST", req.Method)
	}
	if req.URL.String() != models.DefaultRelayURL+models.PathChat {
		t.Errorf("URL = %s", req.URL.String())
	}
	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s", ct)
	}

	var got models.ChatRequest
	if err := json.Unmarshal(mock.Bodies[0], &got); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if got.Model != "claude-test" || got.MaxTokens != 300 {
		t.Errorf("body = %+v", got)
	}
	if len(got.Messages) != 3 || got.Messages[2].Content != "how are you?" {
		t.Errorf("messages = %+v", got.Messages)
	}
	if strings.Contains(string(mock.Bodies[0]), `"system"`) {
		t.Error("client must not send a system prompt")
	}
}

func TestSend_StreamsDeltas(t *testing.T) {
	body := NewChunkedResponseBody(
		`data: {"type":"message_start"}`+"\n\n",
		`data: {"type":"content_block_delta","delta":{"text":"Hel`,
		`"}}`+"\n\n"+sseEvent("lo"),
		"data: [DONE]\n\n",
	)
	client := newTestClient(t, NewMockHttpClient(body, 200))

	stream, err := client.Send(context.Background(), []models.Message{{Role: models.RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	var deltas []string
	if err := stream.Each(func(d string) { deltas = append(deltas, d) }); err != nil {
		t.Fatalf("Each() error = %v", err)
	}

	if strings.Join(deltas, "") != "Hello" {
		t.Errorf("deltas = %q, want Hello", deltas)
	}
	if !body.closed {
		t.Error("body should be closed after the stream ends")
	}
}

func TestSend_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantMsg string
	}{
		{"unauthorized", 401, "API Error: 401 Unauthorized"},
		{"rate limited", 429, "API Error: 429 Too Many Requests"},
		{"server error", 500, "API Error: 500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errBody := `{"type":"error","error":{"type":"authentication_error"}}`
			body := NewMockResponseBody([]byte(errBody))
			client := newTestClient(t, NewMockHttpClient(body, tt.status))

			stream, err := client.Send(context.Background(), nil)
			if stream != nil {
				t.Error("stream should be nil on failure")
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
			if apierrors.GetHTTPStatus(err) != tt.status {
				t.Errorf("status = %d, want %d", apierrors.GetHTTPStatus(err), tt.status)
			}
			if apierrors.GetResponseBody(err) != errBody {
				t.Errorf("body = %q", apierrors.GetResponseBody(err))
			}
			if !body.closed {
				t.Error("error body should be closed")
			}
		})
	}
}

func TestSend_NetworkError(t *testing.T) {
	client := newTestClient(t, NewMockHttpClientWithError(errors.New("connection refused")))

	_, err := client.Send(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apierrors.IsNetworkError(err) {
		t.Errorf("expected NetworkError, got %T", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error = %q, want cause included", err.Error())
	}
}

func TestSend_ClosedClient(t *testing.T) {
	mock := NewMockHttpClient(NewMockResponseBody(nil), 200)
	client := newTestClient(t, mock)
	client.Close()

	if !client.IsClosed() {
		t.Error("IsClosed() should be true after Close()")
	}
	if _, err := client.Send(context.Background(), nil); err == nil {
		t.Error("Send() on closed client should fail")
	}
	if len(mock.Requests) != 0 {
		t.Error("closed client must not issue requests")
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name    string
		mock    *MockHttpClient
		wantErr bool
	}{
		{"healthy", NewMockHttpClient(NewMockResponseBody([]byte(`{"status":"ok"}`)), 200), false},
		{"unhealthy", NewMockHttpClient(NewMockResponseBody(nil), 503), true},
		{"unreachable", NewMockHttpClientWithError(errors.New("dial tcp: refused")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.mock)
			err := client.Ping(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Ping() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(tt.mock.Requests) == 1 && tt.mock.Requests[0].URL.Path != models.PathHealth {
				t.Errorf("path = %s, want %s", tt.mock.Requests[0].URL.Path, models.PathHealth)
			}
		})
	}
}
