package api

import (
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// Doer is the part of tls_client.HttpClient the relay and the chat client use.
// Tests substitute a fake.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient creates the TLS client shared by the relay and the chat client.
// A timeout of zero disables the client timeout, which streaming responses need.
func NewHTTPClient(timeoutSeconds int) (tls_client.HttpClient, error) {
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return httpClient, nil
}
