package api

import (
	"io"

	http "github.com/bogdanfinn/fhttp"
)

// MockResponseBody is a ReadCloser that returns its chunks one Read at a time,
// then Err (io.EOF when nil)
type MockResponseBody struct {
	chunks [][]byte
	Err    error
	closed bool
}

// NewMockResponseBody creates a body that delivers data in a single read
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{chunks: [][]byte{data}}
}

// NewChunkedResponseBody creates a body that delivers each chunk in its own read
func NewChunkedResponseBody(chunks ...string) *MockResponseBody {
	b := &MockResponseBody{}
	for _, c := range chunks {
		b.chunks = append(b.chunks, []byte(c))
	}
	return b
}

// Read implements the io.Reader interface
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if len(m.chunks) == 0 {
		if m.Err != nil {
			return 0, m.Err
		}
		return 0, io.EOF
	}
	n = copy(p, m.chunks[0])
	if n < len(m.chunks[0]) {
		m.chunks[0] = m.chunks[0][n:]
	} else {
		m.chunks = m.chunks[1:]
	}
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	m.closed = true
	return nil
}

// MockHttpClient is a fake Doer that records the requests it receives
type MockHttpClient struct {
	Response *http.Response
	Err      error
	Requests []*http.Request
	Bodies   [][]byte
}

// Do implements the Doer interface
func (m *MockHttpClient) Do(req *http.Request) (*http.Response, error) {
	m.Requests = append(m.Requests, req)
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		m.Bodies = append(m.Bodies, body)
	}
	return m.Response, m.Err
}

// NewMockHttpClient creates a new MockHttpClient with the given response
func NewMockHttpClient(body io.ReadCloser, statusCode int) *MockHttpClient {
	return &MockHttpClient{
		Response: &http.Response{
			StatusCode: statusCode,
			Body:       body,
			Header:     make(http.Header),
		},
	}
}

// NewMockHttpClientWithError creates a new MockHttpClient that returns an error
func NewMockHttpClientWithError(err error) *MockHttpClient {
	return &MockHttpClient{Err: err}
}

// sseEvent frames a text delta the way the upstream API does
func sseEvent(text string) string {
	return `data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"` + text + `"}}` + "\n\n"
}
