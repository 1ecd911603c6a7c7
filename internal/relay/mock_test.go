package relay

import (
	"errors"
	"io"
	"strings"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"

	"github.com/diogo/barbchat/internal/config"
)

const testAPIKey = "sk-ant-test"

// fakeUpstream is a Doer that returns a canned response and records the
// request it was given
type fakeUpstream struct {
	mu       sync.Mutex
	status   int
	header   fhttp.Header
	body     io.ReadCloser
	err      error
	requests []*fhttp.Request
	bodies   [][]byte
	gotReq   chan *fhttp.Request
}

func newFakeUpstream(status int, body string) *fakeUpstream {
	return &fakeUpstream{
		status: status,
		header: make(fhttp.Header),
		body:   io.NopCloser(strings.NewReader(body)),
		gotReq: make(chan *fhttp.Request, 1),
	}
}

func newFailingUpstream(err error) *fakeUpstream {
	return &fakeUpstream{err: err, gotReq: make(chan *fhttp.Request, 1)}
}

func (f *fakeUpstream) Do(req *fhttp.Request) (*fhttp.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		f.bodies = append(f.bodies, b)
	}
	f.mu.Unlock()

	select {
	case f.gotReq <- req:
	default:
	}

	if f.err != nil {
		return nil, f.err
	}
	return &fhttp.Response{
		StatusCode: f.status,
		Header:     f.header,
		Body:       f.body,
	}, nil
}

func (f *fakeUpstream) lastBody() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.bodies) == 0 {
		return nil
	}
	return f.bodies[len(f.bodies)-1]
}

func (f *fakeUpstream) lastRequest() *fhttp.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

// failingReader yields data once, then fails
type failingReader struct {
	data []byte
	err  error
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.done {
		r.done = true
		return copy(p, r.data), nil
	}
	return 0, r.err
}

func (r *failingReader) Close() error { return nil }

var errConnReset = errors.New("connection reset by peer")

func newTestHandler(up *fakeUpstream) *Handler {
	return NewHandler(Options{
		Upstream:     up,
		UpstreamURL:  "https://upstream.test/v1/messages",
		APIKey:       testAPIKey,
		SystemPrompt: config.SystemPrompt(),
		Logger:       zerolog.Nop(),
	})
}
