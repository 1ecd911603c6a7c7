package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"

	"github.com/diogo/barbchat/internal/api"
	"github.com/diogo/barbchat/internal/config"
	"github.com/diogo/barbchat/internal/models"
	"github.com/diogo/barbchat/internal/tui"
)

// fakeChatClient returns a canned reply stream
type fakeChatClient struct {
	body    io.ReadCloser
	sendErr error
	pingErr error
	sent    [][]models.Message
	pinged  int
}

func (f *fakeChatClient) Send(ctx context.Context, messages []models.Message) (*api.Stream, error) {
	f.sent = append(f.sent, messages)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return api.NewStream(f.body), nil
}

func (f *fakeChatClient) Ping(ctx context.Context) error {
	f.pinged++
	return f.pingErr
}

func (f *fakeChatClient) Model() string    { return "claude-test" }
func (f *fakeChatClient) RelayURL() string { return models.DefaultRelayURL }

// fakeTUI records RunChat calls instead of taking over the terminal
type fakeTUI struct {
	calls  int
	client api.ChatClient
	opts   []tui.Option
	err    error
}

func (f *fakeTUI) RunChat(client api.ChatClient, opts ...tui.Option) error {
	f.calls++
	f.client = client
	f.opts = opts
	return f.err
}

// fakeDoer stands in for the upstream TLS client
type fakeDoer struct{}

func (fakeDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	return nil, errors.New("not used")
}

type testEnv struct {
	deps      *Dependencies
	client    *fakeChatClient
	tui       *fakeTUI
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	copied    []string
	gotConfig config.Config
	home      string
}

// newTestEnv isolates HOME and the environment, and wires fakes into Dependencies
func newTestEnv(t *testing.T, client *fakeChatClient) *testEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		config.APIKeyEnv, config.EnvPort, config.EnvMode, config.EnvRelayURL,
		config.EnvUpstreamURL, config.EnvStaticDir, "GLAMOUR_STYLE",
	} {
		t.Setenv(key, "")
	}

	env := &testEnv{
		client: client,
		tui:    &fakeTUI{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		home:   home,
	}
	env.deps = &Dependencies{
		NewClient: func(cfg config.Config, logger zerolog.Logger) (api.ChatClient, error) {
			env.gotConfig = cfg
			return env.client, nil
		},
		NewUpstream: func(timeoutSeconds int) (api.Doer, error) {
			return fakeDoer{}, nil
		},
		TUI: env.tui,
		Clipboard: func(text string) error {
			env.copied = append(env.copied, text)
			return nil
		},
		Stdin:         strings.NewReader(""),
		Stdout:        env.stdout,
		Stderr:        env.stderr,
		StdinIsPipe:   func() bool { return false },
		StdoutIsTTY:   func() bool { return false },
		TerminalWidth: func() int { return 80 },
	}
	return env
}

// run executes the root command with args
func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func replyBody(deltas ...string) io.ReadCloser {
	var sb strings.Builder
	sb.WriteString("event: message_start\ndata: {\"type\":\"message_start\"}\n\n")
	for _, d := range deltas {
		sb.WriteString(`data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"` + d + `"}}` + "\n\n")
	}
	sb.WriteString("data: {\"type\":\"message_stop\"}\n\n")
	return io.NopCloser(strings.NewReader(sb.String()))
}

// brokenBody delivers one delta, then fails like a dropped connection
type brokenBody struct {
	sent bool
}

func (b *brokenBody) Read(p []byte) (int, error) {
	if !b.sent {
		b.sent = true
		return copy(p, `data: {"type":"content_block_delta","delta":{"text":"Well I never"}}`+"\n"), nil
	}
	return 0, errors.New("connection reset by peer")
}

func (b *brokenBody) Close() error { return nil }
