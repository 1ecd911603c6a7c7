package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/diogo/barbchat/internal/api"
	"github.com/diogo/barbchat/internal/config"
	"github.com/diogo/barbchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(client api.ChatClient, opts ...tui.Option) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the relay client from the resolved config.
	NewClient func(cfg config.Config, logger zerolog.Logger) (api.ChatClient, error)

	// NewUpstream builds the HTTP client the relay uses to reach the model API.
	NewUpstream func(timeoutSeconds int) (api.Doer, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard writes text to the system clipboard.
	Clipboard func(text string) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsPipe reports whether a prompt is being piped in.
	StdinIsPipe func() bool
	// StdoutIsTTY reports whether output goes to a terminal.
	StdoutIsTTY func() bool
	// TerminalWidth returns the output terminal width.
	TerminalWidth func() int
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(client api.ChatClient, opts ...tui.Option) error {
	return tui.RunChat(client, opts...)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient:     newRelayClient,
		NewUpstream:   newUpstreamClient,
		TUI:           &DefaultTUI{},
		Clipboard:     clipboard.WriteAll,
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		StdinIsPipe:   stdinIsPipe,
		StdoutIsTTY:   isStdoutTTY,
		TerminalWidth: getTerminalWidth,
	}
}

func newRelayClient(cfg config.Config, logger zerolog.Logger) (api.ChatClient, error) {
	return api.NewClient(
		api.WithRelayURL(cfg.RelayURL),
		api.WithModel(cfg.Model),
		api.WithMaxTokens(cfg.MaxTokens),
		api.WithLogger(logger),
	)
}

func newUpstreamClient(timeoutSeconds int) (api.Doer, error) {
	return api.NewHTTPClient(timeoutSeconds)
}

func stdinIsPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
