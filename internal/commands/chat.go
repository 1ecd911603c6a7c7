package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/barbchat/internal/config"
	"github.com/diogo/barbchat/internal/logging"
	"github.com/diogo/barbchat/internal/render"
	"github.com/diogo/barbchat/internal/tui"
)

// pingTimeout bounds the relay health check before the TUI starts
const pingTimeout = 5 * time.Second

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with Barb.

The whole conversation is sent with every message, so Barb remembers what
you said earlier in the session. Nothing is saved when you quit.
Type 'exit', 'quit', or press Esc or Ctrl+C to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps, resolveConfig(deps, flags))
		},
	}
}

func runChat(deps *Dependencies, cfg config.Config) error {
	logger, closer, err := chatLogger(cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: %v\n", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	client, err := deps.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	spin := newSpinner(deps.Stderr, "Connecting to the relay")
	tty := deps.StdoutIsTTY()
	if tty {
		spin.start()
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	err = client.Ping(ctx)
	cancel()
	if err != nil {
		if tty {
			spin.stopWithError()
		}
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Relay unavailable at "+client.RelayURL()))
		return err
	}
	if tty {
		spin.stopWithSuccess("Connected")
	}

	logger.Info().Str("relay", client.RelayURL()).Str("model", client.Model()).Msg("chat session started")

	return deps.TUI.RunChat(client,
		tui.WithLogger(logger),
		tui.WithViewportWidth(cfg.ViewportWidth),
		tui.WithPalette(render.PaletteOrDefault(cfg.TUITheme)),
		tui.WithClipboard(deps.Clipboard),
	)
}

// chatLogger logs to a file in the config directory when verbose is set,
// since the TUI owns the terminal.
func chatLogger(cfg config.Config) (zerolog.Logger, io.Closer, error) {
	if !cfg.Verbose {
		return zerolog.Nop(), nil, nil
	}
	if _, err := config.EnsureConfigDir(); err != nil {
		return zerolog.Nop(), nil, err
	}
	path, err := config.GetLogPath()
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return logging.NewFile(path, zerolog.DebugLevel)
}
