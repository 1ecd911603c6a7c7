package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/diogo/barbchat/internal/config"
	apierrors "github.com/diogo/barbchat/internal/errors"
	"github.com/diogo/barbchat/internal/logging"
	"github.com/diogo/barbchat/internal/models"
	"github.com/diogo/barbchat/internal/render"
)

// runQuery sends a single message and prints Barb's reply as it streams
func runQuery(deps *Dependencies, cfg config.Config, flags *globalFlags, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt is empty")
	}

	client, err := deps.NewClient(cfg, clientLogger(deps, cfg))
	if err != nil {
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Error creating client"))
		return err
	}

	tty := deps.StdoutIsTTY()
	spin := newSpinner(deps.Stderr, "Waiting for Barb")
	if tty {
		spin.start()
	}
	stopSpinner := func() {
		if tty {
			spin.stopSilently()
		}
	}

	stream, err := client.Send(context.Background(), []models.Message{
		{Role: models.RoleUser, Content: prompt},
	})
	if err != nil {
		stopSpinner()
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Error sending message"))
		return err
	}

	var reply string
	if cfg.Markdown.Enabled && tty {
		// Markdown needs the whole reply before it can be laid out
		reply, err = stream.Text()
		stopSpinner()
		if reply != "" {
			fmt.Fprintln(deps.Stdout, renderReply(reply, cfg, deps.TerminalWidth()))
		}
	} else {
		var sb strings.Builder
		first := true
		err = stream.Each(func(delta string) {
			if first {
				stopSpinner()
				first = false
			}
			sb.WriteString(delta)
			fmt.Fprint(deps.Stdout, delta)
		})
		if first {
			stopSpinner()
		}
		reply = sb.String()
		if reply != "" && !strings.HasSuffix(reply, "\n") {
			fmt.Fprintln(deps.Stdout)
		}
	}
	if err != nil {
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Reply interrupted"))
		return err
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(reply), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintln(deps.Stderr, successStyle().Render("✓ Reply saved to "+flags.output))
	}

	if cfg.CopyToClipboard && reply != "" {
		if err := deps.Clipboard(reply); err != nil {
			fmt.Fprintf(deps.Stderr, "Warning: failed to copy to clipboard: %v\n", err)
		}
	}

	return nil
}

// renderReply formats a finished reply as markdown, falling back to raw text
func renderReply(reply string, cfg config.Config, width int) string {
	out, err := render.Markdown(reply, render.OptionsFromConfig(cfg.Markdown, width))
	if err != nil {
		return reply
	}
	return strings.TrimRight(out, "\n")
}

// clientLogger sends client debug output to stderr when verbose is set
func clientLogger(deps *Dependencies, cfg config.Config) zerolog.Logger {
	if !cfg.Verbose {
		return zerolog.Nop()
	}
	return logging.New(deps.Stderr, true, zerolog.DebugLevel)
}

func successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSuccess)
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	// The relay passes upstream error bodies through, so they carry the real reason
	if body := apierrors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
	} else {
		switch {
		case apierrors.GetHTTPStatus(err) == 401:
			sb.WriteString(dimStyle.Render("\n  Hint: The relay was rejected upstream. Check " + config.APIKeyEnv + " on the relay"))
		case apierrors.IsNetworkError(err):
			sb.WriteString(dimStyle.Render("\n  Hint: Is the relay running? Start it with 'barbchat serve'"))
		case apierrors.IsConfigError(err):
			sb.WriteString(dimStyle.Render("\n  Hint: Set it in the environment or in a .env file"))
		}
	}

	return sb.String()
}
