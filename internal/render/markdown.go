// Package render formats replies for terminal display: markdown through
// glamour and the colour palettes used by the chat TUI.
package render

import (
	"os"

	"github.com/diogo/barbchat/internal/config"
)

// Options configures the markdown renderer.
type Options struct {
	// Width is the word-wrap width in cells (default: 80)
	Width int

	// Style is a glamour style name ("dark", "light", "notty", ...) or a path to a JSON style
	Style string

	// EnableEmoji converts :emoji: to unicode characters
	EnableEmoji bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:       80,
		Style:       "dark",
		EnableEmoji: true,
	}
}

// OptionsFromConfig builds options from the markdown config section.
// GLAMOUR_STYLE overrides the configured style.
func OptionsFromConfig(md config.MarkdownConfig, width int) Options {
	opts := DefaultOptions()
	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	if width > 0 {
		opts.Width = width
	}
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	return opts
}

// Markdown renders content for terminal display using a pooled renderer.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}
