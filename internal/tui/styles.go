// Package tui provides the terminal chat interface for barbchat.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/barbchat/internal/render"
)

// Style variables (rebuilt when the palette changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	// Conversation panel
	messagesAreaStyle lipgloss.Style
	userLineStyle     lipgloss.Style
	assistantLine     lipgloss.Style
	errorLineStyle    lipgloss.Style
	indicatorStyle    lipgloss.Style
	welcomeStyle      lipgloss.Style

	// Input panel
	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	textStyle       lipgloss.Style
	placeholder     lipgloss.Style

	// Status bar
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	noticeStyle     lipgloss.Style
)

func init() {
	UpdateTheme(render.TokyoNight)
}

// UpdateTheme rebuilds every style from p
func UpdateTheme(p render.Palette) {
	headerStyle = lipgloss.NewStyle().
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Foreground(p.Title).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(p.TextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(p.TextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border)

	userLineStyle = lipgloss.NewStyle().
		Foreground(p.User)

	assistantLine = lipgloss.NewStyle().
		Foreground(p.Assistant)

	errorLineStyle = lipgloss.NewStyle().
		Foreground(p.Error)

	// Gray italic waiting line
	indicatorStyle = lipgloss.NewStyle().
		Foreground(p.Indicator).
		Italic(true)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Italic(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(p.User).
		Bold(true)

	textStyle = lipgloss.NewStyle().
		Foreground(p.Text)

	placeholder = lipgloss.NewStyle().
		Foreground(p.TextDim)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(p.TextDim)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(p.Title).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(p.TextDim)

	noticeStyle = lipgloss.NewStyle().
		Foreground(p.Assistant).
		Italic(true)
}
