package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/diogo/barbchat/internal/api"
	"github.com/diogo/barbchat/internal/layout"
	"github.com/diogo/barbchat/internal/models"
	"github.com/diogo/barbchat/internal/render"
)

const (
	// DefaultViewportWidth caps the conversation panel width in cells
	DefaultViewportWidth = 100

	headerHeight = 1
	inputHeight  = 5 // label, two textarea rows, border
	statusHeight = 1
	panelBorder  = 2

	minViewportWidth  = 20
	minViewportHeight = 3
)

// Model represents the TUI state. Update is the only writer of the conversation.
type Model struct {
	client api.ChatClient
	ctx    context.Context
	logger zerolog.Logger
	copyFn func(string) error

	conv     *models.Conversation
	errIndex map[int]bool // messages that are error markers

	textarea textarea.Model

	// Request state
	waiting   bool // sent, no reply placeholder yet
	streaming bool // placeholder appended, deltas still arriving
	chunks    <-chan api.Chunk

	// Layout
	maxWidth int
	viewport layout.Viewport
	frame    layout.State

	notice string
	ready  bool
	width  int
	height int
}

// Option configures the Model
type Option func(*Model)

// WithLogger sets the TUI logger
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithViewportWidth caps the conversation panel width
func WithViewportWidth(width int) Option {
	return func(m *Model) {
		if width > 0 {
			m.maxWidth = width
		}
	}
}

// WithPalette applies a colour palette
func WithPalette(p render.Palette) Option {
	return func(m *Model) {
		UpdateTheme(p)
	}
}

// WithClipboard replaces the clipboard writer used by ctrl+y
func WithClipboard(copyFn func(string) error) Option {
	return func(m *Model) {
		m.copyFn = copyFn
	}
}

// NewChatModel creates a new chat TUI model
func NewChatModel(client api.ChatClient, opts ...Option) Model {
	m := Model{
		client:   client,
		ctx:      context.Background(),
		logger:   zerolog.Nop(),
		copyFn:   clipboard.WriteAll,
		conv:     models.NewConversation(),
		errIndex: make(map[int]bool),
		maxWidth: DefaultViewportWidth,
	}
	for _, opt := range opts {
		opt(&m)
	}

	ta := textarea.New()
	ta.Placeholder = "Say something to Barb..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = textStyle
	ta.FocusedStyle.Placeholder = placeholder
	ta.BlurredStyle = ta.FocusedStyle
	m.textarea = ta

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		frameTick(),
	)
}

// Conversation returns the transcript
func (m Model) Conversation() *models.Conversation {
	return m.conv
}

// Frame returns the layout computed on the last tick
func (m Model) Frame() layout.State {
	return m.frame
}

// Busy reports whether a reply is pending or streaming
func (m Model) Busy() bool {
	return m.waiting || m.streaming
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = m.viewportSize()
		m.textarea.SetWidth(max(10, m.viewport.Width-4))
		m.ready = true
		return m, nil

	case frameMsg:
		m.frame = layout.Compute(m.conv.Messages(), m.viewport, layout.TerminalMetrics, m.waiting, layout.CellWidth)
		return m, frameTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+y":
			m.copyLastReply()
			return m, nil

		case "enter":
			return m.submit()
		}

	case streamOpenedMsg:
		m.conv.Append(models.Message{Role: models.RoleAssistant, Content: ""})
		m.waiting = false
		m.streaming = true
		m.chunks = msg.chunks
		m.logger.Debug().Msg("reply stream opened")
		return m, waitForChunk(m.chunks)

	case streamChunkMsg:
		if msg.chunk.Err != nil {
			m.logger.Warn().Err(msg.chunk.Err).Msg("reply stream failed")
			m.appendError(msg.chunk.Err)
		} else {
			m.conv.AppendDelta(msg.chunk.Delta)
		}
		return m, waitForChunk(m.chunks)

	case streamDoneMsg:
		m.streaming = false
		m.chunks = nil
		m.logger.Debug().Int("messages", m.conv.Len()).Msg("reply stream finished")
		return m, nil

	case sendFailedMsg:
		m.logger.Warn().Err(msg.err).Msg("chat request failed")
		m.waiting = false
		m.appendError(msg.err)
		return m, nil
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		m.notice = ""
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

// submit appends the typed message and sends the whole conversation
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}

	switch input {
	case "exit", "quit", "/exit", "/quit":
		return m, tea.Quit
	}

	if m.Busy() {
		m.notice = "Barb is still replying"
		return m, nil
	}

	m.conv.Append(models.Message{Role: models.RoleUser, Content: input})
	m.textarea.Reset()
	m.waiting = true
	m.notice = ""

	m.logger.Debug().Int("messages", m.conv.Len()).Msg("sending message")
	return m, sendChat(m.ctx, m.client, m.conv.Messages())
}

func (m *Model) appendError(err error) {
	m.conv.Append(models.ErrorMessage(err))
	m.errIndex[m.conv.Len()-1] = true
}

func (m *Model) copyLastReply() {
	reply := m.conv.LastReply()
	if reply == "" {
		m.notice = "Nothing to copy yet"
		return
	}
	if err := m.copyFn(reply); err != nil {
		m.logger.Warn().Err(err).Msg("clipboard write failed")
		m.notice = "Copy failed: " + err.Error()
		return
	}
	m.notice = "Copied Barb's reply"
}

// viewportSize fits the conversation panel into the window
func (m Model) viewportSize() layout.Viewport {
	width := min(m.maxWidth, m.width-panelBorder)
	height := m.height - headerHeight - inputHeight - statusHeight - panelBorder
	return layout.Viewport{
		Width:  max(minViewportWidth, width),
		Height: max(minViewportHeight, height),
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return welcomeStyle.Render("  Initializing...")
	}

	header := headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("Barb"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.client.Model()),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.client.RelayURL()),
	))

	messages := messagesAreaStyle.
		Width(m.viewport.Width).
		Height(m.viewport.Height).
		Render(m.renderConversation())

	input := inputPanelStyle.Width(m.viewport.Width).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		inputLabelStyle.Render("You"),
		m.textarea.View(),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		messages,
		input,
		m.renderStatusBar(),
	)
}

// renderConversation draws the visible lines of the last computed frame
func (m Model) renderConversation() string {
	if m.conv.Len() == 0 && !m.waiting {
		return welcomeStyle.Render(" Barb is curled up, waiting for you to say something.")
	}

	rows := make([]string, m.viewport.Height)
	pad := strings.Repeat(" ", layout.TerminalMetrics.HorizontalMargin/2)

	for _, line := range m.frame.Visible(m.viewport) {
		rows[line.Y] = pad + m.lineStyle(line).Render(line.Text)
	}
	if m.frame.IndicatorVisible(m.viewport) {
		rows[m.frame.IndicatorY] = pad + indicatorStyle.Render(layout.IndicatorText)
	}

	return strings.Join(rows, "\n")
}

func (m Model) lineStyle(line layout.Line) lipgloss.Style {
	switch {
	case m.errIndex[line.Index]:
		return errorLineStyle
	case line.Role == models.RoleUser:
		return userLineStyle
	default:
		return assistantLine
	}
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+Y", "Copy reply"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, statusDescStyle.Render("  │  "))
	if m.notice != "" {
		bar += "   " + noticeStyle.Render(m.notice)
	}
	return statusBarStyle.Width(m.viewport.Width + panelBorder).Align(lipgloss.Center).Render(bar)
}

// RunChat starts the chat TUI
func RunChat(client api.ChatClient, opts ...Option) error {
	p := tea.NewProgram(
		NewChatModel(client, opts...),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
