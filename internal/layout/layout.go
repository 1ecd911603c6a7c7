package layout

import "github.com/diogo/barbchat/internal/models"

// IndicatorText is drawn below the last message while a reply is pending
const IndicatorText = "Barb is typing..."

// Metrics are the fixed spacing constants of a rendering surface
type Metrics struct {
	LineHeight       int
	MessageGap       int // vertical gap after each message
	TopMargin        int // y of the first line before scrolling
	BottomMargin     int // space reserved below the content
	HorizontalMargin int // total left+right margin subtracted from the width
}

// PixelMetrics are the canvas constants of the browser client
var PixelMetrics = Metrics{
	LineHeight:       20,
	MessageGap:       10,
	TopMargin:        80,
	BottomMargin:     100,
	HorizontalMargin: 40,
}

// TerminalMetrics lay out one text row per line
var TerminalMetrics = Metrics{
	LineHeight:       1,
	MessageGap:       1,
	TopMargin:        0,
	BottomMargin:     1,
	HorizontalMargin: 2,
}

// Viewport is the fixed-size drawing surface
type Viewport struct {
	Width  int
	Height int
}

// UsableWidth is the width available to wrapped text
func (v Viewport) UsableWidth(m Metrics) int {
	return v.Width - m.HorizontalMargin
}

// UsableHeight is the height available to content before scrolling kicks in
func (v Viewport) UsableHeight(m Metrics) int {
	return v.Height - m.BottomMargin
}

// Line is one wrapped line positioned in viewport coordinates
type Line struct {
	Role  models.Role
	Text  string
	Y     int
	Index int // index of the message the line belongs to
}

// State is the render state for one tick
type State struct {
	Lines         []Line
	ContentHeight int
	ScrollOffset  int
	// IndicatorY is where the waiting indicator goes: right after the last message
	IndicatorY int
	Waiting    bool
}

// Visible returns the lines whose rows fall inside the viewport
func (s State) Visible(v Viewport) []Line {
	var out []Line
	for _, l := range s.Lines {
		if l.Y >= 0 && l.Y < v.Height {
			out = append(out, l)
		}
	}
	return out
}

// IndicatorVisible reports whether the waiting indicator lands inside the viewport
func (s State) IndicatorVisible(v Viewport) bool {
	return s.Waiting && s.IndicatorY >= 0 && s.IndicatorY < v.Height
}

// ScrollOffset is how far content is pulled up so its end stays visible
func ScrollOffset(contentHeight int, v Viewport, m Metrics) int {
	return max(0, contentHeight-v.UsableHeight(m))
}

// Compute lays out every message, including ones scrolled off the top
func Compute(messages []models.Message, v Viewport, m Metrics, waiting bool, measure Measurer) State {
	usable := v.UsableWidth(m)

	wrapped := make([][]string, len(messages))
	height := m.TopMargin
	for i, msg := range messages {
		wrapped[i] = Wrap(msg.Labeled(), usable, measure)
		height += len(wrapped[i])*m.LineHeight + m.MessageGap
	}

	offset := ScrollOffset(height, v, m)
	state := State{
		ContentHeight: height,
		ScrollOffset:  offset,
		Waiting:       waiting,
	}

	y := m.TopMargin - offset
	for i, msg := range messages {
		for _, text := range wrapped[i] {
			state.Lines = append(state.Lines, Line{Role: msg.Role, Text: text, Y: y, Index: i})
			y += m.LineHeight
		}
		y += m.MessageGap
	}
	state.IndicatorY = y

	return state
}
