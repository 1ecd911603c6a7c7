package commands

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorError    = lipgloss.Color("#f7768e")
	colorPrimary  = lipgloss.Color("#7aa2f7")
)

// spinnerColors cycle through the animated dots
var spinnerColors = []lipgloss.Color{
	lipgloss.Color("#7aa2f7"),
	lipgloss.Color("#bb9af7"),
	lipgloss.Color("#9ece6a"),
	lipgloss.Color("#e0af68"),
}

// spinner draws an animated status line on w until stopped
type spinner struct {
	w       io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool
}

func newSpinner(w io.Writer, message string) *spinner {
	return &spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.w, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.w, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	spin := lipgloss.NewStyle().
		Foreground(spinnerColors[s.frame%len(spinnerColors)]).
		Bold(true).
		Render(chars[s.frame%len(chars)])

	var dots strings.Builder
	lit := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < lit {
			dots.WriteString(lipgloss.NewStyle().Foreground(spinnerColors[(s.frame+i)%len(spinnerColors)]).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Italic(true).Render(s.message)
	fmt.Fprintf(s.w, "\r\033[K%s %s %s", spin, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.w, "%s %s\n", checkmark, msg)
}

// stopSilently stops the spinner and clears its line
func (s *spinner) stopSilently() {
	s.stopOnce()
	<-s.done
}

// stopWithError stops the spinner and shows an error mark
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
	fmt.Fprintln(s.w, lipgloss.NewStyle().Foreground(colorError).Bold(true).Render("✗"))
}
