package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/barbchat/internal/api"
	"github.com/diogo/barbchat/internal/models"
)

// frameInterval is the render tick, 60 frames per second
const frameInterval = time.Second / 60

// Message types for the TUI
type (
	// frameMsg drives the fixed-rate layout pass
	frameMsg time.Time

	// streamOpenedMsg arrives once the relay accepted the request
	streamOpenedMsg struct {
		chunks <-chan api.Chunk
	}

	// streamChunkMsg carries one decoded delta, or the error that ended the stream
	streamChunkMsg struct {
		chunk api.Chunk
	}

	// streamDoneMsg means the chunk channel was closed
	streamDoneMsg struct{}

	// sendFailedMsg means the request never produced a stream
	sendFailedMsg struct {
		err error
	}
)

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// sendChat posts the conversation snapshot and opens the reply stream
func sendChat(ctx context.Context, client api.ChatClient, messages []models.Message) tea.Cmd {
	return func() tea.Msg {
		stream, err := client.Send(ctx, messages)
		if err != nil {
			return sendFailedMsg{err: err}
		}
		return streamOpenedMsg{chunks: stream.Chunks()}
	}
}

// waitForChunk blocks until the reader goroutine delivers the next chunk
func waitForChunk(chunks <-chan api.Chunk) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-chunks
		if !ok {
			return streamDoneMsg{}
		}
		return streamChunkMsg{chunk: chunk}
	}
}
