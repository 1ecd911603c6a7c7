package api

import (
	"io"
	"sync"

	"github.com/diogo/barbchat/internal/sse"
)

// chunkBuffer is the channel capacity used by Chunks
const chunkBuffer = 64

// Chunk is one item delivered by Stream.Chunks. Err is set only on the final
// chunk of a stream that ended with a transport failure.
type Chunk struct {
	Delta string
	Err   error
}

// Stream is an open reply from the relay
type Stream struct {
	body      io.ReadCloser
	closeOnce sync.Once
}

// NewStream wraps an open SSE response body
func NewStream(body io.ReadCloser) *Stream {
	return &Stream{body: body}
}

// Each decodes the stream, calling onDelta for every reply fragment in
// arrival order, and closes the body when the stream ends.
func (s *Stream) Each(onDelta func(delta string)) error {
	defer s.Close()
	return sse.Consume(s.body, onDelta)
}

// Text reads the whole stream and returns the concatenated reply
func (s *Stream) Text() (string, error) {
	defer s.Close()
	return sse.Collect(s.body)
}

// Chunks decodes the stream on a separate goroutine. The channel is closed
// after the last chunk.
func (s *Stream) Chunks() <-chan Chunk {
	ch := make(chan Chunk, chunkBuffer)
	go func() {
		defer close(ch)
		err := s.Each(func(delta string) {
			ch <- Chunk{Delta: delta}
		})
		if err != nil {
			ch <- Chunk{Err: err}
		}
	}()
	return ch
}

// Close releases the response body. It is safe to call more than once.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.body.Close()
	})
	return err
}
