package sse

import (
	"errors"
	"io"

	apierrors "github.com/diogo/barbchat/internal/errors"
)

// readSize is the chunk size handed to the decoder per read
const readSize = 32 * 1024

// Consume reads r until it ends, calling onDelta with each reply fragment in
// arrival order. A clean end of stream returns nil; any other read failure is
// returned as a NetworkError after the deltas read so far were delivered.
func Consume(r io.Reader, onDelta func(string)) error {
	dec := NewDecoder()
	buf := make([]byte, readSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, delta := range dec.Deltas(buf[:n]) {
				onDelta(delta)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return apierrors.NewNetworkError("read stream", err)
		}
	}
}

// Collect consumes r and returns the concatenated reply text
func Collect(r io.Reader) (string, error) {
	var text []byte
	err := Consume(r, func(delta string) {
		text = append(text, delta...)
	})
	return string(text), err
}
