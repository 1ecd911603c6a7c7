package sse

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/diogo/barbchat/internal/models"
)

// Event is one parsed data line
type Event struct {
	Type  string
	Delta string
}

// HasDelta reports whether the event carries reply text
func (e Event) HasDelta() bool {
	return e.Type == models.EventContentBlockDelta && e.Delta != ""
}

// Decoder holds the per-response decode state. It is not safe for concurrent use.
type Decoder struct {
	utf8    transform.Transformer
	pending []byte // undecoded tail, an incomplete UTF-8 sequence
	buffer  string // text after the last line feed
	scratch []byte
}

// NewDecoder creates a decoder for one response body
func NewDecoder() *Decoder {
	return &Decoder{
		utf8:    unicode.UTF8.NewDecoder(),
		scratch: make([]byte, 4096),
	}
}

// Feed decodes a chunk and returns the events from every line it completed
func (d *Decoder) Feed(chunk []byte) []Event {
	d.buffer += d.decode(chunk)

	lines := strings.Split(d.buffer, "\n")
	d.buffer = lines[len(lines)-1]

	var events []Event
	for _, line := range lines[:len(lines)-1] {
		if ev, ok := ParseLine(line); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Deltas is Feed reduced to the reply text fragments
func (d *Decoder) Deltas(chunk []byte) []string {
	var deltas []string
	for _, ev := range d.Feed(chunk) {
		if ev.HasDelta() {
			deltas = append(deltas, ev.Delta)
		}
	}
	return deltas
}

// Buffered returns the partial line waiting for its line feed
func (d *Decoder) Buffered() string {
	return d.buffer
}

// Reset discards all state so the decoder can serve another response
func (d *Decoder) Reset() {
	d.utf8.Reset()
	d.pending = nil
	d.buffer = ""
}

// decode runs the UTF-8 decoder over pending+chunk and keeps any
// incomplete trailing sequence for the next call
func (d *Decoder) decode(chunk []byte) string {
	src := append(d.pending, chunk...)
	d.pending = nil

	var out strings.Builder
	for len(src) > 0 {
		nDst, nSrc, err := d.utf8.Transform(d.scratch, src, false)
		out.Write(d.scratch[:nDst])
		src = src[nSrc:]

		switch {
		case err == nil:
			return out.String()
		case errors.Is(err, transform.ErrShortDst):
			if nDst == 0 && nSrc == 0 {
				d.scratch = make([]byte, 2*len(d.scratch))
			}
		case errors.Is(err, transform.ErrShortSrc):
			d.pending = append([]byte(nil), src...)
			return out.String()
		default:
			// The UTF-8 decoder replaces invalid bytes instead of failing
			return out.String()
		}
	}
	return out.String()
}

// ParseLine extracts the event from one complete SSE line.
// ok is false for non-data lines, the [DONE] sentinel, and invalid JSON.
func ParseLine(line string) (Event, bool) {
	payload, found := strings.CutPrefix(line, models.SSEDataPrefix)
	if !found {
		return Event{}, false
	}
	if payload == models.SSEDoneSentinel {
		return Event{}, false
	}
	if !gjson.Valid(payload) {
		return Event{}, false
	}

	parsed := gjson.Parse(payload)
	ev := Event{Type: parsed.Get("type").String()}
	if text := parsed.Get("delta.text"); text.Type == gjson.String {
		ev.Delta = text.Str
	}
	return ev, true
}
