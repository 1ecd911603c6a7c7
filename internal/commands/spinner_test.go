package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Connecting")
	s.start()
	// Let it spin briefly
	time.Sleep(200 * time.Millisecond)
	s.stopWithSuccess("done")

	out := buf.String()
	if !strings.Contains(out, "Connecting") {
		t.Errorf("expected spinner frame with message, got %q", out)
	}
	if !strings.Contains(out, "done") {
		t.Errorf("expected success line, got %q", out)
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Connecting")
	s.start()
	time.Sleep(30 * time.Millisecond)
	s.stopWithError()

	if !strings.Contains(buf.String(), "✗") {
		t.Errorf("expected error mark, got %q", buf.String())
	}
}

func TestSpinner_StopTwice(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Waiting")
	s.start()
	s.stopSilently()
	// A second stop must not panic on the closed channel
	s.stopSilently()
}
