package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func newBufferedSpinner(ctx context.Context, message string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(ctx, message)
	s.out = &buf
	return s, &buf
}

func TestSpinnerDraws(t *testing.T) {
	s, buf := newBufferedSpinner(context.Background(), "Imposing book.pdf...")
	s.Start()
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Imposing book.pdf...") {
		t.Errorf("spinner output missing message: %q", buf.String())
	}
	if !s.Cancelled() {
		t.Error("Stop should cancel the spinner context")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := newBufferedSpinner(ctx, "Testing with context...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := newBufferedSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s, buf := newBufferedSpinner(context.Background(), "never started")
	s.Stop()
	if strings.Contains(buf.String(), "never started") {
		t.Error("unstarted spinner should not draw")
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	s, buf := newBufferedSpinner(context.Background(), "Imposing book.pdf...")
	s.Start()
	s.SetMessage("Imposing book.pdf (3/20)...")
	time.Sleep(250 * time.Millisecond)
	s.SetMessage("Done")
	s.Stop()

	if !strings.Contains(buf.String(), "(3/20)") {
		t.Errorf("spinner output missing updated message: %q", buf.String())
	}
	if s.width < len("Imposing book.pdf (3/20)...") {
		t.Errorf("width = %d, want at least the longest message", s.width)
	}
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s, _ := newBufferedSpinner(context.Background(), "Testing success...")
	s.Start()
	s.StopWithSuccess("Done!")
}
