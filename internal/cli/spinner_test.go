package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerLine(t *testing.T) {
	tests := []struct {
		name        string
		total, done int
		want        string
		absent      string
	}{
		{"with count", 24, 7, "7/24", ""},
		{"unknown total", 0, 0, "Cutting photos from 3a.pdf", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSpinner(context.Background(), &bytes.Buffer{}, "Cutting photos from 3a.pdf", tt.total)
			if tt.done > 0 {
				s.Step(tt.done, tt.total)
			}
			line := s.line("⠋")
			if !strings.Contains(line, tt.want) {
				t.Errorf("line() = %q, want %q", line, tt.want)
			}
			if !strings.Contains(line, "Cutting photos from 3a.pdf") {
				t.Errorf("line() = %q, missing label", line)
			}
			if tt.absent != "" && strings.Contains(line, tt.absent) {
				t.Errorf("line() = %q, should not contain %q", line, tt.absent)
			}
		})
	}
}

func TestSpinnerShowsSteps(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "Cutting photos from 3a.pdf", 5)
	s.Start()
	s.Step(3, 5)
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	if got := out.String(); !strings.Contains(got, "3/5") {
		t.Errorf("output = %q, want a 3/5 frame", got)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop")
	}
}

func TestSpinnerInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &syncBuffer{}, "Cutting photos", 3)
	s.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() blocked after cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after the command context was cancelled")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "Cutting photos", 3)
	s.Stop() // before Start
	s.Start()
	s.Stop()
	s.Stop()
}
