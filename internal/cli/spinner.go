package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line while photos are cut from a sheet:
//
//	⠹ Cutting photos from 3a.pdf 7/24
//
// Step may be called from any goroutine; the new count shows on the next
// frame. The spinner stops when its context is cancelled.
type Spinner struct {
	out    io.Writer
	label  string
	done   atomic.Int64
	total  atomic.Int64
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	started  atomic.Bool
	stopOnce sync.Once
	stopped  chan struct{}

	mu    sync.Mutex
	width int // widest line written, cleared on stop
}

// newSpinner returns a spinner for total photos. total may be 0 when the
// count is not known up front.
func newSpinner(ctx context.Context, out io.Writer, label string, total int) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &Spinner{
		out:     out,
		label:   label,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	s.total.Store(int64(total))
	return s
}

// Step records that done of total photos are cut.
func (s *Spinner) Step(done, total int) {
	s.done.Store(int64(done))
	s.total.Store(int64(total))
}

// line renders one frame.
func (s *Spinner) line(frame string) string {
	l := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.label)
	if total := s.total.Load(); total > 0 {
		l += " " + StyleValue.Render(fmt.Sprintf("%d/%d", s.done.Load(), total))
	}
	return l
}

// Start begins the animation.
func (s *Spinner) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.write(s.line(spinnerFrames[i%len(spinnerFrames)]))
			}
		}
	}()
}

func (s *Spinner) write(l string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, lipgloss.Width(l))
	fmt.Fprint(s.out, "\r"+l)
}

// Stop ends the animation and clears the line. It is safe to call more
// than once, and without Start.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		if s.started.Load() {
			<-s.stopped
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.width > 0 {
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
		}
	})
}

// Cancelled reports whether the spinner ended because the command was
// interrupted rather than by Stop.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
