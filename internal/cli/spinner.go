package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows an animated progress indicator on stderr while a figure
// is being rendered. The message can be swapped mid-run with Update so the
// indicator tracks pipeline stages (parsing, composing, rendering).
type Spinner struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	message   string
	width     int
	stopped   bool
	cancelled bool
}

// newSpinner creates a spinner with the given initial message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that stops itself when ctx is
// cancelled. Cancelled reports whether that happened.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		message: message,
	}
}

// Start begins the animation in a background goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-s.ctx.Done():
				s.mu.Lock()
				if !s.stopped {
					s.cancelled = true
				}
				s.mu.Unlock()
				s.clearLine()
				return
			case <-ticker.C:
				s.mu.Lock()
				msg := s.message
				line := styleIconSpinner.Render(spinnerFrames[frame]) + " " + msg
				if w := len(msg) + 2; w > s.width {
					s.width = w
				}
				s.mu.Unlock()
				fmt.Fprintf(os.Stderr, "\r%s", line)
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

// Update replaces the spinner message. Safe to call while running.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop halts the animation and clears the line. Idempotent.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	s.cancel()
	<-s.done
	s.clearLine()
}

// StopWithSuccess stops the spinner and prints a success line in its place.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line in its place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner stopped because its context was
// cancelled rather than by an explicit Stop.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// clearLine erases the widest line the spinner has drawn so far.
func (s *Spinner) clearLine() {
	s.mu.Lock()
	width := s.width
	s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", width))
}
