package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var frames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner displays an animated progress indicator with elapsed time.
type Spinner struct {
	w     io.Writer
	mu    sync.Mutex
	msg   string
	start time.Time
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewSpinner creates a new Spinner writing to w (not yet running).
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w}
}

// Start begins the spinner animation with the given message.
func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		s.msg = msg
		return
	}
	s.msg = msg
	s.start = time.Now()
	s.done = make(chan struct{})

	s.wg.Add(1)
	go s.run(s.done)
}

// Update changes the spinner message while it's running. Safe to use as a
// progress callback from several goroutines.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop halts the spinner and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	done := s.done
	s.done = nil
	s.mu.Unlock()
	if done == nil {
		return
	}

	close(done)
	s.wg.Wait()

	// Clear the spinner line
	fmt.Fprintf(s.w, "\r\033[K")
}

func (s *Spinner) run(done <-chan struct{}) {
	defer s.wg.Done()

	tick := time.NewTicker(80 * time.Millisecond)
	defer tick.Stop()

	i := 0
	for {
		select {
		case <-done:
			return
		case <-tick.C:
			s.mu.Lock()
			msg := s.msg
			elapsed := time.Since(s.start).Truncate(100 * time.Millisecond)
			s.mu.Unlock()
			fmt.Fprintf(s.w, "\r\033[K%c %s (%s)", frames[i%len(frames)], msg, elapsed)
			i++
		}
	}
}
