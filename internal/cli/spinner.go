package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []rune("⣾⣽⣻⢿⡿⣟⣯⣷")

// Spinner animates a one-line status on w (normally stderr) while a long
// step runs. It stops on its own when its context is cancelled.
type Spinner struct {
	w      io.Writer
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}
	once   sync.Once

	started bool

	mu    sync.Mutex
	msg   string
	width int // widest message so far, cleared on exit
}

func newSpinner(parent context.Context, w io.Writer, msg string) *Spinner {
	ctx, cancel := context.WithCancel(parent)
	return &Spinner{
		w:      w,
		parent: parent,
		ctx:    ctx,
		cancel: cancel,
		exited: make(chan struct{}),
		msg:    msg,
		width:  len(msg),
	}
}

// Start launches the animation goroutine.
func (s *Spinner) Start() {
	s.started = true
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.exited)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-tick.C:
			s.mu.Lock()
			frame := string(spinnerFrames[i%len(spinnerFrames)])
			fmt.Fprintf(s.w, "\r%s %s", StyleHighlight.Render(frame), StyleDim.Render(s.msg))
			s.mu.Unlock()
		}
	}
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
}

// SetMessage swaps the status text, e.g. to report frame progress.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
	s.width = max(s.width, len(msg))
}

// Stop ends the animation and waits for the line to be cleared. It is
// safe to call more than once.
func (s *Spinner) Stop() {
	s.cancel()
	s.once.Do(func() {
		if s.started {
			<-s.exited
		}
	})
}

// Fail stops the spinner and prints msg as an error line.
func (s *Spinner) Fail(msg string) {
	s.Stop()
	newConsole(s.w).fail("%s", msg)
}

// Cancelled reports whether the caller's context ended, as on Ctrl+C.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
