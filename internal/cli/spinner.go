package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/oddkernel/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner draws a one-line status with the elapsed time while a pipeline
// runs. After [Spinner.Track] the message follows the pipeline stages.
type Spinner struct {
	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	start  time.Time

	mu      sync.Mutex
	message string
	width   int
	started bool
	stopped chan struct{}
}

// newSpinner creates a spinner writing to w. It stops drawing when ctx is
// cancelled.
func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		ctx:     ctx,
		cancel:  cancel,
		message: message,
		stopped: make(chan struct{}),
	}
}

// SetMessage replaces the status message.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	s.message = msg
	s.mu.Unlock()
}

// Start begins drawing. Calling Start twice has no effect.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.start = time.Now()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := time.Since(s.start).Truncate(100 * time.Millisecond)
	line := fmt.Sprintf("%s %s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message), StyleDim.Render(elapsed.String()))
	fmt.Fprintf(s.w, "\r%s", line)
	s.width = max(s.width, len(s.message)+len(elapsed.String())+4)
}

// Stop stops drawing and clears the line. It is safe to call more than once
// and on a spinner that was never started.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return
	}
	<-s.stopped

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	}
}

// StopWithError stops the spinner and reports a failure.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Track makes the spinner follow pipeline stage events. Events are still
// forwarded to the hooks registered before, such as Prometheus metrics.
// The returned function restores those hooks.
func (s *Spinner) Track() (untrack func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(stageHooks{PipelineHooks: prev, spinner: s})
	return func() { observability.SetPipelineHooks(prev) }
}

// stageHooks mirrors stage starts on a spinner.
type stageHooks struct {
	observability.PipelineHooks
	spinner *Spinner
}

func (h stageHooks) OnLoadStart(ctx context.Context, path string) {
	h.spinner.SetMessage(fmt.Sprintf("Loading %s...", filepath.Base(path)))
	h.PipelineHooks.OnLoadStart(ctx, path)
}

func (h stageHooks) OnBuildStart(ctx context.Context, graphs int) {
	h.spinner.SetMessage(fmt.Sprintf("Building Big DAG from %d graphs...", graphs))
	h.PipelineHooks.OnBuildStart(ctx, graphs)
}

func (h stageHooks) OnReduceStart(ctx context.Context, mode string) {
	h.spinner.SetMessage(fmt.Sprintf("Reducing %s kernel matrix...", mode))
	h.PipelineHooks.OnReduceStart(ctx, mode)
}
