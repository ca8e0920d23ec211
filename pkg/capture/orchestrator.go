package capture

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Handle observes one accepted capture. Lines delivers the grabber's output
// in emission order and is closed when the output ends; Outcome then delivers
// exactly one terminal result and is closed. Callers must drain Lines or the
// capture task blocks.
type Handle struct {
	Lines   <-chan string
	Outcome <-chan Outcome
}

// Orchestrator serializes capture attempts: at most one is in flight, a
// second request is rejected rather than queued. It is purely a serialization
// and relay layer over Runner; it adds no errors of its own and never retries.
type Orchestrator struct {
	runner *Runner

	mu      sync.Mutex
	running bool
}

func NewOrchestrator(runner *Runner) *Orchestrator {
	return &Orchestrator{runner: runner}
}

// Start accepts the request and launches the capture in the background, or
// returns ErrCaptureInProgress. The in-flight flag flips before the process
// spawns, so back-to-back calls cannot both be accepted.
func (o *Orchestrator) Start(ctx context.Context, req Request) (*Handle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, ErrCaptureInProgress
	}
	o.running = true
	o.mu.Unlock()

	lines := make(chan string, 64)
	done := make(chan Outcome, 1)

	go func() {
		out := o.runner.Run(ctx, req, func(line string) {
			lines <- line
		})
		close(lines)

		o.mu.Lock()
		o.running = false
		o.mu.Unlock()

		if !out.OK {
			log.Warn().Str("reason", out.Reason).Msg("capture failed")
		}
		done <- out
		close(done)
	}()

	return &Handle{Lines: lines, Outcome: done}, nil
}

// Running reports whether a capture is currently in flight.
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// Wait drains the handle and returns the terminal outcome, forwarding each
// line to onLine. Convenience for synchronous callers like the CLI.
func (h *Handle) Wait(onLine func(string)) Outcome {
	for line := range h.Lines {
		if onLine != nil {
			onLine(line)
		}
	}
	return <-h.Outcome
}
