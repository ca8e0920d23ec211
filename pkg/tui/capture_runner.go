package tui

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-go-golems/scopegrab/pkg/capture"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type CaptureRunnerOptions struct {
	// CaptureDir is where new artifacts land; created on demand.
	CaptureDir string
	Instrument string
	Verbose    bool
	Trace      bool
}

type captureRunner struct {
	orch   *capture.Orchestrator
	opts   CaptureRunnerOptions
	pub    message.Publisher
	tuiCtx context.Context
}

// RegisterCaptureRunner consumes UI actions and drives the orchestrator. A
// capture request that arrives while one is running comes back as a finished
// event carrying the rejection; the running capture is untouched.
func RegisterCaptureRunner(tuiCtx context.Context, bus *Bus, orch *capture.Orchestrator, opts CaptureRunnerOptions) {
	if tuiCtx == nil {
		tuiCtx = context.Background()
	}
	r := &captureRunner{orch: orch, opts: opts, pub: bus.Publisher, tuiCtx: tuiCtx}

	bus.AddHandler("scopegrab-capture-runner", TopicUIActions, func(msg *message.Message) error {
		defer msg.Ack()

		var env Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			return nil
		}

		switch env.Type {
		case UITypeCaptureRequest:
			return r.handleCapture()
		case UITypeDeleteRequest:
			var req DeleteRequested
			if err := json.Unmarshal(env.Payload, &req); err != nil {
				return nil
			}
			return r.handleDelete(req)
		default:
			return nil
		}
	})
}

func (r *captureRunner) handleCapture() error {
	if err := os.MkdirAll(r.opts.CaptureDir, 0o755); err != nil {
		return r.publishFinished(capture.Outcome{Reason: errors.Wrap(err, "mkdir capture dir").Error()})
	}

	req := capture.Request{
		Instrument: r.opts.Instrument,
		OutputPath: capture.DefaultFilename(r.opts.CaptureDir, time.Now()),
		Verbose:    r.opts.Verbose,
		Trace:      r.opts.Trace,
	}

	handle, err := r.orch.Start(r.tuiCtx, req)
	if err != nil {
		// reject, don't queue; the running capture keeps its handle
		return r.publishFinished(capture.Outcome{Reason: err.Error()})
	}

	if err := r.publishDomain(DomainTypeCaptureStarted, CaptureStarted{
		OutputPath: req.OutputPath,
		Instrument: req.Instrument,
		At:         time.Now(),
	}); err != nil {
		log.Warn().Err(err).Msg("publish capture started")
	}

	go r.forward(handle)
	return nil
}

// forward relays the handle's line stream and terminal outcome onto the bus,
// preserving emission order; the finished event is always last.
func (r *captureRunner) forward(handle *capture.Handle) {
	for line := range handle.Lines {
		if err := r.publishDomain(DomainTypeCaptureLine, CaptureLine{Line: line, At: time.Now()}); err != nil {
			log.Warn().Err(err).Msg("publish capture line")
		}
	}
	outcome := <-handle.Outcome
	_ = r.publishFinished(outcome)
}

func (r *captureRunner) handleDelete(req DeleteRequested) error {
	ev := ArtifactDeleted{Path: req.Path, At: time.Now()}
	if err := os.Remove(req.Path); err != nil {
		ev.Error = err.Error()
	}
	return r.publishDomain(DomainTypeArtifactDeleted, ev)
}

func (r *captureRunner) publishFinished(outcome capture.Outcome) error {
	return r.publishDomain(DomainTypeCaptureFinished, CaptureFinished{Outcome: outcome, At: time.Now()})
}

func (r *captureRunner) publishDomain(typ string, payload any) error {
	env, err := NewEnvelope(typ, payload)
	if err != nil {
		return err
	}
	b, err := env.MarshalJSONBytes()
	if err != nil {
		return err
	}
	return r.pub.Publish(TopicScopegrabEvents, message.NewMessage(watermill.NewUUID(), b))
}
