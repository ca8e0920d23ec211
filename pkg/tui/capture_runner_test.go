package tui

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-go-golems/scopegrab/pkg/capture"
	"github.com/stretchr/testify/require"
)

func writeGrabberScript(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "grabber.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/bash\n"+body), 0o755))
	return path
}

func startBus(t *testing.T, bus *Bus) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = bus.Run(ctx) }()
	select {
	case <-bus.Router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}
	return ctx
}

func decodeEnvelope(t *testing.T, msg *message.Message) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Payload, &env))
	return env
}

func nextEnvelope(t *testing.T, msgs <-chan *message.Message) Envelope {
	t.Helper()
	select {
	case msg := <-msgs:
		msg.Ack()
		return decodeEnvelope(t, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
		return Envelope{}
	}
}

func TestCaptureRunner_PublishesLifecycle(t *testing.T) {
	dir := t.TempDir()
	script := writeGrabberScript(t, dir, "echo connecting\ntouch \"$2\"\necho saved\n")

	bus, err := NewInMemoryBus()
	require.NoError(t, err)

	orch := capture.NewOrchestrator(capture.NewRunner(capture.RunnerOptions{Grabber: script}))
	RegisterCaptureRunner(context.Background(), bus, orch, CaptureRunnerOptions{CaptureDir: dir})

	ctx := startBus(t, bus)
	events, err := bus.Subscriber.Subscribe(ctx, TopicScopegrabEvents)
	require.NoError(t, err)

	require.NoError(t, PublishCaptureRequest(bus.Publisher))

	env := nextEnvelope(t, events)
	require.Equal(t, DomainTypeCaptureStarted, env.Type)
	var started CaptureStarted
	require.NoError(t, json.Unmarshal(env.Payload, &started))
	require.Equal(t, dir, filepath.Dir(started.OutputPath))

	var lines []string
	var finished CaptureFinished
	for {
		env := nextEnvelope(t, events)
		if env.Type == DomainTypeCaptureLine {
			var ev CaptureLine
			require.NoError(t, json.Unmarshal(env.Payload, &ev))
			lines = append(lines, ev.Line)
			continue
		}
		require.Equal(t, DomainTypeCaptureFinished, env.Type)
		require.NoError(t, json.Unmarshal(env.Payload, &finished))
		break
	}

	require.Contains(t, lines, "connecting")
	require.Contains(t, lines, "saved")
	require.True(t, finished.Outcome.OK)
	require.Equal(t, started.OutputPath, finished.Outcome.ArtifactPath)
}

func TestCaptureRunner_RejectsConcurrentRequest(t *testing.T) {
	dir := t.TempDir()
	script := writeGrabberScript(t, dir, "sleep 1\ntouch \"$2\"\n")

	bus, err := NewInMemoryBus()
	require.NoError(t, err)

	orch := capture.NewOrchestrator(capture.NewRunner(capture.RunnerOptions{Grabber: script}))
	RegisterCaptureRunner(context.Background(), bus, orch, CaptureRunnerOptions{CaptureDir: dir})

	ctx := startBus(t, bus)
	events, err := bus.Subscriber.Subscribe(ctx, TopicScopegrabEvents)
	require.NoError(t, err)

	require.NoError(t, PublishCaptureRequest(bus.Publisher))
	require.NoError(t, PublishCaptureRequest(bus.Publisher))

	var outcomes []capture.Outcome
	for len(outcomes) < 2 {
		env := nextEnvelope(t, events)
		if env.Type != DomainTypeCaptureFinished {
			continue
		}
		var ev CaptureFinished
		require.NoError(t, json.Unmarshal(env.Payload, &ev))
		outcomes = append(outcomes, ev.Outcome)
	}

	// the rejection comes back first, while the real capture still runs
	require.False(t, outcomes[0].OK)
	require.Contains(t, outcomes[0].Reason, "already in progress")
	require.True(t, outcomes[1].OK)
}

func TestCaptureRunner_DeletePublishesResult(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "old.png")
	require.NoError(t, os.WriteFile(target, []byte("png"), 0o644))

	bus, err := NewInMemoryBus()
	require.NoError(t, err)

	orch := capture.NewOrchestrator(capture.NewRunner(capture.RunnerOptions{}))
	RegisterCaptureRunner(context.Background(), bus, orch, CaptureRunnerOptions{CaptureDir: dir})

	ctx := startBus(t, bus)
	events, err := bus.Subscriber.Subscribe(ctx, TopicScopegrabEvents)
	require.NoError(t, err)

	require.NoError(t, PublishDeleteRequest(bus.Publisher, target))

	env := nextEnvelope(t, events)
	require.Equal(t, DomainTypeArtifactDeleted, env.Type)
	var ev ArtifactDeleted
	require.NoError(t, json.Unmarshal(env.Payload, &ev))
	require.Equal(t, target, ev.Path)
	require.Empty(t, ev.Error)
	require.NoFileExists(t, target)

	// deleting it again reports the failure instead of erroring out
	require.NoError(t, PublishDeleteRequest(bus.Publisher, target))
	env = nextEnvelope(t, events)
	require.Equal(t, DomainTypeArtifactDeleted, env.Type)
	require.NoError(t, json.Unmarshal(env.Payload, &ev))
	require.NotEmpty(t, ev.Error)
}
