package capture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func slowGrabber(t *testing.T, dir string) *Runner {
	t.Helper()
	path := filepath.Join(dir, "slow-grabber.sh")
	script := "#!/bin/bash\necho started\nsleep 2\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return NewRunner(RunnerOptions{Grabber: path})
}

func TestOrchestrator_RejectsConcurrentCapture(t *testing.T) {
	dir := t.TempDir()
	o := NewOrchestrator(slowGrabber(t, dir))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	first, err := o.Start(ctx, Request{OutputPath: filepath.Join(dir, "a.png")})
	require.NoError(t, err)
	require.True(t, o.Running())

	second, err := o.Start(ctx, Request{OutputPath: filepath.Join(dir, "b.png")})
	require.Nil(t, second)
	require.True(t, errors.Is(err, ErrCaptureInProgress))

	// the rejection leaves the first capture unaffected
	outcome := first.Wait(nil)
	require.True(t, outcome.OK)
	require.False(t, o.Running())
}

func TestOrchestrator_ReleasesFlagOnFailure(t *testing.T) {
	dir := t.TempDir()
	failing := filepath.Join(dir, "failing.sh")
	require.NoError(t, os.WriteFile(failing, []byte("#!/bin/bash\necho boom\nexit 1\n"), 0o755))
	o := NewOrchestrator(NewRunner(RunnerOptions{Grabber: failing}))

	ctx := context.Background()
	h, err := o.Start(ctx, Request{OutputPath: filepath.Join(dir, "a.png")})
	require.NoError(t, err)

	outcome := h.Wait(nil)
	require.False(t, outcome.OK)

	// failure releases the lock like success does
	h2, err := o.Start(ctx, Request{OutputPath: filepath.Join(dir, "b.png")})
	require.NoError(t, err)
	_ = h2.Wait(nil)
}

func TestOrchestrator_LinesThenSingleTerminalOutcome(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "grabber.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\necho one\necho two\necho three\ntouch \"$2\"\n"), 0o755))
	o := NewOrchestrator(NewRunner(RunnerOptions{Grabber: script}))

	h, err := o.Start(context.Background(), Request{OutputPath: filepath.Join(dir, "a.png")})
	require.NoError(t, err)

	var lines []string
	for line := range h.Lines {
		lines = append(lines, line)
	}
	require.Equal(t, []string{"one", "two", "three"}, lines[1:])

	outcome, ok := <-h.Outcome
	require.True(t, ok)
	require.True(t, outcome.OK)

	// channel closes after the single terminal outcome
	_, ok = <-h.Outcome
	require.False(t, ok)
}

func TestOrchestrator_StartFailureStillTerminates(t *testing.T) {
	o := NewOrchestrator(NewRunner(RunnerOptions{Grabber: "/nonexistent/grabber"}))

	h, err := o.Start(context.Background(), Request{OutputPath: "/tmp/a.png"})
	require.NoError(t, err)

	outcome := h.Wait(nil)
	require.False(t, outcome.OK)
	require.Contains(t, outcome.Reason, "start grabber")
	require.Empty(t, outcome.Tail)
	require.False(t, o.Running())
}

func TestOrchestrator_InvalidRequestRejectedUpfront(t *testing.T) {
	o := NewOrchestrator(NewRunner(RunnerOptions{}))
	_, err := o.Start(context.Background(), Request{})
	require.Error(t, err)
	require.False(t, o.Running())
}
