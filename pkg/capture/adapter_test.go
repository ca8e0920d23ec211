package capture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunner_Success(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "capture.png")
	req := Request{OutputPath: out}

	runner := NewRunner(RunnerOptions{Grabber: writeScript(t, dir, `
echo "connecting"
echo "downloading screen"
touch "$2"
`)})

	var lines []string
	outcome := runner.Run(context.Background(), req, func(line string) {
		lines = append(lines, line)
	})

	require.True(t, outcome.OK)
	require.Equal(t, out, outcome.ArtifactPath)
	require.Empty(t, outcome.Tail)
	// first line is the command echo, then the two script lines in order
	require.GreaterOrEqual(t, len(lines), 3)
	require.Equal(t, "connecting", lines[1])
	require.Equal(t, "downloading screen", lines[2])
	_, err := os.Stat(out)
	require.NoError(t, err)
}

func TestRunner_NonZeroExitKeepsBoundedTail(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(RunnerOptions{Grabber: writeScript(t, dir, `
for i in 1 2 3 4 5 6 7 8; do echo "line $i"; done
echo "fatal: no instrument found" >&2
exit 3
`)})

	outcome := runner.Run(context.Background(), Request{OutputPath: filepath.Join(dir, "x.png")}, nil)

	require.False(t, outcome.OK)
	require.Contains(t, outcome.Reason, "non-zero exit")
	require.Contains(t, outcome.Reason, "3")
	require.Len(t, outcome.Tail, DefaultTailLen)
	require.Equal(t, "fatal: no instrument found", outcome.Tail[len(outcome.Tail)-1])
}

func TestRunner_StartFailureHasEmptyTail(t *testing.T) {
	runner := NewRunner(RunnerOptions{Grabber: "/nonexistent/grab_o_scope"})

	outcome := runner.Run(context.Background(), Request{OutputPath: "/tmp/x.png"}, nil)

	require.False(t, outcome.OK)
	require.Contains(t, outcome.Reason, "start grabber")
	require.Empty(t, outcome.Tail)
}

func TestRunner_MergesStderrInOrder(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(RunnerOptions{Grabber: writeScript(t, dir, `
echo "out 1"
echo "err 1" >&2
echo "out 2"
`)})

	var lines []string
	outcome := runner.Run(context.Background(), Request{OutputPath: filepath.Join(dir, "x.png")}, func(line string) {
		lines = append(lines, line)
	})

	require.True(t, outcome.OK)
	require.Equal(t, []string{"out 1", "err 1", "out 2"}, lines[1:])
}

func TestRunner_MissingOutputPathRejected(t *testing.T) {
	runner := NewRunner(RunnerOptions{})
	outcome := runner.Run(context.Background(), Request{}, nil)
	require.False(t, outcome.OK)
	require.Contains(t, outcome.Reason, "missing output path")
}

func TestRequest_Args(t *testing.T) {
	req := Request{Instrument: "RIGOL", OutputPath: "/tmp/shot.png", Verbose: true, Trace: true}
	require.Equal(t, []string{"--name", "RIGOL", "--filename", "/tmp/shot.png", "--verbose", "--trace"}, req.Args())

	bare := Request{OutputPath: "/tmp/shot.png"}
	require.Equal(t, []string{"--filename", "/tmp/shot.png"}, bare.Args())
}

func TestDefaultFilename(t *testing.T) {
	ts := time.Date(2026, 8, 25, 14, 3, 9, 0, time.UTC)
	require.Equal(t, "/captures/capture_20260825_140309.png", DefaultFilename("/captures", ts))
}

// writeScript drops an executable stand-in grabber into dir. The script sees
// the adapter-built flags as positional args ($1 = --filename, $2 = path ...).
func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "fake-grabber.sh")
	script := "#!/bin/bash\n" + body
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}
