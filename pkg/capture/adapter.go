package capture

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	DefaultGrabber = "grab_o_scope"
	DefaultTailLen = 5
)

type RunnerOptions struct {
	// Grabber is the external capture executable.
	Grabber string
	// TailLen bounds the output tail retained for failure diagnostics.
	TailLen int
}

// Runner invokes the external grabber command and relays its merged
// stdout/stderr as a line stream. One process per call, fully drained,
// no retries.
type Runner struct {
	opts RunnerOptions
}

func NewRunner(opts RunnerOptions) *Runner {
	if opts.Grabber == "" {
		opts.Grabber = DefaultGrabber
	}
	if opts.TailLen <= 0 {
		opts.TailLen = DefaultTailLen
	}
	return &Runner{opts: opts}
}

// Run executes the grabber to completion. onLine is invoked per output line
// in emission order; it must not block for long, the process pipe backs up
// behind it. The returned Outcome is the single terminal result.
func (r *Runner) Run(ctx context.Context, req Request, onLine func(string)) Outcome {
	if err := req.Validate(); err != nil {
		return failure(err.Error(), nil)
	}

	args := req.Args()
	// #nosec G204 -- the grabber executable comes from config, not user input.
	cmd := exec.CommandContext(ctx, r.opts.Grabber, args...)

	pr, pw, err := os.Pipe()
	if err != nil {
		return failure("open output pipe: "+err.Error(), nil)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if onLine != nil {
		onLine("Running: " + r.opts.Grabber + " " + strings.Join(args, " "))
	}

	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		_ = pr.Close()
		return failure("start grabber: "+err.Error(), nil)
	}
	log.Debug().Str("grabber", r.opts.Grabber).Int("pid", cmd.Process.Pid).Msg("grabber started")

	// Close the parent's copy of the write end so the scanner sees EOF when
	// the child exits.
	_ = pw.Close()

	tail := newTailBuffer(r.opts.TailLen)
	sc := bufio.NewScanner(pr)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		tail.Push(line)
		if onLine != nil {
			onLine(line)
		}
	}
	_ = pr.Close()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return failure(fmt.Sprintf("non-zero exit (code %d)", exitErr.ExitCode()), tail.Lines())
		}
		return failure("wait grabber: "+err.Error(), tail.Lines())
	}

	log.Debug().Str("artifact", req.OutputPath).Msg("grabber finished")
	return success(req.OutputPath)
}
