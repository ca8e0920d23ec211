package cmds

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-go-golems/scopegrab/pkg/capture"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCaptureCmd() *cobra.Command {
	var output string
	var verbose bool
	var trace bool

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture the oscilloscope screen once, streaming grabber output",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}

			out := output
			if out == "" {
				if err := os.MkdirAll(opts.CaptureDir, 0o755); err != nil {
					return errors.Wrap(err, "mkdir capture dir")
				}
				out = capture.DefaultFilename(opts.CaptureDir, time.Now())
			}

			req := capture.Request{
				Instrument: opts.Instrument,
				OutputPath: out,
				Verbose:    verbose || opts.Config.Verbose,
				Trace:      trace || opts.Config.Trace,
			}

			orch := capture.NewOrchestrator(capture.NewRunner(capture.RunnerOptions{Grabber: opts.Grabber}))
			handle, err := orch.Start(cmd.Context(), req)
			if err != nil {
				return err
			}

			log.Info().Str("grabber", opts.Grabber).Str("output", out).Msg("capture started")
			outcome := handle.Wait(func(line string) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			})

			if !outcome.OK {
				if len(outcome.Tail) > 0 {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), strings.Join(outcome.Tail, "\n"))
				}
				return errors.New("capture failed: " + outcome.Reason)
			}

			log.Info().Str("artifact", outcome.ArtifactPath).Msg("capture complete")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), outcome.ArtifactPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (defaults to a timestamped file in the capture dir)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Pass --verbose to the grabber")
	cmd.Flags().BoolVar(&trace, "trace", false, "Pass --trace to the grabber")
	return cmd
}
